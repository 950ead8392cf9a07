//go:build ignore

package main

import (
	"bytes"
	"fmt"
	"go/format"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"
)

var (
	r          = regexp.MustCompile("^([^/]+)/([^/]+)/module.go$")
	moduleName = regexp.MustCompile(`moduleName\s*=\s*"([^"]+)"`)
	tmplName   = "builder.tmpl"
	outName    = "builder.go"
)

type Module struct {
	Vendor   string
	Module   string
	Provider string
}

func main() {
	var modules []Module

	filepath.WalkDir("./", func(path string, d fs.DirEntry, err error) error {
		if !r.MatchString(path) {
			return nil
		}
		src, err := os.ReadFile(path)
		if err != nil {
			panic(fmt.Sprintf("failed to read %s: %s", path, err))
		}
		name := moduleName.FindSubmatch(src)
		if name == nil {
			panic(fmt.Sprintf("%s does not declare a moduleName constant", path))
		}
		match := r.FindStringSubmatch(path)
		modules = append(modules, Module{
			Vendor:   match[1],
			Module:   match[2],
			Provider: string(name[1]),
		})
		return nil
	})

	funcMap := template.FuncMap{"Title": strings.Title}
	t, err := template.New(tmplName).Funcs(funcMap).ParseFiles(fmt.Sprintf("generator/%s", tmplName))
	if err != nil {
		panic(fmt.Sprintf("failed to parse builder template: %s", err))
	}

	f, err := os.Create(outName)
	if err != nil {
		panic(fmt.Sprintf("failed to create %s file: %s", outName, err))
	}
	defer f.Close()

	var buf bytes.Buffer
	if err = t.Execute(&buf, modules); err != nil {
		panic(fmt.Sprintf("failed to generate %s file content: %s", outName, err))
	}

	content, err := format.Source(buf.Bytes())
	if err != nil {
		panic(fmt.Sprintf("failed to format generated code: %s", err))
	}

	if _, err = f.Write(content); err != nil {
		panic(fmt.Sprintf("failed to write file content: %s", err))
	}

	fmt.Printf("%s file successfully generated\n", outName)
}
