// Package htmldoc implements dom.Page over a parsed HTML document. Scripts appended to the head
// are fetched over HTTP and handed to a dom.Runtime, which defines the globals they publish.
package htmldoc

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/prebid/prebid-rtd/dom"
)

// Options configures how a Document loads scripts.
type Options struct {
	// Client fetches script sources. http.DefaultClient is used when nil.
	Client *http.Client
	// Runtime executes fetched scripts. Without a runtime a loaded script defines no globals.
	Runtime dom.Runtime
	// Header is sent with every script request, typically the evidence headers of the
	// visitor the page is rendered for.
	Header http.Header
}

// Document is a dom.Page backed by an html.Node tree.
type Document struct {
	opts Options

	mu      sync.RWMutex
	root    *html.Node
	head    *html.Node
	globals map[string]interface{}
}

// Parse reads an HTML document from r.
func Parse(r io.Reader, opts Options) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse html document")
	}

	head := findFirst(root, atom.Head)
	if head == nil {
		// html.Parse always synthesizes a head, this only guards hand-built trees.
		return nil, errors.New("html document has no head element")
	}

	if opts.Client == nil {
		opts.Client = http.DefaultClient
	}

	return &Document{
		opts:    opts,
		root:    root,
		head:    head,
		globals: make(map[string]interface{}),
	}, nil
}

// ParseString is a convenience wrapper around Parse.
func ParseString(s string, opts Options) (*Document, error) {
	return Parse(strings.NewReader(s), opts)
}

// Fetch downloads and parses the page at url.
func Fetch(ctx context.Context, url string, opts Options) (*Document, error) {
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := get(ctx, client, url, opts.Header)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch page")
	}
	defer resp.Body.Close()

	return Parse(resp.Body, opts)
}

func (d *Document) HeadMeta(httpEquiv string) []dom.Meta {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var metas []dom.Meta
	walk(d.head, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Meta {
			return
		}
		equiv, ok := attr(n, "http-equiv")
		if !ok || !strings.EqualFold(equiv, httpEquiv) {
			return
		}
		name, _ := attr(n, "name")
		content, _ := attr(n, "content")
		metas = append(metas, dom.Meta{HTTPEquiv: equiv, Name: name, Content: content})
	})
	return metas
}

func (d *Document) AppendScript(ctx context.Context, script dom.Script) <-chan error {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr:     []html.Attribute{{Key: "src", Val: script.Src}},
	}
	if script.Async {
		node.Attr = append(node.Attr, html.Attribute{Key: "async"})
	}

	d.mu.Lock()
	d.head.AppendChild(node)
	d.mu.Unlock()

	result := make(chan error, 1)
	go func() {
		defer close(result)
		result <- d.load(ctx, script)
	}()
	return result
}

func (d *Document) load(ctx context.Context, script dom.Script) error {
	if script.Src == "" {
		return errors.New("script has no src")
	}

	resp, err := get(ctx, d.opts.Client, script.Src, d.opts.Header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read script body")
	}

	if d.opts.Runtime == nil {
		return nil
	}
	return d.opts.Runtime.Execute(ctx, script, body, d)
}

func (d *Document) Global(name string) (interface{}, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	v, ok := d.globals[name]
	return v, ok
}

func (d *Document) SetGlobal(name string, value interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.globals[name] = value
}

// Render writes the current document, including appended scripts, to w.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return html.Render(w, d.root)
}

func get(ctx context.Context, client *http.Client, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "GET %s failed", url)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		resp.Body.Close()
		return nil, errors.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}
	return resp, nil
}

func findFirst(n *html.Node, a atom.Atom) *html.Node {
	var found *html.Node
	walk(n, func(c *html.Node) {
		if found == nil && c.Type == html.ElementNode && c.DataAtom == a {
			found = c
		}
	})
	return found
}

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}
