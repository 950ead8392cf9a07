// Package dom describes the parts of a web page that real-time-data submodules touch:
// head meta elements, script injection and window globals.
package dom

import (
	"context"
)

// Meta is a <meta> element of the document head.
type Meta struct {
	HTTPEquiv string
	Name      string
	Content   string
}

// Script is a <script> element to be appended to the document head.
type Script struct {
	Src   string
	Async bool
}

// Document is the page document.
type Document interface {
	// HeadMeta returns the head meta elements whose http-equiv attribute equals httpEquiv,
	// compared case-insensitively. It has no side effects.
	HeadMeta(httpEquiv string) []Meta

	// AppendScript appends script to the document head and starts loading it.
	// The returned channel receives exactly one value, nil once the script has loaded and
	// executed or the load error otherwise, and is then closed.
	AppendScript(ctx context.Context, script Script) <-chan error
}

// Window exposes the globals defined by scripts that ran in the page.
type Window interface {
	Global(name string) (interface{}, bool)
}

// Page is a document together with its window.
type Page interface {
	Document
	Window
}

// Completer is a global offering a single-shot completion API, such as the object a device
// detection script publishes once classification finishes.
type Completer interface {
	// Complete registers callback, which is invoked once with the vendor payload.
	// The payload may be nil when the vendor could not produce one.
	Complete(callback func(data map[string]interface{}))
}

// Globals receives the globals a Runtime defines while executing a script.
type Globals interface {
	SetGlobal(name string, value interface{})
}

// Runtime executes a fetched script body for documents that do not run JavaScript themselves.
type Runtime interface {
	Execute(ctx context.Context, script Script, body []byte, globals Globals) error
}

// RuntimeFunc adapts a function to the Runtime interface.
type RuntimeFunc func(ctx context.Context, script Script, body []byte, globals Globals) error

func (f RuntimeFunc) Execute(ctx context.Context, script Script, body []byte, globals Globals) error {
	return f(ctx, script, body, globals)
}

// Settle returns a closed channel holding err, for documents that know the outcome of a
// script load immediately.
func Settle(err error) <-chan error {
	ch := make(chan error, 1)
	ch <- err
	close(ch)
	return ch
}
