// Package browser implements dom.Page over a live Chrome tab driven with go-rod.
package browser

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"

	"github.com/prebid/prebid-rtd/dom"
	"github.com/prebid/prebid-rtd/logger"
)

// Config holds browser connection settings.
type Config struct {
	// DebuggerURL is the DevTools websocket of a running Chrome. When empty a browser is launched.
	DebuggerURL string
	Headless    bool
}

// Connect attaches to the browser described by cfg, launching one when no debugger URL is given.
func Connect(ctx context.Context, cfg Config) (*rod.Browser, error) {
	controlURL := cfg.DebuggerURL
	if controlURL == "" {
		url, err := launcher.New().Headless(cfg.Headless).Launch()
		if err != nil {
			return nil, errors.Wrap(err, "no debugger_url and failed to launch")
		}
		controlURL = url
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, errors.Wrap(err, "connect to chrome")
	}
	return browser, nil
}

// Open navigates a new tab to url and waits for it to load. A non-empty userAgent overrides the
// browser user agent for the tab.
func Open(ctx context.Context, browser *rod.Browser, url, userAgent string) (*Page, error) {
	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, errors.Wrap(err, "open tab")
	}
	if userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
			return nil, errors.Wrap(err, "set user agent")
		}
	}
	if err := page.Navigate(url); err != nil {
		return nil, errors.Wrapf(err, "navigate to %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, errors.Wrapf(err, "wait for %s to load", url)
	}
	return NewPage(page), nil
}

// Page is a dom.Page backed by a rod page.
type Page struct {
	page *rod.Page
}

func NewPage(page *rod.Page) *Page {
	return &Page{page: page}
}

func (p *Page) HeadMeta(httpEquiv string) []dom.Meta {
	elements, err := p.page.Elements("head meta[http-equiv]")
	if err != nil {
		logger.Warnf("Failed to query head meta elements: %v", err)
		return nil
	}

	var metas []dom.Meta
	for _, el := range elements {
		equiv := attribute(el, "http-equiv")
		if !strings.EqualFold(equiv, httpEquiv) {
			continue
		}
		metas = append(metas, dom.Meta{
			HTTPEquiv: equiv,
			Name:      attribute(el, "name"),
			Content:   attribute(el, "content"),
		})
	}
	return metas
}

// AppendScript adds a script tag to the head. rod resolves the call once the tag's load or
// error event fires.
func (p *Page) AppendScript(ctx context.Context, script dom.Script) <-chan error {
	result := make(chan error, 1)
	go func() {
		defer close(result)
		result <- p.page.Context(ctx).AddScriptTag(script.Src, "")
	}()
	return result
}

const (
	globalUndefined = iota
	globalDefined
	globalCompleter
)

const globalJS = `(name) => {
	const v = window[name];
	if (v === undefined) return 0;
	return v !== null && typeof v.complete === 'function' ? 2 : 1;
}`

// Global reports window[name]. Globals offering a complete function are returned as a
// dom.Completer, any other defined global as its JSON value.
func (p *Page) Global(name string) (interface{}, bool) {
	res, err := p.page.Evaluate(rod.Eval(globalJS, name))
	if err != nil {
		logger.Warnf("Failed to look up window.%s: %v", name, err)
		return nil, false
	}

	switch res.Value.Int() {
	case globalCompleter:
		return &completer{page: p.page, name: name}, true
	case globalDefined:
		value, err := p.page.Eval(`(name) => window[name]`, name)
		if err != nil {
			return nil, true
		}
		return value.Value, true
	default:
		return nil, false
	}
}

const completeJS = `(name) => new Promise((resolve) => {
	window[name].complete((data) => resolve(data === undefined ? null : data));
})`

// completer calls window[name].complete in the page and hands the payload back to Go.
type completer struct {
	page *rod.Page
	name string
}

func (c *completer) Complete(callback func(data map[string]interface{})) {
	go func() {
		res, err := c.page.Evaluate(rod.Eval(completeJS, c.name).ByPromise())
		if err != nil {
			logger.Errorf("window.%s.complete failed: %v", c.name, err)
			callback(nil)
			return
		}
		callback(decodePayload(res.Value.JSON("", "")))
	}()
}

// decodePayload converts the JSON form of a completion payload into a map.
// Anything other than a JSON object yields nil.
func decodePayload(raw string) map[string]interface{} {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil
	}
	return data
}

func attribute(el *rod.Element, name string) string {
	v, err := el.Attribute(name)
	if err != nil || v == nil {
		return ""
	}
	return *v
}
