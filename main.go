package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/coocood/freecache"
	"github.com/golang/glog"
	"github.com/mssola/user_agent"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/viper"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/prebid/prebid-rtd/config"
	"github.com/prebid/prebid-rtd/dom"
	"github.com/prebid/prebid-rtd/dom/browser"
	"github.com/prebid/prebid-rtd/dom/htmldoc"
	"github.com/prebid/prebid-rtd/modules"
	"github.com/prebid/prebid-rtd/modules/fiftyonedegrees/rtdprovider"
	"github.com/prebid/prebid-rtd/modules/moduledeps"
	"github.com/prebid/prebid-rtd/rtd"
)

// Rev holds binary revision string
// Set manually at build time using:
//
//	go build -ldflags "-X main.Rev=`git rev-parse --short HEAD`"
var Rev string

var (
	configFile = flag.String("config", configFileName, "name of the config file, without extension, looked up in . and /etc/config")
	ortb2File  = flag.String("ortb2", "", "path to a JSON file holding the initial ortb2 global object")
	showDiff   = flag.Bool("diff", false, "print the changes made to the ortb2 global object instead of the object")
	renderFile = flag.String("render", "", "path to write the page HTML to after enrichment, html page source only")
)

func main() {
	flag.Parse() // required for glog flags and testing package flags
	defer glog.Flush()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		glog.Exitf("Configuration could not be loaded or did not pass validation: %v", err)
	}

	global, err := readGlobal(*ortb2File)
	if err != nil {
		glog.Exitf("Initial ortb2 could not be read: %v", err)
	}

	opts := options{diff: *showDiff}
	if *renderFile != "" {
		f, err := os.Create(*renderFile)
		if err != nil {
			glog.Exitf("Render file could not be created: %v", err)
		}
		defer f.Close()
		opts.render = f
	}

	glog.Infof("prebid-rtd %s", Rev)
	if err := run(context.Background(), cfg, global, opts, os.Stdout); err != nil {
		glog.Exitf("prebid-rtd failed: %v", err)
	}
}

const configFileName = "pbs_rtd"

func loadConfig(filename string) (*config.Configuration, error) {
	v := viper.New()
	config.SetupViper(v, filename)
	return config.New(v)
}

func readGlobal(path string) (map[string]interface{}, error) {
	global := make(map[string]interface{})
	if path == "" {
		return global, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &global); err != nil {
		return nil, errors.Wrapf(err, "%s is not a JSON object", path)
	}
	return global, nil
}

type options struct {
	diff bool
	// render receives the page HTML after the cycle when set.
	render io.Writer
}

type renderer interface {
	Render(w io.Writer) error
}

// run enriches global for the configured page and writes the result to out.
func run(ctx context.Context, cfg *config.Configuration, global map[string]interface{}, opts options, out io.Writer) error {
	client := &http.Client{Timeout: cfg.Client.Timeout()}

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
	}

	logEvidence(cfg.Page.RequestHeaders())

	page, closePage, err := openPage(ctx, cfg, client)
	if err != nil {
		return err
	}
	defer closePage()

	providers, err := modules.NewBuilder().Build(cfg.RealTimeData, moduledeps.ModuleDeps{
		PrometheusGatherer: registry,
		Page:               page,
	})
	if err != nil {
		return err
	}

	before, err := json.Marshal(global)
	if err != nil {
		return errors.Wrap(err, "failed to encode initial ortb2")
	}

	req := rtd.NewReqBidsConfig(global)
	delayCtx, cancel := context.WithTimeout(ctx, cfg.RealTimeData.AuctionDelay())
	defer cancel()
	if timedOut := rtd.Run(delayCtx, req, providers, rtd.UserConsent{}); len(timedOut) > 0 {
		glog.Warningf("Auction delay of %s expired before %v completed", cfg.RealTimeData.AuctionDelay(), timedOut)
	}

	after, err := json.MarshalIndent(req.Ortb2Fragments.GlobalCopy(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to encode enriched ortb2")
	}

	if opts.diff {
		err = writeDiff(out, before, after)
	} else {
		_, err = fmt.Fprintln(out, string(after))
	}
	if err != nil {
		return err
	}

	if opts.render != nil {
		if err := renderPage(opts.render, page); err != nil {
			return err
		}
	}

	if registry != nil {
		return writeMetrics(os.Stderr, registry)
	}
	return nil
}

// openPage opens the configured page. The returned close function is always safe to call.
func openPage(ctx context.Context, cfg *config.Configuration, client *http.Client) (dom.Page, func(), error) {
	noop := func() {}

	switch cfg.Page.Source {
	case config.PageSourceBrowser:
		b, err := browser.Connect(ctx, browser.Config{
			DebuggerURL: cfg.Browser.DebuggerURL,
			Headless:    cfg.Browser.Headless,
		})
		if err != nil {
			return nil, noop, err
		}
		closeBrowser := func() {
			if err := b.Close(); err != nil {
				glog.Warningf("Failed to close browser: %v", err)
			}
		}

		page, err := browser.Open(ctx, b, cfg.Page.URL, cfg.Page.UserAgent)
		if err != nil {
			closeBrowser()
			return nil, noop, err
		}
		return page, closeBrowser, nil

	default:
		evidence := rtdprovider.EvidenceFromHeaders(cfg.Page.RequestHeaders())

		var runtimeOpts []rtdprovider.RuntimeOption
		if cfg.ResponseCache.Enabled {
			cache := freecache.NewCache(cfg.ResponseCache.SizeBytes)
			runtimeOpts = append(runtimeOpts, rtdprovider.WithResponseCache(cache, cfg.ResponseCache.TTL()))
		}

		docOpts := htmldoc.Options{
			Client:  client,
			Runtime: rtdprovider.NewJSONRuntime(client, evidence, runtimeOpts...),
			Header:  evidence,
		}

		if cfg.Page.File != "" {
			raw, err := os.ReadFile(cfg.Page.File)
			if err != nil {
				return nil, noop, err
			}
			doc, err := htmldoc.ParseString(string(raw), docOpts)
			return doc, noop, err
		}

		doc, err := htmldoc.Fetch(ctx, cfg.Page.URL, docOpts)
		return doc, noop, err
	}
}

func renderPage(out io.Writer, page dom.Page) error {
	r, ok := page.(renderer)
	if !ok {
		return errors.Errorf("page source does not support rendering")
	}
	return errors.Wrap(r.Render(out), "failed to render page")
}

func logEvidence(headers http.Header) {
	if !glog.V(1) {
		return
	}
	ua := user_agent.New(headers.Get("User-Agent"))
	name, version := ua.Browser()
	glog.Infof("Visitor browser: %s %s, platform: %s, mobile: %t", name, version, ua.OS(), ua.Mobile())
}

func writeDiff(out io.Writer, before, after []byte) error {
	diff, err := gojsondiff.New().Compare(before, after)
	if err != nil {
		return errors.Wrap(err, "failed to diff ortb2")
	}
	if !diff.Modified() {
		_, err := fmt.Fprintln(out, "ortb2 was not modified")
		return err
	}

	var left map[string]interface{}
	if err := json.Unmarshal(before, &left); err != nil {
		return err
	}
	text, err := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{}).Format(diff)
	if err != nil {
		return errors.Wrap(err, "failed to format ortb2 diff")
	}
	_, err = fmt.Fprint(out, text)
	return err
}

func writeMetrics(out io.Writer, registry *prometheus.Registry) error {
	families, err := registry.Gather()
	if err != nil {
		return errors.Wrap(err, "failed to gather metrics")
	}
	for _, family := range families {
		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return err
		}
	}
	return nil
}
