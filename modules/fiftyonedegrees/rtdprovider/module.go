package rtdprovider

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/prebid/prebid-rtd/dom"
	"github.com/prebid/prebid-rtd/errortypes"
	"github.com/prebid/prebid-rtd/logger"
	"github.com/prebid/prebid-rtd/modules/moduledeps"
	"github.com/prebid/prebid-rtd/rtd"
)

const (
	moduleName = "51Degrees"
	logPrefix  = "[51Degrees RTD Submodule]:"

	// vendorGlobal is the window global the 51Degrees script publishes its completion API on.
	vendorGlobal = "fod"
)

// Builder creates the 51Degrees submodule for the page in deps.
func Builder(deps moduledeps.ModuleDeps) (rtd.Submodule, error) {
	if deps.Page == nil {
		return nil, errors.New("the 51Degrees submodule requires a page")
	}

	m, err := newMetrics(deps.PrometheusGatherer)
	if err != nil {
		return nil, err
	}

	return &Module{
		page:    deps.Page,
		log:     logger.NewPrefixLogger(logPrefix),
		metrics: m,
	}, nil
}

// Module is the 51Degrees real-time-data submodule. It injects the 51Degrees script into the page,
// waits for device detection to complete and merges the detected device into ortb2.
type Module struct {
	page    dom.Page
	log     logger.Logger
	metrics *metrics
}

func (m *Module) Name() string {
	return moduleName
}

func (m *Module) Init(_ rtd.ModuleConfig, _ rtd.UserConsent) bool {
	return true
}

// GetBidRequestData starts one enrichment cycle and returns without waiting for it.
// callback runs exactly once when the device has been merged or enrichment was given up.
func (m *Module) GetBidRequestData(ctx context.Context, req *rtd.ReqBidsConfig, callback func(), cfg rtd.ModuleConfig, _ rtd.UserConsent) {
	done := rtd.OnceCallback(callback)
	defer m.recoverPanic(done)

	path, err := extractConfig(cfg)
	if err != nil {
		m.fail(err, done)
		return
	}
	m.log.Debugf("Resource key: %s", path.ResourceKey)
	m.log.Debugf("On-premise JS URL: %s", path.OnPremiseJSUrl)

	url := scriptURL(path)
	m.log.Debugf("URL of the script to be injected: %s", url)

	if path.ResourceKey != "" {
		m.log.Debugf("Checking if 51Degrees meta is present in the document head")
		if !isMetaPresent(m.page) {
			m.report(&errortypes.Warning{
				Message:     "Delegate-CH meta tag is not present in the document head",
				WarningCode: errortypes.MissingDelegateCHWarningCode,
			})
		}
	}

	loaded := injectScript(ctx, m.page, url)
	go func() {
		defer m.recoverPanic(done)

		if err := <-loaded; err != nil {
			m.fail(errors.Wrap(err, "Error injecting 51Degrees script"), done)
			return
		}
		m.log.Debugf("Successfully injected 51Degrees script")

		m.requestDeviceData(req, done)
	}()
}

func (m *Module) requestDeviceData(req *rtd.ReqBidsConfig, done func()) {
	global, ok := m.page.Global(vendorGlobal)
	if !ok {
		m.fail(errortypes.NewVendorUnavailable("window."+vendorGlobal+" is not defined after loading the script"), done)
		return
	}
	fod, ok := global.(dom.Completer)
	if !ok {
		m.fail(errortypes.NewVendorUnavailable(fmt.Sprintf("window.%s has no completion API: %T", vendorGlobal, global)), done)
		return
	}

	fod.Complete(func(data map[string]interface{}) {
		defer m.recoverPanic(done)

		m.log.Debugf("51Degrees raw data: %v", data)
		fragment, err := deviceFragment(convertDeviceToOrtb2(deviceFromPayload(data)))
		if err != nil {
			m.fail(errors.Wrap(err, "failed to encode device"), done)
			return
		}

		req.Ortb2Fragments.MergeGlobal(fragment)
		m.log.Debugf("Merged into ortb2 global: %v", fragment)

		m.metrics.record(outcomeMerged)
		done()
	})
}

// fail reports err and completes the cycle without enrichment. The recorded outcome follows
// the error code.
func (m *Module) fail(err error, done func()) {
	m.report(err)
	m.metrics.record(outcomeFor(err))
	done()
}

// report logs err at the level of its severity.
func (m *Module) report(err error) {
	if errortypes.IsWarning(err) {
		m.log.Warnf("%v", err)
		return
	}
	m.log.Errorf("%v", err)
}

func (m *Module) recoverPanic(done func()) {
	if r := recover(); r != nil {
		m.fail(fmt.Errorf("unexpected error: %v", r), done)
	}
}
