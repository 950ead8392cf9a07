package rtdprovider

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prebid/prebid-rtd/errortypes"
)

const (
	outcomeMerged       = "merged"
	outcomeConfigError  = "config_error"
	outcomeScriptError  = "script_error"
	outcomeVendorError  = "vendor_error"
	outcomeRuntimeError = "runtime_error"
)

type metrics struct {
	requests *prometheus.CounterVec
}

// newMetrics registers the module counters on registry. A nil registry keeps the counters
// local to the module. Building the module twice against one registry reuses the counters.
func newMetrics(registry *prometheus.Registry) (*metrics, error) {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rtd",
		Subsystem: "fiftyonedegrees",
		Name:      "requests_total",
		Help:      "Count of 51Degrees enrichment cycles by outcome.",
	}, []string{"outcome"})

	if registry != nil {
		if err := registry.Register(requests); err != nil {
			var already prometheus.AlreadyRegisteredError
			if !errors.As(err, &already) {
				return nil, errors.Wrap(err, "failed to register 51Degrees metrics")
			}
			requests = already.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &metrics{requests: requests}, nil
}

func (m *metrics) record(outcome string) {
	m.requests.WithLabelValues(outcome).Inc()
}

// outcomeFor maps the code of a failure to the outcome it is counted under.
func outcomeFor(err error) string {
	switch errortypes.ReadCode(err) {
	case errortypes.MissingIdentifierErrorCode, errortypes.ConflictingIdentifierErrorCode:
		return outcomeConfigError
	case errortypes.ScriptLoadErrorCode:
		return outcomeScriptError
	case errortypes.VendorUnavailableErrorCode, errortypes.VendorResponseErrorCode:
		return outcomeVendorError
	default:
		return outcomeRuntimeError
	}
}
