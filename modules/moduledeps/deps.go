package moduledeps

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/prebid/prebid-rtd/dom"
)

// ModuleDeps provides dependencies that real-time-data submodules may need.
// Additional dependencies can be added here if modules need something more.
type ModuleDeps struct {
	PrometheusGatherer *prometheus.Registry
	// Page is the page the bid request is being built for.
	Page dom.Page
}
