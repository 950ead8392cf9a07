package config

import (
	"fmt"
	"time"
)

// RealTimeData configures the real-time-data providers consulted before the auction.
type RealTimeData struct {
	// AuctionDelayMs bounds how long the auction waits for providers with WaitForIt.
	AuctionDelayMs int            `mapstructure:"auction_delay_ms"`
	DataProviders  []DataProvider `mapstructure:"data_providers"`
}

// DataProvider names a submodule and carries its params. Params parsing is performed by the submodule.
type DataProvider struct {
	Name      string                 `mapstructure:"name"`
	WaitForIt bool                   `mapstructure:"wait_for_it"`
	Params    map[string]interface{} `mapstructure:"params"`
}

// AuctionDelay returns AuctionDelayMs as a duration.
func (r *RealTimeData) AuctionDelay() time.Duration {
	return time.Duration(r.AuctionDelayMs) * time.Millisecond
}

// ModuleConfig renders the provider in the shape submodules receive:
// {"name": ..., "waitForIt": ..., "params": {...}}.
func (p DataProvider) ModuleConfig() map[string]interface{} {
	params := p.Params
	if params == nil {
		params = map[string]interface{}{}
	}
	return map[string]interface{}{
		"name":      p.Name,
		"waitForIt": p.WaitForIt,
		"params":    params,
	}
}

func (r *RealTimeData) validate(errs []error) []error {
	if r.AuctionDelayMs < 0 {
		errs = append(errs, fmt.Errorf("realtime_data.auction_delay_ms must be a positive number, got %d", r.AuctionDelayMs))
	}
	for i, provider := range r.DataProviders {
		if provider.Name == "" {
			errs = append(errs, fmt.Errorf("realtime_data.data_providers[%d].name must be set", i))
		}
	}
	return errs
}
