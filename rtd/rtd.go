// Package rtd holds the contracts between the real-time-data host and its submodules:
// the per-cycle request object, the shared ortb2 fragments and the submodule lifecycle.
package rtd

import (
	"context"
)

// ModuleConfig is the opaque configuration of one data provider, shaped like
// {"name": ..., "waitForIt": ..., "params": {...}}. Submodules read it with maputil.DeepAccess.
type ModuleConfig map[string]interface{}

// UserConsent carries the consent signals available for the cycle.
// Submodules that do not need consent accept it and ignore it.
type UserConsent struct {
	GDPR string
	USP  string
	GPP  string
}

// Submodule is implemented by each real-time-data provider.
type Submodule interface {
	// Name identifies the provider in configuration.
	Name() string

	// Init is called once per cycle before GetBidRequestData. Returning false disables the
	// provider for the cycle.
	Init(cfg ModuleConfig, consent UserConsent) bool

	// GetBidRequestData enriches req and must invoke callback exactly once, whether or not
	// enrichment succeeded.
	GetBidRequestData(ctx context.Context, req *ReqBidsConfig, callback func(), cfg ModuleConfig, consent UserConsent)
}

// ReqBidsConfig is the bid-request context of one cycle.
type ReqBidsConfig struct {
	Ortb2Fragments *Ortb2Fragments
}

// NewReqBidsConfig creates a request context whose global fragment starts from global.
func NewReqBidsConfig(global map[string]interface{}) *ReqBidsConfig {
	return &ReqBidsConfig{
		Ortb2Fragments: NewOrtb2Fragments(global),
	}
}
