package rtd

import (
	"context"
	"sync"

	"github.com/prebid/prebid-rtd/logger"
)

// Provider binds a submodule to the configuration it runs with.
type Provider struct {
	Submodule Submodule
	Config    ModuleConfig
	WaitForIt bool
}

// OnceCallback wraps callback so that only its first invocation runs.
func OnceCallback(callback func()) func() {
	var once sync.Once
	return func() {
		once.Do(callback)
	}
}

// Run initializes the providers and runs their GetBidRequestData concurrently.
//
// Run returns when every provider with WaitForIt has signaled completion, or when ctx is done,
// whichever happens first. The names of the waited-for providers that had not completed are
// returned. Providers without WaitForIt are never waited for and keep running in the background.
func Run(ctx context.Context, req *ReqBidsConfig, providers []Provider, consent UserConsent) []string {
	type pending struct {
		name string
		done chan struct{}
	}

	var waiting []pending
	for _, provider := range providers {
		name := provider.Submodule.Name()
		if !provider.Submodule.Init(provider.Config, consent) {
			logger.Infof("Real-time data provider %s declined to run for this request", name)
			continue
		}

		done := make(chan struct{})
		callback := OnceCallback(func() { close(done) })
		if provider.WaitForIt {
			waiting = append(waiting, pending{name: name, done: done})
		}

		go provider.Submodule.GetBidRequestData(ctx, req, callback, provider.Config, consent)
	}

	var timedOut []string
	for i, p := range waiting {
		select {
		case <-p.done:
		case <-ctx.Done():
			for _, rest := range waiting[i:] {
				select {
				case <-rest.done:
				default:
					timedOut = append(timedOut, rest.name)
				}
			}
			if len(timedOut) > 0 {
				logger.Warnf("Real-time data providers %v did not respond in time: %v", timedOut, ctx.Err())
			}
			return timedOut
		}
	}
	return nil
}
