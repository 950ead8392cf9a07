package modules

import (
	"fmt"

	"github.com/golang/glog"

	"github.com/prebid/prebid-rtd/config"
	"github.com/prebid/prebid-rtd/modules/moduledeps"
	"github.com/prebid/prebid-rtd/rtd"
)

//go:generate go run ./generator/buildergen.go

// NewBuilder returns a new module builder.
func NewBuilder() Builder {
	return &builder{builders()}
}

// Builder is the interface intended for building real-time-data submodules
// implementing [github.com/prebid/prebid-rtd/rtd.Submodule].
type Builder interface {
	// Build initializes the configured data providers passing them other dependencies.
	// It returns the providers in configuration order or an error encountered during
	// module initialization.
	Build(cfg config.RealTimeData, deps moduledeps.ModuleDeps) ([]rtd.Provider, error)
}

type (
	// ModuleBuilders mapping between data provider name and its builder
	ModuleBuilders map[string]ModuleBuilderFn
	// ModuleBuilderFn returns the submodule serving a data provider.
	ModuleBuilderFn func(deps moduledeps.ModuleDeps) (rtd.Submodule, error)
)

type builder struct {
	builders ModuleBuilders
}

// Build walks over the configured data providers and initializes their submodules.
//
// Providers without a registered submodule are skipped. A submodule is built once and shared
// by every provider entry naming it.
func (m *builder) Build(cfg config.RealTimeData, deps moduledeps.ModuleDeps) ([]rtd.Provider, error) {
	submodules := make(map[string]rtd.Submodule)
	providers := make([]rtd.Provider, 0, len(cfg.DataProviders))

	for _, dataProvider := range cfg.DataProviders {
		builder, ok := m.builders[dataProvider.Name]
		if !ok {
			glog.Infof("Skip %s data provider, no submodule registered.", dataProvider.Name)
			continue
		}

		submodule, ok := submodules[dataProvider.Name]
		if !ok {
			var err error
			if submodule, err = builder(deps); err != nil {
				return nil, fmt.Errorf(`failed to init "%s" module: %s`, dataProvider.Name, err)
			}
			submodules[dataProvider.Name] = submodule
		}

		providers = append(providers, rtd.Provider{
			Submodule: submodule,
			Config:    rtd.ModuleConfig(dataProvider.ModuleConfig()),
			WaitForIt: dataProvider.WaitForIt,
		})
	}

	return providers, nil
}
