package modules

import (
	fiftyonedegreesRtdprovider "github.com/prebid/prebid-rtd/modules/fiftyonedegrees/rtdprovider"
)

// builders returns mapping between data provider name and its builder
// provider names are the moduleName constants declared in each module.go
func builders() ModuleBuilders {
	return ModuleBuilders{
		"51Degrees": fiftyonedegreesRtdprovider.Builder,
	}
}
