package rtdprovider

import (
	"strings"

	"github.com/spf13/cast"

	"github.com/prebid/prebid-rtd/errortypes"
	"github.com/prebid/prebid-rtd/rtd"
	"github.com/prebid/prebid-rtd/util/maputil"
)

// pathData identifies where the 51Degrees script is served from. Exactly one field is set.
type pathData struct {
	ResourceKey    string
	OnPremiseJSUrl string
}

// extractConfig reads params.resourceKey and params.onPremiseJSUrl from the provider config.
func extractConfig(cfg rtd.ModuleConfig) (pathData, error) {
	resourceKey := cast.ToString(param(cfg, "resourceKey"))
	onPremiseJSUrl := cast.ToString(param(cfg, "onPremiseJSUrl"))

	if resourceKey == "" && onPremiseJSUrl == "" {
		return pathData{}, errortypes.NewMissingIdentifier("missing parameter resourceKey or onPremiseJSUrl in moduleConfig")
	}
	if resourceKey != "" && onPremiseJSUrl != "" {
		return pathData{}, errortypes.NewConflictingIdentifier("only one of resourceKey or onPremiseJSUrl should be provided in moduleConfig")
	}

	return pathData{ResourceKey: resourceKey, OnPremiseJSUrl: onPremiseJSUrl}, nil
}

// param returns params[name]. Config loaders such as viper lowercase map keys, so a key that
// only matches case-insensitively is accepted when the exact one is absent.
func param(cfg rtd.ModuleConfig, name string) interface{} {
	if v := maputil.DeepAccess(cfg, "params."+name); v != nil {
		return v
	}
	params, _ := maputil.DeepAccess(cfg, "params").(map[string]interface{})
	for key, v := range params {
		if strings.EqualFold(key, name) {
			return v
		}
	}
	return nil
}
