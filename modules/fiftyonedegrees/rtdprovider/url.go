package rtdprovider

import (
	"fmt"
)

const cloudHost = "cloud.51degrees.com"

// cloudScriptURLFormat disables the script's own cookies; consent handling belongs to the host.
const cloudScriptURLFormat = "https://" + cloudHost + "/api/v4/%s.js?fod-js-enable-cookies=false"

// scriptURL returns the on-premise URL verbatim, or the cloud URL for the resource key.
func scriptURL(path pathData) string {
	if path.OnPremiseJSUrl != "" {
		return path.OnPremiseJSUrl
	}
	return fmt.Sprintf(cloudScriptURLFormat, path.ResourceKey)
}
