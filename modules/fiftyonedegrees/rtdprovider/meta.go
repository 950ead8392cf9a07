package rtdprovider

import (
	"strings"

	"github.com/prebid/prebid-rtd/dom"
)

const delegateCHHTTPEquiv = "Delegate-CH"

// isMetaPresent reports whether a Delegate-CH meta tag delegates client hints to the 51Degrees cloud.
// Without it the cloud only sees a reduced set of high entropy hints.
func isMetaPresent(doc dom.Document) bool {
	for _, meta := range doc.HeadMeta(delegateCHHTTPEquiv) {
		if strings.Contains(meta.Content, cloudHost) {
			return true
		}
	}
	return false
}
