package rtdprovider

import (
	"net/http"
	"strings"
)

const (
	userAgentHeader    = "User-Agent"
	clientHintsPrefix  = "Sec-Ch-Ua"
	deviceMemoryHeader = "Device-Memory"
)

// EvidenceFromHeaders keeps the request headers 51Degrees uses as detection evidence:
// the user agent and the user agent client hints.
func EvidenceFromHeaders(headers http.Header) http.Header {
	evidence := make(http.Header)
	for key, values := range headers {
		canonical := http.CanonicalHeaderKey(key)
		if canonical == userAgentHeader || canonical == deviceMemoryHeader || strings.HasPrefix(canonical, clientHintsPrefix) {
			evidence[canonical] = append([]string(nil), values...)
		}
	}
	return evidence
}
