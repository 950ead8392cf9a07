package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prebid/prebid-rtd/dom"
)

var _ dom.Page = (*Page)(nil)
var _ dom.Completer = (*completer)(nil)

func TestDecodePayload(t *testing.T) {
	testCases := []struct {
		description string
		raw         string
		expected    map[string]interface{}
	}{
		{
			description: "object",
			raw:         `{"device":{"hardwaremodel":"Pixel 7","screenpixelsheight":2400}}`,
			expected: map[string]interface{}{
				"device": map[string]interface{}{"hardwaremodel": "Pixel 7", "screenpixelsheight": float64(2400)},
			},
		},
		{
			description: "null",
			raw:         `null`,
			expected:    nil,
		},
		{
			description: "not an object",
			raw:         `[1,2]`,
			expected:    nil,
		},
		{
			description: "empty",
			raw:         ``,
			expected:    nil,
		},
	}

	for _, test := range testCases {
		t.Run(test.description, func(t *testing.T) {
			assert.Equal(t, test.expected, decodePayload(test.raw))
		})
	}
}
