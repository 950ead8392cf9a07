package rtdprovider

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prebid/prebid-rtd/errortypes"
	"github.com/prebid/prebid-rtd/rtd"
)

func TestExtractConfig(t *testing.T) {
	tests := []struct {
		name         string
		cfg          rtd.ModuleConfig
		expectPath   pathData
		expectErrMsg string
		expectCode   int
	}{
		{
			name:       "resource_key",
			cfg:        rtd.ModuleConfig{"params": map[string]interface{}{"resourceKey": "ABC123"}},
			expectPath: pathData{ResourceKey: "ABC123"},
		},
		{
			name:       "on_premise_url",
			cfg:        rtd.ModuleConfig{"params": map[string]interface{}{"onPremiseJSUrl": "https://example.com/51Degrees.core.js"}},
			expectPath: pathData{OnPremiseJSUrl: "https://example.com/51Degrees.core.js"},
		},
		{
			name:         "neither",
			cfg:          rtd.ModuleConfig{"params": map[string]interface{}{}},
			expectErrMsg: "missing parameter resourceKey or onPremiseJSUrl in moduleConfig",
			expectCode:   errortypes.MissingIdentifierErrorCode,
		},
		{
			name:         "no_params",
			cfg:          rtd.ModuleConfig{},
			expectErrMsg: "missing parameter resourceKey or onPremiseJSUrl in moduleConfig",
			expectCode:   errortypes.MissingIdentifierErrorCode,
		},
		{
			name:         "nil_config",
			cfg:          nil,
			expectErrMsg: "missing parameter resourceKey or onPremiseJSUrl in moduleConfig",
			expectCode:   errortypes.MissingIdentifierErrorCode,
		},
		{
			name:         "empty_strings",
			cfg:          rtd.ModuleConfig{"params": map[string]interface{}{"resourceKey": "", "onPremiseJSUrl": ""}},
			expectErrMsg: "missing parameter resourceKey or onPremiseJSUrl in moduleConfig",
			expectCode:   errortypes.MissingIdentifierErrorCode,
		},
		{
			name: "both",
			cfg: rtd.ModuleConfig{"params": map[string]interface{}{
				"resourceKey":    "ABC123",
				"onPremiseJSUrl": "https://example.com/51Degrees.core.js",
			}},
			expectErrMsg: "only one of resourceKey or onPremiseJSUrl should be provided in moduleConfig",
			expectCode:   errortypes.ConflictingIdentifierErrorCode,
		},
		{
			name:       "lowercased_keys",
			cfg:        rtd.ModuleConfig{"params": map[string]interface{}{"onpremisejsurl": "https://x/y.js"}},
			expectPath: pathData{OnPremiseJSUrl: "https://x/y.js"},
		},
		{
			name: "lowercased_conflict",
			cfg: rtd.ModuleConfig{"params": map[string]interface{}{
				"resourcekey":    "ABC123",
				"onpremisejsurl": "https://x/y.js",
			}},
			expectErrMsg: "only one of resourceKey or onPremiseJSUrl should be provided in moduleConfig",
			expectCode:   errortypes.ConflictingIdentifierErrorCode,
		},
		{
			name:       "numeric_resource_key",
			cfg:        rtd.ModuleConfig{"params": map[string]interface{}{"resourceKey": 12345}},
			expectPath: pathData{ResourceKey: "12345"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path, err := extractConfig(test.cfg)
			if test.expectErrMsg != "" {
				assert.EqualError(t, err, test.expectErrMsg)
				assert.Equal(t, test.expectCode, errortypes.ReadCode(err))
				assert.Equal(t, pathData{}, path)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.expectPath, path)
		})
	}
}
