package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadEmbeddedMap(t *testing.T) {
	testCases := []struct {
		description string
		value       map[string]interface{}
		key         string
		expectedMap map[string]interface{}
		expectedOK  bool
	}{
		{
			description: "Nil",
			value:       nil,
			key:         "",
			expectedMap: nil,
			expectedOK:  false,
		},
		{
			description: "Empty",
			value:       map[string]interface{}{},
			key:         "foo",
			expectedMap: nil,
			expectedOK:  false,
		},
		{
			description: "Success",
			value:       map[string]interface{}{"foo": map[string]interface{}{"bar": 42}},
			key:         "foo",
			expectedMap: map[string]interface{}{"bar": 42},
			expectedOK:  true,
		},
		{
			description: "Not Found",
			value:       map[string]interface{}{"foo": map[string]interface{}{"bar": 42}},
			key:         "notFound",
			expectedMap: nil,
			expectedOK:  false,
		},
		{
			description: "Wrong Type",
			value:       map[string]interface{}{"foo": 42},
			key:         "foo",
			expectedMap: nil,
			expectedOK:  false,
		},
	}

	for _, test := range testCases {
		resultMap, resultOK := ReadEmbeddedMap(test.value, test.key)

		assert.Equal(t, test.expectedMap, resultMap, test.description+":map")
		assert.Equal(t, test.expectedOK, resultOK, test.description+":ok")
	}
}

func TestDeepAccess(t *testing.T) {
	value := map[string]interface{}{
		"params": map[string]interface{}{
			"resourceKey": "ABC123",
			"list":        []interface{}{"a", map[string]interface{}{"b": 2}},
		},
		"scalar": 42,
	}

	testCases := []struct {
		description string
		value       map[string]interface{}
		path        string
		expected    interface{}
	}{
		{
			description: "Nil map",
			value:       nil,
			path:        "params.resourceKey",
			expected:    nil,
		},
		{
			description: "Empty path",
			value:       value,
			path:        "",
			expected:    nil,
		},
		{
			description: "Nested string",
			value:       value,
			path:        "params.resourceKey",
			expected:    "ABC123",
		},
		{
			description: "Missing leaf",
			value:       value,
			path:        "params.onPremiseJSUrl",
			expected:    nil,
		},
		{
			description: "Missing branch",
			value:       value,
			path:        "nothing.here",
			expected:    nil,
		},
		{
			description: "Through scalar",
			value:       value,
			path:        "scalar.deeper",
			expected:    nil,
		},
		{
			description: "Slice index",
			value:       value,
			path:        "params.list.1.b",
			expected:    2,
		},
		{
			description: "Slice index out of range",
			value:       value,
			path:        "params.list.5",
			expected:    nil,
		},
		{
			description: "Slice non numeric index",
			value:       value,
			path:        "params.list.first",
			expected:    nil,
		},
	}

	for _, test := range testCases {
		assert.Equal(t, test.expected, DeepAccess(test.value, test.path), test.description)
	}
}

func TestMergeDeep(t *testing.T) {
	testCases := []struct {
		description string
		dst         map[string]interface{}
		src         map[string]interface{}
		expected    map[string]interface{}
	}{
		{
			description: "Nil dst",
			dst:         nil,
			src:         map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
			expected:    map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
		},
		{
			description: "Nil src",
			dst:         map[string]interface{}{"site": "x"},
			src:         nil,
			expected:    map[string]interface{}{"site": "x"},
		},
		{
			description: "Siblings preserved",
			dst: map[string]interface{}{
				"site":   map[string]interface{}{"domain": "example.com"},
				"device": map[string]interface{}{"ua": "Mozilla"},
			},
			src: map[string]interface{}{"device": map[string]interface{}{"model": "Pixel 7", "os": "Android"}},
			expected: map[string]interface{}{
				"site":   map[string]interface{}{"domain": "example.com"},
				"device": map[string]interface{}{"ua": "Mozilla", "model": "Pixel 7", "os": "Android"},
			},
		},
		{
			description: "Identical leaf path overwritten",
			dst:         map[string]interface{}{"device": map[string]interface{}{"os": "iOS"}},
			src:         map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
			expected:    map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
		},
		{
			description: "Scalar kept when src is map",
			dst:         map[string]interface{}{"device": "unknown"},
			src:         map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
			expected:    map[string]interface{}{"device": "unknown"},
		},
		{
			description: "Nil value replaced by map",
			dst:         map[string]interface{}{"device": nil},
			src:         map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
			expected:    map[string]interface{}{"device": map[string]interface{}{"os": "Android"}},
		},
		{
			description: "Scalar kept when src is slice",
			dst:         map[string]interface{}{"bcat": "IAB1"},
			src:         map[string]interface{}{"bcat": []interface{}{"IAB2"}},
			expected:    map[string]interface{}{"bcat": "IAB1"},
		},
		{
			description: "Map kept when src is slice",
			dst:         map[string]interface{}{"device": map[string]interface{}{"os": "iOS"}},
			src:         map[string]interface{}{"device": []interface{}{"x"}},
			expected:    map[string]interface{}{"device": map[string]interface{}{"os": "iOS"}},
		},
		{
			description: "Slices extended without duplicates",
			dst:         map[string]interface{}{"user": map[string]interface{}{"data": []interface{}{"a", "b"}}},
			src:         map[string]interface{}{"user": map[string]interface{}{"data": []interface{}{"b", "c"}}},
			expected:    map[string]interface{}{"user": map[string]interface{}{"data": []interface{}{"a", "b", "c"}}},
		},
		{
			description: "Slice into missing key",
			dst:         map[string]interface{}{},
			src:         map[string]interface{}{"bcat": []interface{}{"IAB1"}},
			expected:    map[string]interface{}{"bcat": []interface{}{"IAB1"}},
		},
		{
			description: "Empty nested map",
			dst:         map[string]interface{}{"site": "x"},
			src:         map[string]interface{}{"device": map[string]interface{}{}},
			expected:    map[string]interface{}{"site": "x", "device": map[string]interface{}{}},
		},
	}

	for _, test := range testCases {
		assert.Equal(t, test.expected, MergeDeep(test.dst, test.src), test.description)
	}
}

func TestMergeDeepDoesNotAliasSource(t *testing.T) {
	src := map[string]interface{}{"device": map[string]interface{}{"os": "Android"}}
	dst := MergeDeep(map[string]interface{}{}, src)

	src["device"].(map[string]interface{})["os"] = "changed"

	assert.Equal(t, map[string]interface{}{"device": map[string]interface{}{"os": "Android"}}, dst)
}

func TestCloneDeep(t *testing.T) {
	original := map[string]interface{}{
		"device": map[string]interface{}{"os": "Android"},
		"list":   []interface{}{map[string]interface{}{"a": 1}},
		"scalar": "x",
	}

	clone := CloneDeep(original).(map[string]interface{})
	original["device"].(map[string]interface{})["os"] = "iOS"
	original["list"].([]interface{})[0].(map[string]interface{})["a"] = 2

	assert.Equal(t, map[string]interface{}{
		"device": map[string]interface{}{"os": "Android"},
		"list":   []interface{}{map[string]interface{}{"a": 1}},
		"scalar": "x",
	}, clone)
	assert.Nil(t, CloneDeep(nil))
}
