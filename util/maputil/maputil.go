package maputil

import (
	"reflect"
	"strconv"
	"strings"
)

// ReadEmbeddedMap reads element k from the map m as a map[string]interface{}.
func ReadEmbeddedMap(m map[string]interface{}, k string) (map[string]interface{}, bool) {
	if v, ok := m[k]; ok {
		vCasted, ok := v.(map[string]interface{})
		return vCasted, ok
	}
	return nil, false
}

// DeepAccess walks a dotted path such as "params.resourceKey" through nested maps and slices.
// Numeric segments index into slices. A missing or mistyped segment yields nil.
func DeepAccess(m map[string]interface{}, path string) interface{} {
	if m == nil || path == "" {
		return nil
	}

	var current interface{} = m
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]interface{}:
			v, ok := node[segment]
			if !ok {
				return nil
			}
			current = v
		case []interface{}:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(node) {
				return nil
			}
			current = node[i]
		default:
			return nil
		}
	}
	return current
}

// MergeDeep merges src into dst without removing keys that only dst has.
// Nested maps are merged recursively, slices are extended with the src elements dst does not
// already contain, and any other src value overwrites the dst value at the same path.
// A src map or slice never replaces a non-nil dst value of a different kind.
// src is never aliased by dst after the merge.
func MergeDeep(dst, src map[string]interface{}) map[string]interface{} {
	if dst == nil {
		dst = make(map[string]interface{}, len(src))
	}

	for k, srcValue := range src {
		switch v := srcValue.(type) {
		case map[string]interface{}:
			if dstMap, ok := ReadEmbeddedMap(dst, k); ok {
				dst[k] = MergeDeep(dstMap, v)
			} else if dst[k] == nil {
				dst[k] = MergeDeep(nil, v)
			}
		case []interface{}:
			switch dstSlice := dst[k].(type) {
			case nil:
				dst[k] = appendMissing(nil, v)
			case []interface{}:
				dst[k] = appendMissing(dstSlice, v)
			}
		default:
			dst[k] = srcValue
		}
	}
	return dst
}

func appendMissing(dst, src []interface{}) []interface{} {
	for _, item := range src {
		if !containsValue(dst, item) {
			dst = append(dst, CloneDeep(item))
		}
	}
	if dst == nil {
		return []interface{}{}
	}
	return dst
}

func containsValue(values []interface{}, v interface{}) bool {
	for _, existing := range values {
		if reflect.DeepEqual(existing, v) {
			return true
		}
	}
	return false
}

// CloneDeep copies nested maps and slices so that the result shares no containers with v.
// Leaf values are copied as-is.
func CloneDeep(v interface{}) interface{} {
	switch node := v.(type) {
	case map[string]interface{}:
		if node == nil {
			return node
		}
		clone := make(map[string]interface{}, len(node))
		for k, child := range node {
			clone[k] = CloneDeep(child)
		}
		return clone
	case []interface{}:
		if node == nil {
			return node
		}
		clone := make([]interface{}, len(node))
		for i, child := range node {
			clone[i] = CloneDeep(child)
		}
		return clone
	default:
		return v
	}
}
