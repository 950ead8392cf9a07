package rtd

import (
	"sync"

	"github.com/prebid/prebid-rtd/util/maputil"
)

// Ortb2Fragments holds the first party data shared by all providers of a cycle.
// Providers run concurrently, so every access goes through the methods below.
type Ortb2Fragments struct {
	mu     sync.Mutex
	global map[string]interface{}
}

// NewOrtb2Fragments creates fragments starting from global. A nil global starts empty.
func NewOrtb2Fragments(global map[string]interface{}) *Ortb2Fragments {
	if global == nil {
		global = make(map[string]interface{})
	}
	return &Ortb2Fragments{global: global}
}

// MergeGlobal deep-merges fragment into the global ortb2 object without removing sibling keys.
func (f *Ortb2Fragments) MergeGlobal(fragment map[string]interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.global = maputil.MergeDeep(f.global, fragment)
}

// GlobalCopy returns a deep copy of the global ortb2 object.
func (f *Ortb2Fragments) GlobalCopy() map[string]interface{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	return maputil.CloneDeep(f.global).(map[string]interface{})
}
