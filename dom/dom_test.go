package dom

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type mapGlobals map[string]interface{}

func (g mapGlobals) SetGlobal(name string, value interface{}) {
	g[name] = value
}

func TestSettle(t *testing.T) {
	loadErr := errors.New("404")

	ch := Settle(loadErr)
	assert.Equal(t, loadErr, <-ch)

	_, open := <-ch
	assert.False(t, open, "channel must be closed after the single value")

	assert.NoError(t, <-Settle(nil))
}

func TestRuntimeFunc(t *testing.T) {
	globals := mapGlobals{}
	var runtime Runtime = RuntimeFunc(func(_ context.Context, script Script, body []byte, g Globals) error {
		g.SetGlobal("src", script.Src)
		g.SetGlobal("body", string(body))
		return nil
	})

	err := runtime.Execute(context.Background(), Script{Src: "https://x/y.js"}, []byte("code"), globals)

	assert.NoError(t, err)
	assert.Equal(t, mapGlobals{"src": "https://x/y.js", "body": "code"}, globals)
}
