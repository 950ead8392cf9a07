package rtdprovider

import (
	"context"

	"github.com/pkg/errors"

	"github.com/prebid/prebid-rtd/dom"
	"github.com/prebid/prebid-rtd/errortypes"
)

// injectScript appends the 51Degrees script to the head of doc. The returned channel yields
// exactly one value: nil once the script has loaded, or a *errortypes.ScriptLoadError.
func injectScript(ctx context.Context, doc dom.Document, url string) <-chan error {
	loaded := doc.AppendScript(ctx, dom.Script{Src: url, Async: true})

	result := make(chan error, 1)
	go func() {
		defer close(result)
		err, ok := <-loaded
		if !ok {
			err = errors.New("document closed the load signal without a result")
		}
		if err != nil {
			result <- &errortypes.ScriptLoadError{URL: url, Cause: err}
			return
		}
		result <- nil
	}()
	return result
}
