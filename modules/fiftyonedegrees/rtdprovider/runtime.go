package rtdprovider

import (
	"context"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/prebid/prebid-rtd/dom"
	"github.com/prebid/prebid-rtd/errortypes"
	"github.com/prebid/prebid-rtd/logger"
)

// NewJSONRuntime returns a runtime for documents that cannot execute the 51Degrees script.
// Once the script has loaded, the runtime publishes window.fod backed by the JSON resource served
// next to the script, queried with the given evidence headers.
func NewJSONRuntime(client *http.Client, evidence http.Header, opts ...RuntimeOption) dom.Runtime {
	if client == nil {
		client = http.DefaultClient
	}
	r := &jsonRuntime{
		client:   client,
		evidence: evidence,
		log:      logger.NewPrefixLogger(logPrefix),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RuntimeOption configures the JSON runtime.
type RuntimeOption func(*jsonRuntime)

// WithResponseCache keeps successful vendor responses in cache for ttl, keyed by endpoint and evidence.
func WithResponseCache(cache *freecache.Cache, ttl time.Duration) RuntimeOption {
	return func(r *jsonRuntime) {
		r.cache = cache
		r.cacheTTL = ttl
	}
}

type jsonRuntime struct {
	client   *http.Client
	evidence http.Header
	cache    *freecache.Cache
	cacheTTL time.Duration
	log      logger.Logger
}

func (r *jsonRuntime) Execute(ctx context.Context, script dom.Script, _ []byte, globals dom.Globals) error {
	endpoint, err := jsonEndpoint(script.Src)
	if err != nil {
		return err
	}

	globals.SetGlobal(vendorGlobal, &jsonCompleter{
		ctx:      ctx,
		client:   r.client,
		endpoint: endpoint,
		evidence: r.evidence,
		cache:    r.cache,
		cacheTTL: r.cacheTTL,
		log:      r.log,
	})
	return nil
}

// jsonEndpoint turns the script URL into the URL of the matching JSON resource:
// the .js extension becomes .json and the script-only fod-js-* parameters are dropped.
func jsonEndpoint(src string) (string, error) {
	u, err := url.Parse(src)
	if err != nil {
		return "", errors.Wrapf(err, "invalid script url %q", src)
	}
	if !strings.HasSuffix(u.Path, ".js") {
		return "", errors.Errorf("script url %q does not name a .js resource", src)
	}
	u.Path = strings.TrimSuffix(u.Path, ".js") + ".json"

	query := u.Query()
	for key := range query {
		if strings.HasPrefix(key, "fod-js-") {
			query.Del(key)
		}
	}
	u.RawQuery = query.Encode()

	return u.String(), nil
}

type jsonCompleter struct {
	ctx      context.Context
	client   *http.Client
	endpoint string
	evidence http.Header
	cache    *freecache.Cache
	cacheTTL time.Duration
	log      logger.Logger
}

// Complete fetches the device data and invokes callback exactly once. A failed fetch is logged
// and reported as a nil payload so the cycle still completes.
func (c *jsonCompleter) Complete(callback func(data map[string]interface{})) {
	go func() {
		data, err := c.fetch()
		if err != nil {
			c.log.Errorf("Failed to get 51Degrees device data: %v", err)
			callback(nil)
			return
		}
		callback(data)
	}()
}

func (c *jsonCompleter) fetch() (map[string]interface{}, error) {
	key := c.cacheKey()
	if c.cache != nil {
		if body, err := c.cache.Get(key); err == nil {
			c.log.Debugf("Using cached 51Degrees response for %s", c.endpoint)
			return parseResponse(body)
		}
	}

	body, err := c.request()
	if err != nil {
		return nil, err
	}
	data, err := parseResponse(body)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		if err := c.cache.Set(key, body, cacheSeconds(c.cacheTTL)); err != nil {
			c.log.Warnf("Failed to cache 51Degrees response: %v", err)
		}
	}
	return data, nil
}

// cacheSeconds converts ttl to whole seconds for freecache, where 0 means the entry never
// expires. Sub-second TTLs round up to one second.
func cacheSeconds(ttl time.Duration) int {
	seconds := int(math.Ceil(ttl.Seconds()))
	if seconds < 1 {
		return 1
	}
	return seconds
}

func (c *jsonCompleter) request() ([]byte, error) {
	req, err := http.NewRequestWithContext(c.ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	for key, values := range c.evidence {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response")
	}

	if vendorErrors := gjson.GetBytes(body, "errors"); vendorErrors.IsArray() && len(vendorErrors.Array()) > 0 {
		messages := make([]string, 0, len(vendorErrors.Array()))
		for _, e := range vendorErrors.Array() {
			messages = append(messages, e.String())
		}
		return nil, errortypes.NewVendorResponse(strings.Join(messages, "; "))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errortypes.NewVendorResponse(resp.Status)
	}
	return body, nil
}

func parseResponse(body []byte) (map[string]interface{}, error) {
	if !gjson.ValidBytes(body) {
		return nil, errortypes.NewVendorResponse("response is not valid json")
	}

	data, ok := gjson.ParseBytes(body).Value().(map[string]interface{})
	if !ok {
		return nil, errortypes.NewVendorResponse("response is not a json object")
	}
	return data, nil
}

// cacheKey is the endpoint followed by the evidence in a stable order.
func (c *jsonCompleter) cacheKey() []byte {
	keys := make([]string, 0, len(c.evidence))
	for key := range c.evidence {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.endpoint)
	for _, key := range keys {
		b.WriteString("\n")
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(strings.Join(c.evidence[key], ", "))
	}
	return []byte(b.String())
}
