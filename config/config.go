package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/viper"
)

// Configuration specifies the static application config.
type Configuration struct {
	RealTimeData RealTimeData `mapstructure:"realtime_data"`
	Page         Page         `mapstructure:"page"`
	Browser      Browser      `mapstructure:"browser"`
	Client       HTTPClient   `mapstructure:"http_client"`
	Metrics      Metrics      `mapstructure:"metrics"`

	// ResponseCache caches vendor responses fetched by the html page source.
	ResponseCache ResponseCache `mapstructure:"response_cache"`
}

const (
	PageSourceHTML    = "html"
	PageSourceBrowser = "browser"
)

// Page describes the page the bid request is enriched for.
type Page struct {
	// Source selects the document backend: "html" parses the page without running scripts,
	// "browser" drives a real Chrome instance.
	Source string `mapstructure:"source"`
	// URL of the page. In the html source File takes precedence when both are set.
	URL  string `mapstructure:"url"`
	File string `mapstructure:"file"`
	// UserAgent and Headers are the request headers of the visitor the page is served to.
	UserAgent string            `mapstructure:"user_agent"`
	Headers   map[string]string `mapstructure:"headers"`
}

// Browser configures the Chrome instance used by the browser page source.
type Browser struct {
	// DebuggerURL of a running Chrome. A local Chrome is launched when empty.
	DebuggerURL string `mapstructure:"debugger_url"`
	Headless    bool   `mapstructure:"headless"`
}

type HTTPClient struct {
	TimeoutMs int `mapstructure:"timeout_ms"`
}

type Metrics struct {
	Enabled bool `mapstructure:"enabled"`
}

type ResponseCache struct {
	Enabled    bool `mapstructure:"enabled"`
	SizeBytes  int  `mapstructure:"size_bytes"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

// TTL returns TTLSeconds as a duration.
func (c *ResponseCache) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// RequestHeaders returns the visitor request headers, with UserAgent overriding any User-Agent header.
func (p *Page) RequestHeaders() http.Header {
	headers := make(http.Header, len(p.Headers)+1)
	for key, value := range p.Headers {
		headers.Set(key, value)
	}
	if p.UserAgent != "" {
		headers.Set("User-Agent", p.UserAgent)
	}
	return headers
}

// Timeout returns the client timeout. Zero means no timeout.
func (c *HTTPClient) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type configErrors []error

func (c configErrors) Error() string {
	if len(c) == 0 {
		return ""
	}
	buf := strings.Builder{}
	buf.WriteString("validation errors are:\n\n")
	for _, err := range c {
		buf.WriteString("  ")
		buf.WriteString(err.Error())
		buf.WriteString("\n")
	}
	return buf.String()
}

func (cfg *Configuration) validate() []error {
	var errs []error
	errs = cfg.RealTimeData.validate(errs)
	errs = cfg.Page.validate(errs)
	errs = cfg.Client.validate(errs)
	errs = cfg.ResponseCache.validate(errs)
	return errs
}

func (p *Page) validate(errs []error) []error {
	switch p.Source {
	case PageSourceHTML:
		if p.URL == "" && p.File == "" {
			errs = append(errs, fmt.Errorf("page.url or page.file must be set for page source %q", p.Source))
		}
	case PageSourceBrowser:
		if p.URL == "" {
			errs = append(errs, fmt.Errorf("page.url must be set for page source %q", p.Source))
		}
		if p.File != "" {
			glog.Warningf("page.file is ignored for page source %q", p.Source)
		}
	default:
		errs = append(errs, fmt.Errorf("page.source must be one of %q or %q, got %q", PageSourceHTML, PageSourceBrowser, p.Source))
	}
	return errs
}

func (c *HTTPClient) validate(errs []error) []error {
	if c.TimeoutMs < 0 {
		errs = append(errs, fmt.Errorf("http_client.timeout_ms must be a positive number, got %d", c.TimeoutMs))
	}
	return errs
}

func (c *ResponseCache) validate(errs []error) []error {
	if !c.Enabled {
		return errs
	}
	if c.SizeBytes <= 0 {
		errs = append(errs, fmt.Errorf("response_cache.size_bytes must be a positive number, got %d", c.SizeBytes))
	}
	if c.TTLSeconds <= 0 {
		errs = append(errs, fmt.Errorf("response_cache.ttl_seconds must be a positive number, got %d", c.TTLSeconds))
	}
	return errs
}

// New uses viper to get our server configurations.
func New(v *viper.Viper) (*Configuration, error) {
	var c Configuration
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("viper failed to unmarshal app config: %v", err)
	}

	glog.Info("Logging the resolved configuration:")
	logGeneral(v, "  \t")
	if errs := c.validate(); len(errs) > 0 {
		return &c, configErrors(errs)
	}

	return &c, nil
}

// SetupViper sets the defaults and environment binding for v and reads filename, if given,
// from the working directory or /etc/config.
func SetupViper(v *viper.Viper, filename string) {
	if filename != "" {
		v.SetConfigName(filename)
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/config")
	}

	// Some defaults are set just so they are accessible via environment variables.
	v.SetDefault("realtime_data.auction_delay_ms", 1000)
	v.SetDefault("page.source", PageSourceHTML)
	v.SetDefault("page.url", "")
	v.SetDefault("page.file", "")
	v.SetDefault("page.user_agent", "")
	v.SetDefault("browser.debugger_url", "")
	v.SetDefault("browser.headless", true)
	v.SetDefault("http_client.timeout_ms", 2000)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("response_cache.enabled", false)
	v.SetDefault("response_cache.size_bytes", 10*1024*1024)
	v.SetDefault("response_cache.ttl_seconds", 3600)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("PBS_RTD")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || filename != "" {
			glog.Warningf("Config file could not be read: %v", err)
		}
	}
}

func logGeneral(v *viper.Viper, prefix string) {
	for _, key := range []string{
		"realtime_data.auction_delay_ms",
		"page.source",
		"page.url",
		"page.file",
		"browser.debugger_url",
		"browser.headless",
		"http_client.timeout_ms",
		"metrics.enabled",
		"response_cache.enabled",
		"response_cache.ttl_seconds",
	} {
		glog.Infof("%s%s: %v", prefix, key, v.Get(key))
	}
}
