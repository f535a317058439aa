package client

import (
	"log/slog"
	"net/http"
	"time"
)

// Option configures a Client created with New.
type Option func(*config)

type config struct {
	timeout    time.Duration
	userAgent  string
	httpClient *http.Client
	headers    http.Header
	logger     *slog.Logger
	maxEvent   int
}

// WithTimeout sets the timeout of the default HTTP client. It has no effect
// together with WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *config) {
		c.timeout = d
	}
}

// WithUserAgent overrides the default "ores/<version>" User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *config) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) {
		c.httpClient = hc
	}
}

// WithHeader adds a header sent with every request. Authorization,
// Content-Type and User-Agent are always set by the client.
func WithHeader(key, value string) Option {
	return func(c *config) {
		c.headers.Add(key, value)
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMaxEventSize bounds the unparsed buffer of streams returned by
// SendStream.
func WithMaxEventSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxEvent = n
		}
	}
}
