// Package client is an HTTP client for the Responses API.
//
//	c, err := client.New(apiKey, "https://api.openai.com/v1/")
//	s, err := c.Responses().CreateText("gpt-5", "hello").SendStream(ctx)
//	for ev, err := range s.All() { ... }
//
// The client does not retry and does not buffer streamed bodies.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/papercomputeco/ores/pkg/logger"
	"github.com/papercomputeco/ores/pkg/stream"
	"github.com/papercomputeco/ores/pkg/utils"
)

const (
	// DefaultBaseURL is the OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1/"

	// DefaultTimeout bounds a whole request, including reading a streamed
	// body.
	DefaultTimeout = 10 * time.Minute

	// RequestIDHeader carries a per-request uuid.
	RequestIDHeader = "X-Request-Id"
)

// Client holds the connection settings shared by all endpoints.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
	logger     *slog.Logger
	maxEvent   int
}

// New returns a client for the API rooted at baseURL. An empty baseURL means
// DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	u, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &config{
		timeout:   DefaultTimeout,
		userAgent: utils.UserAgent(),
		headers:   http.Header{},
		logger:    logger.Nop(),
		maxEvent:  stream.DefaultMaxBufferSize,
	}
	for _, opt := range opts {
		opt(c)
	}

	headers := c.headers.Clone()
	headers.Set("Authorization", "Bearer "+apiKey)
	headers.Set("Content-Type", "application/json")
	headers.Set("User-Agent", c.userAgent)
	if err := validateHeaders(headers); err != nil {
		return nil, err
	}

	httpClient := c.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: c.timeout}
	}

	return &Client{
		baseURL:    u,
		httpClient: httpClient,
		headers:    headers,
		logger:     c.logger,
		maxEvent:   c.maxEvent,
	}, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("parsing base url: %q is not an absolute url", raw)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u, nil
}

// BaseURL returns the normalized API root, always ending in "/".
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Responses returns the /responses endpoint.
func (c *Client) Responses() *ResponsesEndpoint {
	return &ResponsesEndpoint{client: c}
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.JoinPath(strings.TrimPrefix(path, "/")).String()
}

// newRequest builds a POST with a JSON body and the client headers.
func (c *Client) newRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.headers.Clone()
	req.Header.Set(RequestIDHeader, uuid.NewString())

	return req, nil
}

// do sends req and returns the response when its status is 2xx. Otherwise
// the body is read, closed and returned in an *HTTPStatusError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.logger.Debug("sending request",
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", req.Header.Get(RequestIDHeader),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			c.logger.Debug("reading error body failed", "error", readErr)
		}
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	c.logger.Debug("received response",
		"status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"),
	)
	return resp, nil
}
