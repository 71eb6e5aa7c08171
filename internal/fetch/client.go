package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// Client fetches map pages over HTTP.
//
// Design decision: We wrap http.Client in a struct rather than passing
// one around because the request headers (Accept-Encoding, User-Agent)
// and the body cap belong together with the transport configuration, and
// a shared client keeps connection pooling working across fetches.
type Client struct {
	// client is the underlying HTTP client.
	client *http.Client

	// userAgent is the User-Agent header sent with requests.
	userAgent string

	// maxBodySize limits the response body size to prevent memory
	// exhaustion from unexpectedly large responses.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size in bytes.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// NewClient creates a Client with sensible defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				// We negotiate gzip ourselves so the explicit
				// Accept-Encoding header reaches the server unchanged.
				DisableCompression: true,
			},
		},
		userAgent:   "stationwatch/1.0",
		maxBodySize: 5 * 1024 * 1024,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch downloads the page at url and returns its body decoded to UTF-8.
// It requests gzip transfer encoding and decompresses when the server
// honors it. Non-2xx responses are errors.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", url, resp.Status)
	}

	var body io.Reader = io.LimitReader(resp.Body, c.maxBodySize)

	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", url, err)
		}
		defer gz.Close()
		body = gz
	}

	// Decode whatever charset the page declares to UTF-8 so the
	// extractor always sees one encoding.
	decoded, err := charset.NewReader(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", url, err)
	}

	data, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}

	return data, nil
}
