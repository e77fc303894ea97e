package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	defaultTimeout   = 3 * time.Second
	defaultUserAgent = "iiifas/1.0"
	maxBodySize      = 64 << 20
)

// StatusError is returned when the remote answers with a non-2xx status.
type StatusError struct {
	URI  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

type Client struct {
	client    *http.Client
	cache     *cache.Cache
	userAgent string
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	// CacheTTL enables caching of successful responses when positive.
	CacheTTL time.Duration
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}

	httpClient := http.Client{
		Timeout: opts.Timeout,
	}

	c := &Client{
		client:    &httpClient,
		userAgent: opts.UserAgent,
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	httpClient.Transport = c

	slog.Debug(
		"Initialize client",
		slog.String("module", "client"),
		slog.Duration("timeout", opts.Timeout),
		slog.Bool("cacheRequests", c.cache != nil),
	)
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// Fetch returns the body of uri. Only 200 responses are cached.
func (c *Client) Fetch(ctx context.Context, uri, accept string) ([]byte, error) {
	cacheKey := "body:" + uri
	if c.cache != nil {
		if x, found := c.cache.Get(cacheKey); found {
			slog.DebugContext(ctx, "Cache hit", slog.String("module", "client"), slog.String("uri", uri))
			return x.([]byte), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URI: uri, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if c.cache != nil {
		c.cache.Set(cacheKey, body, cache.DefaultExpiration)
	}
	return body, nil
}

// Headers performs a GET on uri and returns the response headers of a 2xx
// response. The body is discarded.
func (c *Client) Headers(ctx context.Context, uri string) (http.Header, error) {
	cacheKey := "headers:" + uri
	if c.cache != nil {
		if x, found := c.cache.Get(cacheKey); found {
			return x.(http.Header), nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URI: uri, Code: resp.StatusCode}
	}

	if c.cache != nil && resp.StatusCode == http.StatusOK {
		c.cache.Set(cacheKey, resp.Header.Clone(), cache.DefaultExpiration)
	}
	return resp.Header, nil
}
