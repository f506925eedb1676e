package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultTimeout bounds a single request.
	DefaultTimeout = 60 * time.Second

	// NoTimeout disables the request deadline; the request then ends only
	// when it completes or its context is cancelled.
	NoTimeout time.Duration = -1

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "AlbumCatalog"
)

// TransportError is returned when a request fails or the server answers
// with a non-success status.
//
// StatusCode is zero when no response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// Options configures a Client. Zero values select the defaults.
type Options struct {
	// Timeout bounds each request. Zero selects DefaultTimeout; a negative
	// value (NoTimeout) disables the deadline.
	Timeout time.Duration

	// UserAgent replaces DefaultUserAgent.
	UserAgent string

	// ProxyURL routes requests through an HTTP proxy. Empty uses the
	// environment (HTTP_PROXY, HTTPS_PROXY).
	ProxyURL string
}

// Client wraps HTTP operations for fetching the sheet export and cover art.
//
// Client provides:
//   - Configured User-Agent header
//   - Timeout handling
//   - Typed transport errors for failed requests and non-2xx responses
//
// Example usage:
//
//	client := NewClient()
//
//	// Fetch the published CSV export
//	text, err := client.GetString(ctx, "https://docs.google.com/.../pub?output=csv")
//
//	// Download cover art
//	data, err := client.Get(ctx, coverURL)
type Client struct {
	httpClient *http.Client
	userAgent  string
}

// NewClient creates a new HTTP client with default options.
//
// The client is configured with:
//   - 60 second timeout
//   - "AlbumCatalog" User-Agent header
func NewClient() *Client {
	c, _ := NewClientWithOptions(Options{})
	return c
}

// NewClientWithOptions creates a client from Options.
//
// Returns an error if ProxyURL is set but cannot be parsed.
func NewClientWithOptions(opts Options) (*Client, error) {
	timeout := opts.Timeout
	switch {
	case timeout < 0:
		timeout = 0 // net/http: zero means no deadline
	case timeout == 0:
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if opts.ProxyURL != "" {
		proxy, err := url.Parse(opts.ProxyURL)
		if err != nil {
			return nil, fmt.Errorf("parse proxy url: %w", err)
		}
		transport.Proxy = http.ProxyURL(proxy)
	}

	return &Client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		userAgent: userAgent,
	}, nil
}

// Get performs a GET request and returns the response body as bytes.
//
// The request includes the configured User-Agent header.
//
// Returns a *TransportError if:
//   - The request fails
//   - The response status is not 2xx
//   - Reading the body fails
//
// Example:
//
//	data, err := client.Get(ctx, "https://example.com/image.jpg")
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode, Err: errors.New(resp.Status)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: rawURL, StatusCode: resp.StatusCode, Err: err}
	}
	return body, nil
}

// GetString performs a GET request and returns the response body as a string.
//
// This is a convenience wrapper around Get for fetching text content like CSV.
//
// Example:
//
//	text, err := client.GetString(ctx, sheetURL)
func (c *Client) GetString(ctx context.Context, rawURL string) (string, error) {
	body, err := c.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
