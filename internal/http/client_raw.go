//go:build rawhttp

package http

import (
	"context"
	"io"
	nethttp "net/http"

	rawhttp "github.com/frankli0324/go-http"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// Client is the non-blocking backend: exchanges run on a direct-dial client
// whose connection handling is readiness-driven rather than thread-per-
// connection, and every exchange is cancellable through its context. The
// calling goroutine suspends at the exchange point until the response
// arrives.
type Client struct {
	options
	raw *rawhttp.Client
}

// NewClient creates a transport client bound to the rawhttp backend.
// tokens may be nil for unauthenticated use. WithRetryConfig is not
// supported by this backend.
func NewClient(tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		options: newOptions(tokens, opts...),
		raw:     &rawhttp.Client{},
	}

	if c.retryMax > 0 && c.logger != nil {
		c.logger.Debug("retry configuration ignored by rawhttp backend", map[string]interface{}{
			"retry_max": c.retryMax,
		})
	}

	return c
}

// exchange performs exactly one network exchange and buffers the response.
func (c *Client) exchange(ctx context.Context, method, rawURL string, headers Headers, body []byte) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := &rawhttp.Request{
		Method: method,
		URL:    rawURL,
		Header: nethttp.Header{},
	}
	if body != nil {
		req.Body = body
	}

	// Keys are assigned verbatim so the lower-case authorization key
	// reaches the wire as-is.
	for k, v := range headers {
		req.Header[k] = []string{v}
	}

	resp, err := c.raw.CtxDo(ctx, req)
	if err != nil {
		return nil, &spotify.NetworkError{URL: rawURL, Err: err}
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &spotify.SerializationError{Err: err}
	}

	return &response{StatusCode: resp.StatusCode, Body: data}, nil
}
