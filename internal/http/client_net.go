//go:build !rawhttp

package http

import (
	"bytes"
	"context"
	"io"
	nethttp "net/http"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// Client is the blocking backend: exchanges run synchronously on net/http,
// and the calling goroutine blocks for the duration of the exchange.
// Connection pooling is net/http's concern and not part of the contract.
type Client struct {
	options
	http  *nethttp.Client
	retry *retryablehttp.Client
}

// NewClient creates a transport client bound to the net/http backend.
// tokens may be nil for unauthenticated use.
func NewClient(tokens TokenSource, opts ...Option) *Client {
	c := &Client{options: newOptions(tokens, opts...)}
	c.http = &nethttp.Client{}

	if c.retryMax > 0 {
		retryClient := retryablehttp.NewClient()
		retryClient.RetryMax = c.retryMax
		retryClient.RetryWaitMin = c.retryWaitMin
		retryClient.RetryWaitMax = c.retryWaitMax
		retryClient.HTTPClient = c.http
		retryClient.Logger = nil
		// Hand back the last response when retries run out, so a persistent
		// 5xx still classifies as an APIError rather than a NetworkError.
		retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
		c.retry = retryClient
	}

	return c
}

// exchange performs exactly one network exchange, or up to 1+RetryMax when
// WithRetryConfig was applied, and buffers the response.
func (c *Client) exchange(ctx context.Context, method, rawURL string, headers Headers, body []byte) (*response, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var (
		resp *nethttp.Response
		err  error
	)

	if c.retry != nil {
		resp, err = c.doRetryable(ctx, method, rawURL, headers, body)
	} else {
		resp, err = c.doOnce(ctx, method, rawURL, headers, body)
	}

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

func (c *Client) doOnce(ctx context.Context, method, rawURL string, headers Headers, body []byte) (*nethttp.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, err
	}

	applyHeaders(req.Header, headers)

	return c.http.Do(req)
}

func (c *Client) doRetryable(ctx context.Context, method, rawURL string, headers Headers, body []byte) (*nethttp.Response, error) {
	var rawBody interface{}
	if body != nil {
		rawBody = body
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, rawURL, rawBody)
	if err != nil {
		return nil, err
	}

	applyHeaders(req.Header, headers)

	return c.retry.Do(req)
}

// applyHeaders assigns header keys verbatim so the lower-case authorization
// key reaches the wire as-is; Header.Set would canonicalize it.
func applyHeaders(dst nethttp.Header, headers Headers) {
	for k, v := range headers {
		dst[k] = []string{v}
	}
}
