// Package http implements the verb-level transport used by every part of
// the client that talks to the Web API or the accounts service.
//
// The package compiles against exactly one network backend, selected at
// build time: the default backend drives net/http, while the "rawhttp" build
// tag swaps in a direct-dial, poll-driven client. Both expose the same
// surface and classify outcomes identically, so callers never know which
// backend is linked.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// Headers maps header names to values. Keys are unique; a caller-supplied
// entry overrides the backend default of the same name, compared
// case-insensitively.
type Headers map[string]string

// FormData maps field names to values for URL-form-encoded request bodies.
type FormData map[string]string

// TokenSource supplies the bearer token injected into the default
// authorization header. internal/auth token managers satisfy it.
type TokenSource interface {
	GetToken(ctx context.Context) (string, error)
}

const (
	contentTypeJSON = "application/json"
	contentTypeForm = "application/x-www-form-urlencoded"
	defaultUA       = "rspotify-go"
)

// Transport is the capability set every backend satisfies: the five verb
// operations the rest of the client is written against. Operations take an
// absolute URL, an optional header map, and a payload, and return the raw
// response body text. Decoding is the caller's responsibility.
type Transport interface {
	Get(ctx context.Context, url string, headers Headers, params any) (string, error)
	Post(ctx context.Context, url string, headers Headers, payload any) (string, error)
	PostForm(ctx context.Context, url string, headers Headers, form FormData) (string, error)
	Put(ctx context.Context, url string, headers Headers, payload any) (string, error)
	Delete(ctx context.Context, url string, headers Headers, payload any) (string, error)
}

var _ Transport = (*Client)(nil)

// options holds the configuration shared by both backends.
type options struct {
	tokens         TokenSource
	logger         spotify.Logger
	debug          bool
	userAgent      string
	defaultHeaders Headers
	timeout        time.Duration
	retryMax       int
	retryWaitMin   time.Duration
	retryWaitMax   time.Duration
}

// Option configures a Client.
type Option func(*options)

// WithLogger sets the logger used for debug request/response logging.
func WithLogger(logger spotify.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(o *options) {
		o.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(o *options) {
		o.userAgent = userAgent
	}
}

// WithDefaultHeaders adds headers sent on every request unless overridden
// per call.
func WithDefaultHeaders(headers Headers) Option {
	return func(o *options) {
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithHTTPTimeout sets a per-exchange timeout. Zero means no timeout beyond
// whatever the caller's context imposes.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithRetryConfig enables retries on transient failures (connection errors,
// 429 and 5xx responses). Retries are off unless this option is applied;
// the default client performs exactly one exchange per call. The rawhttp
// backend does not implement retries and logs a debug message instead.
func WithRetryConfig(retryMax int, waitMin, waitMax time.Duration) Option {
	return func(o *options) {
		o.retryMax = retryMax
		o.retryWaitMin = waitMin
		o.retryWaitMax = waitMax
	}
}

func newOptions(tokens TokenSource, opts ...Option) options {
	o := options{
		tokens:         tokens,
		userAgent:      defaultUA,
		defaultHeaders: Headers{},
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// response is the buffered result of one exchange.
type response struct {
	StatusCode int
	Body       []byte
}

// Get performs a GET request. The params value, when non-nil, is flattened
// into URL query parameters: scalar values become single pairs, slices
// become repeated keys. Neither backend sends a GET body.
func (c *Client) Get(ctx context.Context, rawURL string, headers Headers, params any) (string, error) {
	target, err := appendQuery(rawURL, params)
	if err != nil {
		return "", err
	}

	return c.perform(ctx, "GET", target, headers, nil, "")
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, rawURL string, headers Headers, payload any) (string, error) {
	body, err := marshalJSONBody(payload)
	if err != nil {
		return "", err
	}

	return c.perform(ctx, "POST", rawURL, headers, body, contentTypeJSON)
}

// PostForm performs a POST request with a URL-form-encoded body.
func (c *Client) PostForm(ctx context.Context, rawURL string, headers Headers, form FormData) (string, error) {
	values := url.Values{}
	for k, v := range form {
		values.Set(k, v)
	}

	return c.perform(ctx, "POST", rawURL, headers, []byte(values.Encode()), contentTypeForm)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, rawURL string, headers Headers, payload any) (string, error) {
	body, err := marshalJSONBody(payload)
	if err != nil {
		return "", err
	}

	return c.perform(ctx, "PUT", rawURL, headers, body, contentTypeJSON)
}

// Delete performs a DELETE request with a JSON body.
func (c *Client) Delete(ctx context.Context, rawURL string, headers Headers, payload any) (string, error) {
	body, err := marshalJSONBody(payload)
	if err != nil {
		return "", err
	}

	return c.perform(ctx, "DELETE", rawURL, headers, body, contentTypeJSON)
}

// perform runs one exchange through the active backend and classifies the
// outcome. Failures are never retried here; WithRetryConfig is the only
// path to retries and lives inside the default backend.
func (c *Client) perform(ctx context.Context, method, rawURL string, headers Headers, body []byte, contentType string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		if err == nil {
			err = fmt.Errorf("not an absolute URL: %q", rawURL)
		}

		return "", &spotify.NetworkError{URL: rawURL, Err: err}
	}

	merged, err := c.mergeHeaders(ctx, headers, contentType, body != nil)
	if err != nil {
		return "", err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": method,
			"url":    rawURL,
			"body":   len(body),
		})
	}

	resp, err := c.exchange(ctx, method, rawURL, merged, body)
	if err != nil {
		return "", err
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": method,
			"url":    rawURL,
			"status": resp.StatusCode,
			"body":   len(resp.Body),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", spotify.ParseAPIError(resp.StatusCode, resp.Body)
	}

	return string(resp.Body), nil
}

// mergeHeaders builds the final header map: backend defaults first, then the
// authorization header from the token source, then caller headers, each
// caller entry replacing any default of the same name case-insensitively.
func (c *Client) mergeHeaders(ctx context.Context, headers Headers, contentType string, hasBody bool) (Headers, error) {
	merged := Headers{"User-Agent": c.userAgent}
	if hasBody && contentType != "" {
		merged["Content-Type"] = contentType
	}

	for k, v := range c.defaultHeaders {
		setHeader(merged, k, v)
	}

	if c.tokens != nil {
		token, err := c.tokens.GetToken(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching access token: %w", err)
		}

		merged[HeaderAuthorization] = BearerAuth(token)
	}

	for k, v := range headers {
		setHeader(merged, k, v)
	}

	return merged, nil
}

// setHeader replaces any existing entry whose name matches k
// case-insensitively, then stores v under k as given.
func setHeader(headers Headers, k, v string) {
	for existing := range headers {
		if strings.EqualFold(existing, k) {
			delete(headers, existing)
		}
	}

	headers[k] = v
}

// marshalJSONBody encodes payload as the JSON request body. A nil payload
// means no body at all, not "null".
func marshalJSONBody(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, &spotify.SerializationError{Err: err}
	}

	return body, nil
}

// appendQuery flattens params into the URL's query string. The value is
// round-tripped through JSON so maps, url.Values-shaped maps, and tagged
// structs all work; nested objects are rejected.
func appendQuery(rawURL string, params any) (string, error) {
	if params == nil {
		return rawURL, nil
	}

	encoded, err := json.Marshal(params)
	if err != nil {
		return "", &spotify.SerializationError{Err: err}
	}

	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return "", &spotify.SerializationError{Err: fmt.Errorf("query params must be a flat object: %w", err)}
	}

	if len(fields) == 0 {
		return rawURL, nil
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", &spotify.NetworkError{URL: rawURL, Err: err}
	}

	query := parsed.Query()

	for key, value := range fields {
		switch v := value.(type) {
		case []any:
			for _, item := range v {
				query.Add(key, queryValue(item))
			}
		case map[string]any:
			return "", &spotify.SerializationError{Err: fmt.Errorf("query param %q: nested objects are not supported", key)}
		default:
			query.Add(key, queryValue(value))
		}
	}

	parsed.RawQuery = query.Encode()

	return parsed.String(), nil
}

func queryValue(v any) string {
	// JSON numbers decode as float64; render integral values without the
	// trailing ".0".
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}

	return fmt.Sprint(v)
}
