package spotify

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired            = errors.New("config is required")
	ErrCredentialsRequired       = errors.New("client credentials are required")
	ErrNoTokenManager            = errors.New("no token manager configured")
	ErrStaticTokenNoRefresh      = errors.New("static token cannot be refreshed")
	ErrNoRedirectURI             = errors.New("redirect URI is required for the authorization code flow")
	ErrUserAuthorizationRequired = errors.New("user authorization required: complete the authorization code flow")
	ErrUnknownConfigKey          = errors.New("unknown configuration key")
	ErrTokenFieldsCannotUnset    = errors.New("token fields cannot be unset via config command")
	ErrTokenFieldsNotPrintable   = errors.New("token fields are not printable")
	ErrNotAuthenticated          = errors.New("not authenticated")
	ErrPlaylistNotFound          = errors.New("playlist not found")
)

// AuthError is an authentication or authorization failure reported by the
// accounts service, such as an expired access token or bad client
// credentials. It is kept distinct from APIError so callers can trigger a
// re-authentication flow without inspecting status codes.
type AuthError struct {
	// ErrorKind is the OAuth error code, e.g. "invalid_client" or
	// "invalid_grant".
	ErrorKind   string `json:"error"`
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Description == "" {
		return fmt.Sprintf("authentication failed: %s", e.ErrorKind)
	}

	return fmt.Sprintf("authentication failed: %s: %s", e.ErrorKind, e.Description)
}

// APIError is a non-2xx response from the Web API that is not an
// authentication failure. ErrorMessage carries the message from the regular
// error object when the body parsed as one; Body always carries the raw
// response text.
type APIError struct {
	StatusCode   int    `json:"status"`
	ErrorMessage string `json:"message"`
	Body         string `json:"-"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorMessage != "" {
		return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.ErrorMessage)
	}

	return fmt.Sprintf("api error (status %d)", e.StatusCode)
}

// NetworkError is a transport-level failure: the connection could not be
// established, timed out, or was interrupted before a response arrived.
type NetworkError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SerializationError is a failure to encode a request payload or to read a
// response body as text.
type SerializationError struct {
	Err error
}

// Error implements the error interface.
func (e *SerializationError) Error() string {
	return fmt.Sprintf("serialization failed: %v", e.Err)
}

// Unwrap returns the underlying cause.
func (e *SerializationError) Unwrap() error {
	return e.Err
}

// IsInvalidAuth checks if the error is an authentication failure.
func IsInvalidAuth(err error) bool {
	authErr := &AuthError{}

	return errors.As(err, &authErr)
}

// IsNetwork checks if the error is a transport-level failure.
func IsNetwork(err error) bool {
	netErr := &NetworkError{}

	return errors.As(err, &netErr)
}

// IsSerialization checks if the error is a serialization failure.
func IsSerialization(err error) bool {
	serErr := &SerializationError{}

	return errors.As(err, &serErr)
}

// IsNotFound checks if the error is a 404 API error.
func IsNotFound(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusNotFound
	}

	return false
}

// IsRateLimited checks if the error is a 429 API error.
func IsRateLimited(err error) bool {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}

	return false
}

// regularErrorBody is the Web API's wrapper for non-auth errors.
type regularErrorBody struct {
	Error APIError `json:"error"`
}

// ParseAPIError builds the typed error for a non-2xx response body. Auth
// failures are recognized by the OAuth error object the accounts service
// returns on 400/401/403; everything else becomes an APIError carrying the
// status and, when parseable, the message from the regular error object.
func ParseAPIError(statusCode int, body []byte) error {
	if statusCode == http.StatusBadRequest ||
		statusCode == http.StatusUnauthorized ||
		statusCode == http.StatusForbidden {
		var authErr AuthError
		if err := json.Unmarshal(body, &authErr); err == nil && authErr.ErrorKind != "" {
			return &authErr
		}
	}

	apiErr := &APIError{StatusCode: statusCode, Body: string(body)}

	var wrapped regularErrorBody
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error.ErrorMessage != "" {
		apiErr.ErrorMessage = wrapped.Error.ErrorMessage
	}

	return apiErr
}
