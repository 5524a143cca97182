package constants

import "time"

// Service endpoints.
const (
	// DefaultAPIEndpoint is the base URL for the Web API.
	DefaultAPIEndpoint = "https://api.spotify.com/v1"

	// DefaultAuthEndpoint is the accounts-service authorization page.
	DefaultAuthEndpoint = "https://accounts.spotify.com/authorize"

	// DefaultTokenEndpoint is the accounts-service token endpoint.
	DefaultTokenEndpoint = "https://accounts.spotify.com/api/token"
)

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration and token cache files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits, applied only when retries are explicitly configured.
const (
	// DefaultRetryMax is the retry count used when retries are enabled
	// without an explicit maximum.
	DefaultRetryMax = 3

	// DefaultRetryWaitMin is the minimum backoff between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum backoff between retries.
	DefaultRetryWaitMax = 10 * time.Second
)

// Token lifetime handling.
const (
	// TokenExpiryBuffer is subtracted from a token's lifetime so requests
	// never race an expiring token.
	TokenExpiryBuffer = 30 * time.Second
)

// Paging defaults for list endpoints.
const (
	// DefaultPageLimit is the page size requested when none is given.
	DefaultPageLimit = 20

	// MaxPageLimit is the largest page size the Web API accepts.
	MaxPageLimit = 50
)
