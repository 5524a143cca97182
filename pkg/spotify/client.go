package spotify

import (
	"context"
	"time"
)

// UsersClient provides access to user profile endpoints.
type UsersClient interface {
	// Me returns the profile of the user the current token belongs to.
	Me(ctx context.Context) (*PrivateUser, error)
	// Get returns the public profile of a user.
	Get(ctx context.Context, userID string) (*PublicUser, error)
}

// PlaylistsClient provides access to playlist endpoints.
type PlaylistsClient interface {
	Get(ctx context.Context, playlistID string) (*Playlist, error)
	// ListMine pages through the current user's playlists. limit of 0
	// requests the default page size.
	ListMine(ctx context.Context, limit, offset int) (*Page[SimplifiedPlaylist], error)
	Create(ctx context.Context, userID string, request *PlaylistCreateRequest) (*Playlist, error)
	ChangeDetails(ctx context.Context, playlistID string, request *PlaylistDetails) error
	// AddItems appends track or episode URIs and returns the new snapshot ID.
	AddItems(ctx context.Context, playlistID string, uris []string) (string, error)
	// Unfollow removes the playlist from the current user's library. The
	// Web API has no delete; unfollowing is how playlists go away.
	Unfollow(ctx context.Context, playlistID string) error
}

// PlayerClient provides access to playback endpoints.
type PlayerClient interface {
	// CurrentlyPlaying returns the playing item, or nil when nothing is
	// playing (the API answers 204).
	CurrentlyPlaying(ctx context.Context) (*CurrentlyPlaying, error)
	Pause(ctx context.Context) error
	Resume(ctx context.Context) error
}

// Client is the resource-level surface of the library. Concrete clients are
// built by the spotifyclient package.
type Client interface {
	Users() UsersClient
	Playlists() PlaylistsClient
	Player() PlayerClient

	// AuthorizeURL builds the user-consent URL for the authorization code
	// flow; state is echoed back on the redirect.
	AuthorizeURL(state string) string

	// ExchangeCode completes the authorization code flow.
	ExchangeCode(ctx context.Context, code string) error

	// RefreshToken forces a token refresh.
	RefreshToken(ctx context.Context) error
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a spotify.Client.
//
// # Authentication precedence
//
//  1. AccessToken: used directly as a static Bearer token. If a RefreshToken
//     is also set, the client refreshes when the token stops working.
//  2. ClientID/ClientSecret with RedirectURI: authorization code flow. The
//     caller sends the user to AuthorizeURL and completes login through
//     ExchangeCode; with TokenCachePath set, the token survives restarts.
//  3. ClientID/ClientSecret alone: client_credentials grant, app-only
//     endpoints.
//  4. No credentials: requests are sent without authentication (almost every
//     endpoint rejects this; useful only for testing).
type Config struct {
	// APIEndpoint overrides the Web API base URL. Defaults to the public
	// service; mainly useful for tests.
	APIEndpoint string

	// TokenURL and AuthURL override the accounts-service endpoints.
	TokenURL string
	AuthURL  string

	// Authentication options (see precedence above).
	ClientID     string
	ClientSecret string
	RedirectURI  string
	Scopes       []string
	RefreshToken string
	AccessToken  string

	// TokenCachePath, when set, persists tokens to this file so the
	// authorization code flow is not repeated on every run.
	TokenCachePath string

	// HTTPTimeout is a per-exchange timeout. Most callers should rely on
	// context deadlines instead.
	HTTPTimeout time.Duration

	// RetryMax enables retries on transient failures when > 0. The default
	// of 0 keeps the transport at exactly one exchange per call.
	RetryMax     int
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration

	// Debug enables verbose HTTP request/response logging when a Logger is
	// provided.
	Debug bool
	// Logger is the optional structured logger used by the HTTP layer.
	Logger Logger
	// UserAgent overrides the default User-Agent header.
	UserAgent string
}
