// Package client implements the spotify.Client interface on top of the
// transport capability, wiring authentication and the resource clients.
package client

import (
	"context"
	"strings"
	"time"

	"github.com/WavyLabs/rspotify/internal/auth"
	"github.com/WavyLabs/rspotify/internal/constants"
	"github.com/WavyLabs/rspotify/internal/http"
	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// Client implements the spotify.Client interface.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	baseURL      string
	logger       spotify.Logger

	// authFlow is non-nil when the client can drive the authorization code
	// flow; it is either the OAuth2 manager itself or its caching wrapper.
	authFlow authFlowManager

	users     spotify.UsersClient
	playlists spotify.PlaylistsClient
	player    spotify.PlayerClient
}

// authFlowManager is the authorization-code surface both the plain and the
// cached OAuth2 managers provide.
type authFlowManager interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*auth.Token, error)
}

// staticTokenManager serves a fixed token and cannot refresh.
type staticTokenManager struct {
	token string
}

func (m *staticTokenManager) GetToken(ctx context.Context) (string, error) {
	return m.token, nil
}

func (m *staticTokenManager) RefreshToken(ctx context.Context) error {
	return spotify.ErrStaticTokenNoRefresh
}

func (m *staticTokenManager) SetToken(token string, expiresAt time.Time) {
	m.token = token
}

// New creates a new Web API client.
func New(config *spotify.Config) (*Client, error) {
	if config == nil {
		return nil, spotify.ErrConfigRequired
	}

	baseURL := config.APIEndpoint
	if baseURL == "" {
		baseURL = constants.DefaultAPIEndpoint
	}

	baseURL = strings.TrimSuffix(baseURL, "/")

	tokenManager, authFlow := createTokenManager(config)

	httpOpts := createHTTPClientOptions(config)
	httpClient := http.NewClient(tokenSourceOrNil(tokenManager), httpOpts...)

	client := &Client{
		httpClient:   httpClient,
		tokenManager: tokenManager,
		baseURL:      baseURL,
		logger:       config.Logger,
		authFlow:     authFlow,
	}

	client.users = &UsersClient{client: client}
	client.playlists = &PlaylistsClient{client: client}
	client.player = &PlayerClient{client: client}

	return client, nil
}

// createTokenManager picks the token manager for the configured credentials,
// following the precedence documented on spotify.Config.
func createTokenManager(config *spotify.Config) (auth.TokenManager, authFlowManager) {
	hasOAuth := config.ClientID != "" || config.RefreshToken != ""

	if config.AccessToken != "" && !hasOAuth {
		return &staticTokenManager{token: config.AccessToken}, nil
	}

	if !hasOAuth {
		return nil, nil // No authentication
	}

	oauthConfig := &auth.OAuth2Config{
		TokenURL:     config.TokenURL,
		AuthURL:      config.AuthURL,
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURI:  config.RedirectURI,
		Scopes:       config.Scopes,
		RefreshToken: config.RefreshToken,
		AccessToken:  config.AccessToken,
	}

	// Token requests run through a transport of their own, without a token
	// source: the grant carries its credentials in a basic auth header.
	tokenTransport := http.NewClient(nil, createHTTPClientOptions(config)...)
	manager := auth.NewOAuth2TokenManagerWithTransport(oauthConfig, tokenTransport)

	if config.TokenCachePath != "" {
		cached := auth.NewCachedTokenManager(manager, auth.NewFileTokenCache(config.TokenCachePath))

		return cached, cached
	}

	return manager, manager
}

// createHTTPClientOptions builds transport options from config.
func createHTTPClientOptions(config *spotify.Config) []http.Option {
	var httpOpts []http.Option

	if config.Logger != nil {
		httpOpts = append(httpOpts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		retryWaitMin := constants.DefaultRetryWaitMin
		retryWaitMax := constants.DefaultRetryWaitMax

		if config.RetryWaitMin > 0 {
			retryWaitMin = config.RetryWaitMin
		}

		if config.RetryWaitMax > 0 {
			retryWaitMax = config.RetryWaitMax
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(config.RetryMax, retryWaitMin, retryWaitMax))
	}

	return httpOpts
}

// tokenSourceOrNil avoids handing the transport a non-nil interface holding
// a nil manager.
func tokenSourceOrNil(manager auth.TokenManager) http.TokenSource {
	if manager == nil {
		return nil
	}

	return manager
}

// endpoint joins the base URL and an API path into the absolute URL the
// transport requires.
func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

// Users returns the users resource client.
func (c *Client) Users() spotify.UsersClient {
	return c.users
}

// Playlists returns the playlists resource client.
func (c *Client) Playlists() spotify.PlaylistsClient {
	return c.playlists
}

// Player returns the player resource client.
func (c *Client) Player() spotify.PlayerClient {
	return c.player
}

// AuthorizeURL implements spotify.Client.AuthorizeURL.
func (c *Client) AuthorizeURL(state string) string {
	if c.authFlow == nil {
		return ""
	}

	return c.authFlow.AuthorizeURL(state)
}

// ExchangeCode implements spotify.Client.ExchangeCode.
func (c *Client) ExchangeCode(ctx context.Context, code string) error {
	if c.authFlow == nil {
		return spotify.ErrCredentialsRequired
	}

	_, err := c.authFlow.ExchangeCode(ctx, code)

	return err
}

// RefreshToken implements spotify.Client.RefreshToken.
func (c *Client) RefreshToken(ctx context.Context) error {
	if c.tokenManager == nil {
		return spotify.ErrNoTokenManager
	}

	return c.tokenManager.RefreshToken(ctx)
}

var _ spotify.Client = (*Client)(nil)
