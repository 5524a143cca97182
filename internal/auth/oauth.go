package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/WavyLabs/rspotify/internal/constants"
	"github.com/WavyLabs/rspotify/internal/http"
	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// Static errors for err113 compliance.
var (
	ErrNoValidCredentials = errors.New("no valid credentials available for token request")
	ErrEmptyAccessToken   = errors.New("token response contained no access token")
)

// OAuth2Config configures the grants a token manager may use.
type OAuth2Config struct {
	// TokenURL is the accounts-service token endpoint. Defaults to the
	// public accounts service when empty.
	TokenURL string

	// AuthURL is the user-consent page used by AuthorizeURL. Defaults to
	// the public accounts service when empty.
	AuthURL string

	ClientID     string
	ClientSecret string

	// RedirectURI is required for the authorization code flow.
	RedirectURI string

	// Scopes requested during the authorization code flow.
	Scopes []string

	// RefreshToken, if set, lets the manager renew access tokens without
	// user interaction.
	RefreshToken string

	// AccessToken, if set, seeds the manager with a static token.
	AccessToken string
}

// OAuth2TokenManager obtains and renews tokens from the accounts service.
// Grant selection: a held refresh token wins; a redirect URI with no token
// yet means the user must complete the authorization code flow; otherwise
// client credentials.
type OAuth2TokenManager struct {
	config    *OAuth2Config
	store     *TokenStore
	transport http.Transport
	mutex     sync.Mutex
}

// NewOAuth2TokenManager creates a token manager with its own transport.
func NewOAuth2TokenManager(config *OAuth2Config) *OAuth2TokenManager {
	return NewOAuth2TokenManagerWithTransport(config, http.NewClient(nil, http.WithHTTPTimeout(constants.ShortHTTPTimeout)))
}

// NewOAuth2TokenManagerWithTransport creates a token manager that performs
// token requests through the given transport.
func NewOAuth2TokenManagerWithTransport(config *OAuth2Config, transport http.Transport) *OAuth2TokenManager {
	if config.TokenURL == "" {
		config.TokenURL = constants.DefaultTokenEndpoint
	}

	if config.AuthURL == "" {
		config.AuthURL = constants.DefaultAuthEndpoint
	}

	manager := &OAuth2TokenManager{
		config:    config,
		store:     NewTokenStore(),
		transport: transport,
	}

	if config.AccessToken != "" {
		manager.store.Set(&Token{
			AccessToken:  config.AccessToken,
			TokenType:    "bearer",
			RefreshToken: config.RefreshToken,
		})
	}

	return manager
}

// GetToken returns a valid access token, refreshing or requesting one as
// needed.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// Another caller may have won the race while we waited for the lock.
	token = m.store.Get()
	if token.Valid() {
		return token.AccessToken, nil
	}

	token, err := m.requestNewToken(ctx)
	if err != nil {
		return "", err
	}

	return token.AccessToken, nil
}

// RefreshToken forces a token refresh regardless of the current token's
// validity.
func (m *OAuth2TokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	_, err := m.requestNewToken(ctx)

	return err
}

// SetToken manually sets the access token.
func (m *OAuth2TokenManager) SetToken(token string, expiresAt time.Time) {
	m.store.Set(&Token{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	})
}

// Current returns the full stored token, or nil.
func (m *OAuth2TokenManager) Current() *Token {
	return m.store.Get()
}

// Restore replaces the stored token wholesale, e.g. from a disk cache.
func (m *OAuth2TokenManager) Restore(token *Token) {
	m.store.Set(token)
}

// ExchangeCode redeems an authorization code for a token, completing the
// authorization code flow.
func (m *OAuth2TokenManager) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if m.config.RedirectURI == "" {
		return nil, spotify.ErrNoRedirectURI
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	form := http.FormData{
		"grant_type":   "authorization_code",
		"code":         code,
		"redirect_uri": m.config.RedirectURI,
	}

	return m.requestToken(ctx, form)
}

// AuthorizeURL builds the user-consent URL for the authorization code flow.
// state is echoed back on the redirect and should be verified by the caller.
func (m *OAuth2TokenManager) AuthorizeURL(state string) string {
	query := url.Values{}
	query.Set("client_id", m.config.ClientID)
	query.Set("response_type", "code")
	query.Set("redirect_uri", m.config.RedirectURI)

	if len(m.config.Scopes) > 0 {
		query.Set("scope", strings.Join(m.config.Scopes, " "))
	}

	if state != "" {
		query.Set("state", state)
	}

	return m.config.AuthURL + "?" + query.Encode()
}

// requestNewToken picks the grant to use and stores the result. Callers must
// hold the mutex.
func (m *OAuth2TokenManager) requestNewToken(ctx context.Context) (*Token, error) {
	refreshToken := m.config.RefreshToken
	if current := m.store.Get(); current != nil && current.RefreshToken != "" {
		refreshToken = current.RefreshToken
	}

	switch {
	case refreshToken != "":
		return m.requestToken(ctx, http.FormData{
			"grant_type":    "refresh_token",
			"refresh_token": refreshToken,
		})
	case m.config.RedirectURI != "":
		// Authorization-code configuration with no token exchanged yet.
		// A client_credentials fallback would mint an app-only token that
		// user endpoints reject with a plain 401, so refuse instead.
		return nil, spotify.ErrUserAuthorizationRequired
	case m.config.ClientID != "" && m.config.ClientSecret != "":
		return m.requestToken(ctx, http.FormData{
			"grant_type": "client_credentials",
		})
	default:
		return nil, ErrNoValidCredentials
	}
}

// requestToken posts the grant form to the token endpoint and stores the
// resulting token. Client credentials travel in a basic authorization
// header, the way the accounts service expects them.
func (m *OAuth2TokenManager) requestToken(ctx context.Context, form http.FormData) (*Token, error) {
	headers := http.Headers{}
	if m.config.ClientID != "" {
		headers[http.HeaderAuthorization] = http.BasicAuth(m.config.ClientID, m.config.ClientSecret)
	}

	body, err := m.transport.PostForm(ctx, m.config.TokenURL, headers, form)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	var token Token
	if err := json.Unmarshal([]byte(body), &token); err != nil {
		return nil, &spotify.SerializationError{Err: fmt.Errorf("parsing token response: %w", err)}
	}

	if token.AccessToken == "" {
		return nil, ErrEmptyAccessToken
	}

	if token.ExpiresIn > 0 {
		token.ExpiresAt = time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)
	}

	// The refresh-token grant often omits the refresh token; keep the one
	// we already hold.
	if token.RefreshToken == "" {
		if current := m.store.Get(); current != nil {
			token.RefreshToken = current.RefreshToken
		} else if m.config.RefreshToken != "" {
			token.RefreshToken = m.config.RefreshToken
		}
	}

	m.store.Set(&token)

	return &token, nil
}
