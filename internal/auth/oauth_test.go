package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

func TestOAuth2TokenManager_GetToken(t *testing.T) {
	t.Run("returns existing valid token", func(t *testing.T) {
		manager := NewOAuth2TokenManager(&OAuth2Config{
			AccessToken: "existing-token",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "existing-token", token)
	})

	t.Run("requests client credentials token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/token", r.URL.Path)
			assert.Equal(t, "POST", r.Method)

			clientID, clientSecret, ok := r.BasicAuth()
			require.True(t, ok)
			assert.Equal(t, "test-client", clientID)
			assert.Equal(t, "test-secret", clientSecret)

			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "client_credentials", r.Form.Get("grant_type"))

			response := Token{
				AccessToken: "new-access-token",
				ExpiresIn:   3600,
				TokenType:   "bearer",
			}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-access-token", token)

		current := manager.Current()
		require.NotNil(t, current)
		assert.WithinDuration(t, time.Now().Add(time.Hour), current.ExpiresAt, 5*time.Second)
	})

	t.Run("refreshes expired token using refresh token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
			assert.Equal(t, "old-refresh-token", r.Form.Get("refresh_token"))

			response := Token{
				AccessToken: "new-access-token",
				ExpiresIn:   3600,
				TokenType:   "bearer",
			}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL: server.URL + "/api/token",
		})

		// Set expired token
		manager.store.Set(&Token{
			AccessToken:  "expired-token",
			RefreshToken: "old-refresh-token",
			ExpiresAt:    time.Now().Add(-1 * time.Hour),
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "new-access-token", token)

		// The grant omitted the refresh token; the old one is carried over.
		assert.Equal(t, "old-refresh-token", manager.Current().RefreshToken)
	})

	t.Run("refresh token wins over client credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))

			response := Token{AccessToken: "refreshed", ExpiresIn: 3600}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RefreshToken: "config-refresh-token",
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "refreshed", token)
	})

	t.Run("fails without credentials", func(t *testing.T) {
		manager := NewOAuth2TokenManager(&OAuth2Config{})

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, ErrNoValidCredentials)
	})

	t.Run("authorization code config requires user consent first", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Error("no grant should be requested before the code exchange")
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RedirectURI:  "http://localhost:8888/callback",
		})

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, spotify.ErrUserAuthorizationRequired)
	})

	t.Run("cached refresh token beats the consent requirement", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))

			response := Token{AccessToken: "restored-access", ExpiresIn: 3600}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RedirectURI:  "http://localhost:8888/callback",
		})
		manager.Restore(&Token{
			AccessToken:  "stale",
			RefreshToken: "cached-refresh",
			ExpiresAt:    time.Now().Add(-time.Hour),
		})

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "restored-access", token)
	})

	t.Run("surfaces auth error from the accounts service", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_client","error_description":"Invalid client"}`))
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "bad-client",
			ClientSecret: "bad-secret",
		})

		_, err := manager.GetToken(context.Background())
		require.Error(t, err)
		assert.True(t, spotify.IsInvalidAuth(err))
		assert.Contains(t, err.Error(), "invalid_client")
		assert.Contains(t, err.Error(), "Invalid client")
	})

	t.Run("rejects token response without access token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
		})

		_, err := manager.GetToken(context.Background())
		require.ErrorIs(t, err, ErrEmptyAccessToken)
	})
}

func TestOAuth2TokenManager_SetToken(t *testing.T) {
	manager := NewOAuth2TokenManager(&OAuth2Config{})

	expiresAt := time.Now().Add(time.Hour)
	manager.SetToken("manual-token", expiresAt)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "manual-token", token)
}

func TestOAuth2TokenManager_RefreshToken(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++

		response := Token{AccessToken: "refreshed-token", ExpiresIn: 3600}
		_ = json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	manager := NewOAuth2TokenManager(&OAuth2Config{
		TokenURL:     server.URL + "/api/token",
		ClientID:     "test-client",
		ClientSecret: "test-secret",
	})

	// Seed a token that is still valid; RefreshToken must replace it anyway.
	manager.SetToken("still-valid", time.Now().Add(time.Hour))

	err := manager.RefreshToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, requests)

	token, err := manager.GetToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "refreshed-token", token)
}

func TestOAuth2TokenManager_ExchangeCode(t *testing.T) {
	t.Run("redeems the code", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
			assert.Equal(t, "the-code", r.Form.Get("code"))
			assert.Equal(t, "http://localhost:8888/callback", r.Form.Get("redirect_uri"))

			response := Token{
				AccessToken:  "code-token",
				RefreshToken: "code-refresh",
				ExpiresIn:    3600,
			}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		manager := NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:     server.URL + "/api/token",
			ClientID:     "test-client",
			ClientSecret: "test-secret",
			RedirectURI:  "http://localhost:8888/callback",
		})

		token, err := manager.ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "code-token", token.AccessToken)
		assert.Equal(t, "code-refresh", token.RefreshToken)

		// Subsequent calls use the stored token.
		access, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "code-token", access)
	})

	t.Run("requires a redirect URI", func(t *testing.T) {
		manager := NewOAuth2TokenManager(&OAuth2Config{
			ClientID:     "test-client",
			ClientSecret: "test-secret",
		})

		_, err := manager.ExchangeCode(context.Background(), "the-code")
		require.ErrorIs(t, err, spotify.ErrNoRedirectURI)
	})
}

func TestOAuth2TokenManager_AuthorizeURL(t *testing.T) {
	manager := NewOAuth2TokenManager(&OAuth2Config{
		AuthURL:     "https://accounts.example.com/authorize",
		ClientID:    "test-client",
		RedirectURI: "http://localhost:8888/callback",
		Scopes:      []string{"user-read-private", "playlist-modify-private"},
	})

	raw := manager.AuthorizeURL("state-123")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", parsed.Scheme)
	assert.Equal(t, "/authorize", parsed.Path)

	query := parsed.Query()
	assert.Equal(t, "test-client", query.Get("client_id"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "http://localhost:8888/callback", query.Get("redirect_uri"))
	assert.Equal(t, "user-read-private playlist-modify-private", query.Get("scope"))
	assert.Equal(t, "state-123", query.Get("state"))
}

func TestNewOAuth2TokenManager_Defaults(t *testing.T) {
	manager := NewOAuth2TokenManager(&OAuth2Config{ClientID: "test-client"})

	assert.Equal(t, "https://accounts.spotify.com/api/token", manager.config.TokenURL)
	assert.Equal(t, "https://accounts.spotify.com/authorize", manager.config.AuthURL)
}
