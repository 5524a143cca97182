package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTokenCache(t *testing.T) {
	t.Run("load missing file returns nil", func(t *testing.T) {
		cache := NewFileTokenCache(filepath.Join(t.TempDir(), "token.json"))

		token, err := cache.Load()
		require.NoError(t, err)
		assert.Nil(t, token)
	})

	t.Run("save and load round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "token.json")
		cache := NewFileTokenCache(path)

		saved := &Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresAt:    time.Now().Add(time.Hour).Truncate(time.Second),
		}
		require.NoError(t, cache.Save(saved))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		loaded, err := cache.Load()
		require.NoError(t, err)
		assert.Equal(t, "access", loaded.AccessToken)
		assert.Equal(t, "refresh", loaded.RefreshToken)
		assert.True(t, loaded.ExpiresAt.Equal(saved.ExpiresAt))
	})

	t.Run("load rejects corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		require.NoError(t, os.WriteFile(path, []byte("not json"), 0o600))

		cache := NewFileTokenCache(path)

		_, err := cache.Load()
		require.Error(t, err)
	})

	t.Run("clear removes the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		cache := NewFileTokenCache(path)

		require.NoError(t, cache.Save(&Token{AccessToken: "access"}))
		require.NoError(t, cache.Clear())

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err))

		// Clearing again is not an error.
		require.NoError(t, cache.Clear())
	})
}

func TestCachedTokenManager(t *testing.T) {
	t.Run("serves cached token without a network round trip", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		cache := NewFileTokenCache(path)
		require.NoError(t, cache.Save(&Token{
			AccessToken: "cached-token",
			ExpiresAt:   time.Now().Add(time.Hour),
		}))

		manager := NewCachedTokenManager(NewOAuth2TokenManager(&OAuth2Config{}), cache)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "cached-token", token)
	})

	t.Run("refreshes using the cached refresh token and persists", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := r.ParseForm()
			require.NoError(t, err)
			assert.Equal(t, "refresh_token", r.Form.Get("grant_type"))
			assert.Equal(t, "cached-refresh", r.Form.Get("refresh_token"))

			response := Token{AccessToken: "fresh-token", ExpiresIn: 3600}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		path := filepath.Join(t.TempDir(), "token.json")
		cache := NewFileTokenCache(path)
		require.NoError(t, cache.Save(&Token{
			AccessToken:  "stale-token",
			RefreshToken: "cached-refresh",
			ExpiresAt:    time.Now().Add(-time.Hour),
		}))

		manager := NewCachedTokenManager(NewOAuth2TokenManager(&OAuth2Config{
			TokenURL: server.URL + "/api/token",
		}), cache)

		token, err := manager.GetToken(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", token)

		persisted, err := cache.Load()
		require.NoError(t, err)
		assert.Equal(t, "fresh-token", persisted.AccessToken)
		assert.Equal(t, "cached-refresh", persisted.RefreshToken)
	})

	t.Run("exchange code persists the new token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			response := Token{
				AccessToken:  "code-token",
				RefreshToken: "code-refresh",
				ExpiresIn:    3600,
			}
			_ = json.NewEncoder(w).Encode(response)
		}))
		defer server.Close()

		path := filepath.Join(t.TempDir(), "token.json")
		manager := NewCachedTokenManager(NewOAuth2TokenManager(&OAuth2Config{
			TokenURL:    server.URL + "/api/token",
			ClientID:    "test-client",
			RedirectURI: "http://localhost:8888/callback",
		}), NewFileTokenCache(path))

		token, err := manager.ExchangeCode(context.Background(), "the-code")
		require.NoError(t, err)
		assert.Equal(t, "code-token", token.AccessToken)

		persisted, err := NewFileTokenCache(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "code-token", persisted.AccessToken)
		assert.Equal(t, "code-refresh", persisted.RefreshToken)
	})

	t.Run("set token persists", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "token.json")
		manager := NewCachedTokenManager(NewOAuth2TokenManager(&OAuth2Config{}), NewFileTokenCache(path))

		manager.SetToken("manual-token", time.Now().Add(time.Hour))

		persisted, err := NewFileTokenCache(path).Load()
		require.NoError(t, err)
		assert.Equal(t, "manual-token", persisted.AccessToken)
	})
}
