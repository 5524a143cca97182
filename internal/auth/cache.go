package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/WavyLabs/rspotify/internal/constants"
)

// FileTokenCache persists a single token as JSON on disk, so an
// authorization-code token survives process restarts without sending the
// user back through the consent flow.
type FileTokenCache struct {
	path string
}

// NewFileTokenCache creates a cache at the given path.
func NewFileTokenCache(path string) *FileTokenCache {
	return &FileTokenCache{path: path}
}

// Load reads the cached token. A missing cache file returns (nil, nil).
func (c *FileTokenCache) Load() (*Token, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("reading token cache: %w", err)
	}

	var token Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token cache: %w", err)
	}

	return &token, nil
}

// Save writes the token to disk with owner-only permissions.
func (c *FileTokenCache) Save(token *Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("encoding token cache: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, constants.ConfigDirPerm); err != nil {
		return fmt.Errorf("creating token cache directory: %w", err)
	}

	if err := os.WriteFile(c.path, data, constants.ConfigFilePerm); err != nil {
		return fmt.Errorf("writing token cache: %w", err)
	}

	return nil
}

// Clear removes the cache file, if present.
func (c *FileTokenCache) Clear() error {
	err := os.Remove(c.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("removing token cache: %w", err)
	}

	return nil
}

// CachedTokenManager wraps an OAuth2TokenManager and keeps the disk cache in
// step with the stored token: the cache is loaded before the first request
// and rewritten whenever a refresh produces a different token.
type CachedTokenManager struct {
	manager *OAuth2TokenManager
	cache   *FileTokenCache
	mutex   sync.Mutex
	loaded  bool
	lastTok string
}

// NewCachedTokenManager creates a caching wrapper around manager.
func NewCachedTokenManager(manager *OAuth2TokenManager, cache *FileTokenCache) *CachedTokenManager {
	return &CachedTokenManager{
		manager: manager,
		cache:   cache,
	}
}

// GetToken returns a valid access token, loading the cache on first use and
// persisting any refreshed token.
func (m *CachedTokenManager) GetToken(ctx context.Context) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return "", err
	}

	token, err := m.manager.GetToken(ctx)
	if err != nil {
		return "", err
	}

	m.persistIfChanged()

	return token, nil
}

// RefreshToken forces a refresh and persists the result.
func (m *CachedTokenManager) RefreshToken(ctx context.Context) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if err := m.ensureLoaded(); err != nil {
		return err
	}

	if err := m.manager.RefreshToken(ctx); err != nil {
		return err
	}

	m.persistIfChanged()

	return nil
}

// SetToken manually sets the access token and persists it.
func (m *CachedTokenManager) SetToken(token string, expiresAt time.Time) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.manager.SetToken(token, expiresAt)
	m.persistIfChanged()
}

// ExchangeCode redeems an authorization code and persists the token.
func (m *CachedTokenManager) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	token, err := m.manager.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	m.persistIfChanged()

	return token, nil
}

// AuthorizeURL builds the user-consent URL for the authorization code flow.
func (m *CachedTokenManager) AuthorizeURL(state string) string {
	return m.manager.AuthorizeURL(state)
}

func (m *CachedTokenManager) ensureLoaded() error {
	if m.loaded {
		return nil
	}

	m.loaded = true

	cached, err := m.cache.Load()
	if err != nil {
		return err
	}

	if cached != nil && (cached.Valid() || cached.RefreshToken != "") {
		m.manager.Restore(cached)
		m.lastTok = cached.AccessToken
	}

	return nil
}

func (m *CachedTokenManager) persistIfChanged() {
	current := m.manager.Current()
	if current == nil || current.AccessToken == m.lastTok {
		return
	}

	if err := m.cache.Save(current); err != nil {
		// Persisting is best-effort; the in-memory token is still good.
		_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to persist token cache: %v\n", err)

		return
	}

	m.lastTok = current.AccessToken
}
