// Package spotifyclient provides the main entry point for creating Web API
// clients.
package spotifyclient

import (
	"fmt"
	"strings"

	"github.com/WavyLabs/rspotify/internal/client"
	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// New creates a new Web API client from config.
func New(config *spotify.Config) (spotify.Client, error) {
	if config == nil {
		return nil, spotify.ErrConfigRequired
	}

	normalizeEndpoints(config)

	apiClient, err := client.New(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return apiClient, nil
}

// normalizeEndpoints trims trailing slashes and defaults missing schemes on
// any endpoint overrides.
func normalizeEndpoints(config *spotify.Config) {
	config.APIEndpoint = normalizeURL(config.APIEndpoint)
	config.TokenURL = normalizeURL(config.TokenURL)
	config.AuthURL = normalizeURL(config.AuthURL)
}

func normalizeURL(raw string) string {
	if raw == "" {
		return ""
	}

	raw = strings.TrimSuffix(raw, "/")
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}

	return raw
}

// NewWithToken creates a new client around an existing access token. The
// token is used as-is and cannot be refreshed.
func NewWithToken(token string) (spotify.Client, error) {
	return New(&spotify.Config{
		AccessToken: token,
	})
}

// NewWithClientCredentials creates a new client using the client_credentials
// grant; it can reach app-only endpoints but nothing acting on a user.
func NewWithClientCredentials(clientID, clientSecret string) (spotify.Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, spotify.ErrCredentialsRequired
	}

	return New(&spotify.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
	})
}

// NewWithAuthorizationCode creates a client configured for the authorization
// code flow. The caller sends the user to AuthorizeURL and completes login
// with ExchangeCode; tokenCachePath may be empty to skip disk caching.
func NewWithAuthorizationCode(clientID, clientSecret, redirectURI string, scopes []string, tokenCachePath string) (spotify.Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, spotify.ErrCredentialsRequired
	}

	if redirectURI == "" {
		return nil, spotify.ErrNoRedirectURI
	}

	return New(&spotify.Config{
		ClientID:       clientID,
		ClientSecret:   clientSecret,
		RedirectURI:    redirectURI,
		Scopes:         scopes,
		TokenCachePath: tokenCachePath,
	})
}
