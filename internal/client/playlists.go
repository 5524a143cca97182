package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/WavyLabs/rspotify/internal/constants"
	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// PlaylistsClient implements spotify.PlaylistsClient.
type PlaylistsClient struct {
	client *Client
}

// Get implements spotify.PlaylistsClient.Get.
func (c *PlaylistsClient) Get(ctx context.Context, playlistID string) (*spotify.Playlist, error) {
	path := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))

	body, err := c.client.httpClient.Get(ctx, c.client.endpoint(path), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting playlist: %w", err)
	}

	var playlist spotify.Playlist
	if err := json.Unmarshal([]byte(body), &playlist); err != nil {
		return nil, fmt.Errorf("parsing playlist response: %w", err)
	}

	return &playlist, nil
}

// ListMine implements spotify.PlaylistsClient.ListMine.
func (c *PlaylistsClient) ListMine(ctx context.Context, limit, offset int) (*spotify.Page[spotify.SimplifiedPlaylist], error) {
	if limit <= 0 {
		limit = constants.DefaultPageLimit
	}

	if limit > constants.MaxPageLimit {
		limit = constants.MaxPageLimit
	}

	params := map[string]int{
		"limit":  limit,
		"offset": offset,
	}

	body, err := c.client.httpClient.Get(ctx, c.client.endpoint("/me/playlists"), nil, params)
	if err != nil {
		return nil, fmt.Errorf("listing playlists: %w", err)
	}

	var page spotify.Page[spotify.SimplifiedPlaylist]
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return nil, fmt.Errorf("parsing playlists response: %w", err)
	}

	return &page, nil
}

// Create implements spotify.PlaylistsClient.Create.
func (c *PlaylistsClient) Create(ctx context.Context, userID string, request *spotify.PlaylistCreateRequest) (*spotify.Playlist, error) {
	path := fmt.Sprintf("/users/%s/playlists", url.PathEscape(userID))

	body, err := c.client.httpClient.Post(ctx, c.client.endpoint(path), nil, request)
	if err != nil {
		return nil, fmt.Errorf("creating playlist: %w", err)
	}

	var playlist spotify.Playlist
	if err := json.Unmarshal([]byte(body), &playlist); err != nil {
		return nil, fmt.Errorf("parsing playlist response: %w", err)
	}

	return &playlist, nil
}

// ChangeDetails implements spotify.PlaylistsClient.ChangeDetails.
func (c *PlaylistsClient) ChangeDetails(ctx context.Context, playlistID string, request *spotify.PlaylistDetails) error {
	path := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))

	_, err := c.client.httpClient.Put(ctx, c.client.endpoint(path), nil, request)
	if err != nil {
		return fmt.Errorf("changing playlist details: %w", err)
	}

	return nil
}

// AddItems implements spotify.PlaylistsClient.AddItems.
func (c *PlaylistsClient) AddItems(ctx context.Context, playlistID string, uris []string) (string, error) {
	path := fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(playlistID))
	payload := map[string][]string{"uris": uris}

	body, err := c.client.httpClient.Post(ctx, c.client.endpoint(path), nil, payload)
	if err != nil {
		return "", fmt.Errorf("adding playlist items: %w", err)
	}

	var snapshot spotify.SnapshotResponse
	if err := json.Unmarshal([]byte(body), &snapshot); err != nil {
		return "", fmt.Errorf("parsing snapshot response: %w", err)
	}

	return snapshot.SnapshotID, nil
}

// Unfollow implements spotify.PlaylistsClient.Unfollow.
func (c *PlaylistsClient) Unfollow(ctx context.Context, playlistID string) error {
	path := fmt.Sprintf("/playlists/%s/followers", url.PathEscape(playlistID))

	_, err := c.client.httpClient.Delete(ctx, c.client.endpoint(path), nil, nil)
	if err != nil {
		return fmt.Errorf("unfollowing playlist: %w", err)
	}

	return nil
}
