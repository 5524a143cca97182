package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// PlayerClient implements spotify.PlayerClient.
type PlayerClient struct {
	client *Client
}

// CurrentlyPlaying implements spotify.PlayerClient.CurrentlyPlaying. The API
// answers 204 with an empty body when nothing is playing; that maps to
// (nil, nil).
func (c *PlayerClient) CurrentlyPlaying(ctx context.Context) (*spotify.CurrentlyPlaying, error) {
	body, err := c.client.httpClient.Get(ctx, c.client.endpoint("/me/player/currently-playing"), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting currently playing: %w", err)
	}

	if body == "" {
		return nil, nil
	}

	var playing spotify.CurrentlyPlaying
	if err := json.Unmarshal([]byte(body), &playing); err != nil {
		return nil, fmt.Errorf("parsing currently playing response: %w", err)
	}

	return &playing, nil
}

// Pause implements spotify.PlayerClient.Pause.
func (c *PlayerClient) Pause(ctx context.Context) error {
	_, err := c.client.httpClient.Put(ctx, c.client.endpoint("/me/player/pause"), nil, nil)
	if err != nil {
		return fmt.Errorf("pausing playback: %w", err)
	}

	return nil
}

// Resume implements spotify.PlayerClient.Resume.
func (c *PlayerClient) Resume(ctx context.Context) error {
	_, err := c.client.httpClient.Put(ctx, c.client.endpoint("/me/player/play"), nil, nil)
	if err != nil {
		return fmt.Errorf("resuming playback: %w", err)
	}

	return nil
}
