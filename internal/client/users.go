package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// UsersClient implements spotify.UsersClient.
type UsersClient struct {
	client *Client
}

// Me implements spotify.UsersClient.Me.
func (c *UsersClient) Me(ctx context.Context) (*spotify.PrivateUser, error) {
	body, err := c.client.httpClient.Get(ctx, c.client.endpoint("/me"), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting current user: %w", err)
	}

	var user spotify.PrivateUser
	if err := json.Unmarshal([]byte(body), &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}

// Get implements spotify.UsersClient.Get.
func (c *UsersClient) Get(ctx context.Context, userID string) (*spotify.PublicUser, error) {
	path := fmt.Sprintf("/users/%s", url.PathEscape(userID))

	body, err := c.client.httpClient.Get(ctx, c.client.endpoint(path), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}

	var user spotify.PublicUser
	if err := json.Unmarshal([]byte(body), &user); err != nil {
		return nil, fmt.Errorf("parsing user response: %w", err)
	}

	return &user, nil
}
