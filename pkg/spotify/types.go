package spotify

// Page is one window of a paged listing.
type Page[T any] struct {
	Href     string `json:"href"`
	Items    []T    `json:"items"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
	Total    int    `json:"total"`
	Next     string `json:"next"`
	Previous string `json:"previous"`
}

// HasNext reports whether another page exists.
func (p *Page[T]) HasNext() bool {
	return p.Next != ""
}

// ExternalURLs holds known external links for an object, keyed by provider.
type ExternalURLs map[string]string

// Image is an image in one of the sizes the API offers.
type Image struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// Followers holds follower information.
type Followers struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// PublicUser is the publicly visible part of a user profile.
type PublicUser struct {
	ID           string       `json:"id"`
	DisplayName  string       `json:"display_name"`
	ExternalURLs ExternalURLs `json:"external_urls"`
	Followers    *Followers   `json:"followers,omitempty"`
	Images       []Image      `json:"images"`
	URI          string       `json:"uri"`
}

// PrivateUser is the full profile of the authenticated user.
type PrivateUser struct {
	PublicUser

	Country string `json:"country,omitempty"`
	Email   string `json:"email,omitempty"`
	Product string `json:"product,omitempty"`
}

// SimplifiedArtist is the artist reference embedded in tracks and albums.
type SimplifiedArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SimplifiedAlbum is the album reference embedded in tracks.
type SimplifiedAlbum struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Artists []SimplifiedArtist `json:"artists"`
	Images  []Image            `json:"images"`
	URI     string             `json:"uri"`
}

// Track is a full track object.
type Track struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Artists    []SimplifiedArtist `json:"artists"`
	Album      SimplifiedAlbum    `json:"album"`
	DurationMs int                `json:"duration_ms"`
	Explicit   bool               `json:"explicit"`
	Popularity int                `json:"popularity"`
	URI        string             `json:"uri"`
}

// PlaylistTracksRef points at a playlist's tracks without embedding them.
type PlaylistTracksRef struct {
	Href  string `json:"href"`
	Total int    `json:"total"`
}

// SimplifiedPlaylist is the playlist object returned by listing endpoints.
type SimplifiedPlaylist struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Description   string            `json:"description"`
	Owner         PublicUser        `json:"owner"`
	Public        *bool             `json:"public"`
	Collaborative bool              `json:"collaborative"`
	Images        []Image           `json:"images"`
	SnapshotID    string            `json:"snapshot_id"`
	Tracks        PlaylistTracksRef `json:"tracks"`
	URI           string            `json:"uri"`
}

// PlaylistItem is one entry of a playlist's track listing.
type PlaylistItem struct {
	AddedAt string `json:"added_at"`
	Track   Track  `json:"track"`
}

// Playlist is a full playlist object.
type Playlist struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	Owner         PublicUser         `json:"owner"`
	Public        *bool              `json:"public"`
	Collaborative bool               `json:"collaborative"`
	Followers     *Followers         `json:"followers,omitempty"`
	Images        []Image            `json:"images"`
	SnapshotID    string             `json:"snapshot_id"`
	Tracks        Page[PlaylistItem] `json:"tracks"`
	URI           string             `json:"uri"`
}

// PlaylistCreateRequest is the body for creating a playlist.
type PlaylistCreateRequest struct {
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Public        *bool  `json:"public,omitempty"`
	Collaborative *bool  `json:"collaborative,omitempty"`
}

// PlaylistDetails is the body for changing a playlist's details. Nil fields
// are left untouched.
type PlaylistDetails struct {
	Name          *string `json:"name,omitempty"`
	Description   *string `json:"description,omitempty"`
	Public        *bool   `json:"public,omitempty"`
	Collaborative *bool   `json:"collaborative,omitempty"`
}

// SnapshotResponse carries the snapshot ID returned by playlist mutations.
type SnapshotResponse struct {
	SnapshotID string `json:"snapshot_id"`
}

// CurrentlyPlaying describes the item playing on the user's active device.
type CurrentlyPlaying struct {
	Timestamp  int64  `json:"timestamp"`
	ProgressMs int    `json:"progress_ms"`
	IsPlaying  bool   `json:"is_playing"`
	Item       *Track `json:"item"`
}
