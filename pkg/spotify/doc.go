// Package spotify provides types, interfaces, and helpers for working with
// the Spotify Web API.
//
// # Overview
//
// The spotify package defines the domain types (e.g., PrivateUser, Playlist,
// Track) and the interfaces for resource-oriented clients (UsersClient,
// PlaylistsClient, PlayerClient). A concrete implementation is provided by
// the spotifyclient package, which wires configuration, transport, and
// authentication. Most consumers should import spotifyclient to construct a
// client and then interact with the interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/WavyLabs/rspotify/pkg/spotifyclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := spotifyclient.NewWithClientCredentials("client-id", "client-secret")
//	  if err != nil { log.Fatal(err) }
//
//	  playlist, err := cli.Playlists().Get(ctx, "37i9dQZF1DXcBWIGoYBM5M")
//	  if err != nil { log.Fatal(err) }
//	  _ = playlist
//	}
//
// # Errors
//
// Failures are represented by a closed set of typed errors: AuthError for
// authentication failures, APIError for other non-2xx responses,
// NetworkError for transport failures, and SerializationError for
// encode/decode failures. Helpers such as IsInvalidAuth, IsNotFound, and
// IsNetwork make it easy to branch on common cases; IsInvalidAuth in
// particular lets a caller trigger re-authentication without inspecting
// status codes.
//
// # Transport backends
//
// The HTTP layer compiles against one of two interchangeable network
// backends, selected at build time: the default blocking net/http backend,
// or a direct-dial client enabled with the "rawhttp" build tag. Both expose
// identical behavior; see internal/http.
package spotify
