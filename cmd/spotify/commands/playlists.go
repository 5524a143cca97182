package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/WavyLabs/rspotify/pkg/spotify"
)

// NewPlaylistsCommand creates the playlists command group.
func NewPlaylistsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "Manage playlists",
	}

	cmd.AddCommand(newPlaylistsListCommand())
	cmd.AddCommand(newPlaylistsGetCommand())

	return cmd
}

func newPlaylistsListCommand() *cobra.Command {
	var (
		limit    int
		offset   int
		allPages bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the current user's playlists",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			playlists, err := collectPlaylists(ctx, client, limit, offset, allPages)
			if err != nil {
				return err
			}

			if wantJSON() {
				return outputJSON(playlists)
			}

			return renderPlaylistsTable(playlists)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "page size (max 50)")
	cmd.Flags().IntVar(&offset, "offset", 0, "index of the first playlist")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func collectPlaylists(ctx context.Context, client spotify.Client, limit, offset int, allPages bool) ([]spotify.SimplifiedPlaylist, error) {
	var playlists []spotify.SimplifiedPlaylist

	for {
		page, err := client.Playlists().ListMine(ctx, limit, offset)
		if err != nil {
			return nil, err
		}

		playlists = append(playlists, page.Items...)

		if !allPages || !page.HasNext() {
			return playlists, nil
		}

		offset += page.Limit
	}
}

func renderPlaylistsTable(playlists []spotify.SimplifiedPlaylist) error {
	if len(playlists) == 0 {
		_, _ = os.Stdout.WriteString("No playlists found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "ID", "Owner", "Tracks", "Public")

	for _, playlist := range playlists {
		public := "no"
		if playlist.Public != nil && *playlist.Public {
			public = "yes"
		}

		_ = table.Append(playlist.Name, playlist.ID, playlist.Owner.DisplayName,
			strconv.Itoa(playlist.Tracks.Total), public)
	}

	_ = table.Render()

	return nil
}

func newPlaylistsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get PLAYLIST_ID",
		Short: "Show playlist details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			playlist, err := client.Playlists().Get(context.Background(), args[0])
			if err != nil {
				if spotify.IsNotFound(err) {
					return fmt.Errorf("%w: %s", spotify.ErrPlaylistNotFound, args[0])
				}

				return err
			}

			if wantJSON() {
				return outputJSON(playlist)
			}

			return renderPlaylistDetails(playlist)
		},
	}
}

func renderPlaylistDetails(playlist *spotify.Playlist) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Field", "Value")
	_ = table.Append("Name", playlist.Name)
	_ = table.Append("ID", playlist.ID)
	_ = table.Append("Owner", playlist.Owner.DisplayName)
	_ = table.Append("Description", playlist.Description)
	_ = table.Append("Tracks", strconv.Itoa(playlist.Tracks.Total))
	_ = table.Append("Snapshot", playlist.SnapshotID)
	_ = table.Render()

	if len(playlist.Tracks.Items) == 0 {
		return nil
	}

	fmt.Fprintln(os.Stdout)

	tracks := tablewriter.NewWriter(os.Stdout)
	tracks.Header("#", "Title", "Artist", "Duration")

	for i, item := range playlist.Tracks.Items {
		artist := ""
		if len(item.Track.Artists) > 0 {
			artist = item.Track.Artists[0].Name
		}

		duration := fmt.Sprintf("%d:%02d", item.Track.DurationMs/60000, item.Track.DurationMs%60000/1000)
		_ = tracks.Append(strconv.Itoa(i+1), item.Track.Name, artist, duration)
	}

	_ = tracks.Render()

	return nil
}
