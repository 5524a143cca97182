package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/WavyLabs/rspotify/pkg/spotify"
	"github.com/WavyLabs/rspotify/pkg/spotifyclient"
)

// NewLoginCommand creates the login command.
func NewLoginCommand() *cobra.Command {
	var (
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with the Web API",
		Long:  "Store application credentials and verify them with a client-credentials token grant",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			if clientID == "" {
				clientID = config.ClientID
			}

			if clientID == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("Client ID: ")
				clientID, _ = reader.ReadString('\n')
				clientID = strings.TrimSpace(clientID)
			}

			if clientID == "" {
				return spotify.ErrCredentialsRequired
			}

			if clientSecret == "" {
				fmt.Print("Client secret: ")

				byteSecret, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read client secret: %w", err)
				}

				clientSecret = string(byteSecret)

				fmt.Println()
			}

			client, err := spotifyclient.NewWithClientCredentials(clientID, clientSecret)
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}

			// Verify the credentials by forcing a token grant.
			if err := client.RefreshToken(context.Background()); err != nil {
				return fmt.Errorf("authentication failed: %w", err)
			}

			config.ClientID = clientID
			config.ClientSecret = clientSecret

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "Login successful")

			return nil
		},
	}

	cmd.Flags().StringVar(&clientID, "client-id", "", "application client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "application client secret")

	return cmd
}

// NewLogoutCommand creates the logout command.
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget stored credentials and cached tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.ClientID = ""
			config.ClientSecret = ""
			config.Token = ""
			config.TokenExpires = nil
			config.RefreshToken = ""

			if err := saveConfigStruct(config); err != nil {
				return err
			}

			if cache := tokenCachePath(); cache != "" {
				if err := os.Remove(cache); err != nil && !os.IsNotExist(err) {
					fmt.Fprintf(os.Stderr, "Warning: failed to remove token cache: %v\n", err)
				}
			}

			fmt.Fprintln(os.Stdout, "Logged out")

			return nil
		},
	}
}
