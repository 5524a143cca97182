package commands

import (
	"context"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

// NewMeCommand creates the me command.
func NewMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the authenticated user's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			user, err := client.Users().Me(context.Background())
			if err != nil {
				return err
			}

			if wantJSON() {
				return outputJSON(user)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Field", "Value")
			_ = table.Append("ID", user.ID)
			_ = table.Append("Display name", user.DisplayName)
			_ = table.Append("Email", user.Email)
			_ = table.Append("Country", user.Country)
			_ = table.Append("Product", user.Product)

			if user.Followers != nil {
				_ = table.Append("Followers", strconv.Itoa(user.Followers.Total))
			}

			_ = table.Render()

			return nil
		},
	}
}
