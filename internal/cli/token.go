package cli

import (
	"fmt"

	"github.com/Gobert4/ultrawatchtogether/internal/ui"
	"github.com/spf13/cobra"
)

var flagTokenServer string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Allocate a fresh room token",
	Long: `Ask the relay for a fresh room token without joining it. Useful for
sharing a room id ahead of the session.

Examples:
  uwt token
  uwt token --server relay.example.com`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runToken()
	},
}

func runToken() error {
	endpoints, err := ResolveEndpoints(serverValue(flagTokenServer))
	if err != nil {
		return err
	}

	stopSpinner := ui.RunSpinner("Requesting a room token...")
	token, err := fetchToken(endpoints)
	stopSpinner()
	if err != nil {
		return err
	}

	fmt.Println(ui.BoldStyle.Foreground(ui.Primary).Render(token))
	fmt.Println(ui.MutedStyle.Render("host it:  uwt host " + token))
	fmt.Println(ui.MutedStyle.Render("share:    " + endpoints.RoomLink(token)))
	return nil
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVarP(&flagTokenServer, "server", "s", "", "Relay server address")
}
