package cli

import (
	"fmt"

	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/Gobert4/ultrawatchtogether/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagJoinServer string
	flagJoinName   string
)

var joinCmd = &cobra.Command{
	Use:     "join <room-id|link>",
	Aliases: []string{"j"},
	Short:   "Join a running watch session as a viewer",
	Long: `Join a room as a viewer. The room must have a live host; joins into
empty or host-less rooms are rejected by the relay.

Examples:
  uwt join movie-night-42
  uwt join https://relay.example.com/r/movie-night-42
  uwt join movie-night-42 --name Bob`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roomID, err := parseRoomInput(args[0])
		if err != nil {
			return err
		}
		return runJoin(roomID)
	},
}

func runJoin(roomID string) error {
	endpoints, err := ResolveEndpoints(serverValue(flagJoinServer))
	if err != nil {
		return err
	}

	fmt.Println()
	stopSpinner := ui.RunConnectionSpinner("Connecting to relay...")
	conn, err := connect(endpoints)
	if err != nil {
		stopSpinner()
		return err
	}
	defer conn.Close()
	stopSpinner()

	name := nameValue(flagJoinName)
	info, err := joinRoom(conn, roomID, signaling.RoleViewer, name)
	if err != nil {
		return err
	}

	ui.PrintSuccessf("Joined room %s", info.RoomID)
	if info.Roster != nil {
		fmt.Println()
		ui.RenderRoster(info.Roster.Host, info.Roster.Viewers, info.ID)
	}

	return runSession(conn, info, displayName(name, signaling.RoleViewer))
}

func init() {
	rootCmd.AddCommand(joinCmd)

	joinCmd.Flags().StringVarP(&flagJoinServer, "server", "s", "", "Relay server address")
	joinCmd.Flags().StringVarP(&flagJoinName, "name", "n", "", "Display name shown to other members")
}
