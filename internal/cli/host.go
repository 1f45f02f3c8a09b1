package cli

import (
	"fmt"

	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/Gobert4/ultrawatchtogether/internal/ui"
	"github.com/spf13/cobra"
)

var (
	flagHostServer string
	flagHostName   string
)

var hostCmd = &cobra.Command{
	Use:     "host [room-id]",
	Aliases: []string{"h"},
	Short:   "Open a room and host a watch session",
	Long: `Open a room on the relay and host a watch session. When no room id is
given a fresh token is allocated. Claiming a room that already has a
host disconnects the previous one.

Examples:
  uwt host
  uwt host movie-night-42
  uwt host --name Alice --server relay.example.com`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var roomID string
		if len(args) == 1 {
			roomID = args[0]
		}
		return runHost(roomID)
	},
}

func runHost(roomID string) error {
	endpoints, err := ResolveEndpoints(serverValue(flagHostServer))
	if err != nil {
		return err
	}

	if roomID == "" {
		stopSpinner := ui.RunSpinner("Requesting a room token...")
		roomID, err = fetchToken(endpoints)
		stopSpinner()
		if err != nil {
			return err
		}
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

	name := nameValue(flagHostName)
	info, err := joinRoom(conn, roomID, signaling.RoleHost, name)
	if err != nil {
		return err
	}

	ui.RenderRoomInfo(info.RoomID, endpoints.RoomLink(info.RoomID))

	if info.Roster != nil && len(info.Roster.Viewers) > 0 {
		fmt.Println()
		ui.RenderRoster(nil, info.Roster.Viewers, info.ID)
	}

	return runSession(conn, info, displayName(name, signaling.RoleHost))
}

func init() {
	rootCmd.AddCommand(hostCmd)

	hostCmd.Flags().StringVarP(&flagHostServer, "server", "s", "", "Relay server address")
	hostCmd.Flags().StringVarP(&flagHostName, "name", "n", "", "Display name shown to other members")
}
