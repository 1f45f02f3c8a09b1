package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/client"
	"github.com/Gobert4/ultrawatchtogether/internal/dns"
	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/Gobert4/ultrawatchtogether/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// connection bundles the live relay link with its message demux.
type connection struct {
	Client  *client.Client
	Handler *client.Handler
	SelfID  string
}

// connect dials the relay and waits for the hello frame carrying our
// assigned identifier.
func connect(e *Endpoints) (*connection, error) {
	c := client.NewClient(e.WS)
	if err := c.Connect(); err != nil {
		return nil, fmt.Errorf("connect to relay: %w", err)
	}

	h := client.NewHandler(c)
	go h.Start()

	conn := &connection{Client: c, Handler: h}
	select {
	case id := <-h.Hello:
		conn.SelfID = id
	case msg := <-h.Errors:
		c.Close()
		return nil, fmt.Errorf("relay rejected connection: %s", msg)
	case <-h.Disconnected:
		c.Close()
		return nil, errors.New("relay closed the connection")
	}

	return conn, nil
}

func (c *connection) Close() {
	c.Client.Close()
}

// joinRoom sends the join request and waits for the acknowledgment.
func joinRoom(conn *connection, roomID string, role signaling.Role, name string) (*client.JoinInfo, error) {
	conn.Client.Send(&signaling.Message{
		Type:   signaling.TypeJoin,
		RoomID: roomID,
		Role:   role,
		Name:   name,
	})

	select {
	case info := <-conn.Handler.Joined:
		return info, nil
	case msg := <-conn.Handler.Errors:
		return nil, fmt.Errorf("join rejected: %s", msg)
	case <-conn.Handler.Disconnected:
		return nil, errors.New("relay closed the connection during join")
	}
}

// fetchToken asks the relay for a fresh room identifier.
func fetchToken(e *Endpoints) (string, error) {
	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: &http.Transport{DialContext: dns.DialContext},
	}

	resp, err := httpClient.Get(e.TokenURL())
	if err != nil {
		return "", fmt.Errorf("request token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned %s", resp.Status)
	}

	var body struct {
		RoomID string `json:"roomId"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token response: %w", err)
	}
	if body.RoomID == "" {
		return "", errors.New("token endpoint returned an empty room id")
	}

	return body.RoomID, nil
}

// runSession hands the terminal over to the interactive session view
// until the user leaves or the room closes.
func runSession(conn *connection, info *client.JoinInfo, name string) error {
	model := ui.NewSessionModel(ui.SessionParams{
		RoomID:   info.RoomID,
		SelfID:   info.ID,
		SelfName: name,
		Role:     info.Role,
		Roster:   info.Roster,
		HostID:   info.HostID,
		OnSend: func(text string) {
			conn.Client.Send(&signaling.Message{Type: signaling.TypeChat, Message: text})
		},
	})

	go pumpEvents(conn.Handler, model)

	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	model.Close()

	if !model.ClosedByRemote() {
		conn.Client.Send(&signaling.Message{Type: signaling.TypeLeave})
		// Give the write pump a beat to flush the leave frame.
		time.Sleep(100 * time.Millisecond)
	}

	if err != nil {
		return fmt.Errorf("session view: %w", err)
	}

	if model.ClosedByRemote() {
		ui.PrintWarning("room closed")
	} else {
		ui.PrintInfo(ui.IconBye + " left the room")
	}
	return nil
}

// pumpEvents forwards demuxed relay frames into the session view until
// the connection drops.
func pumpEvents(h *client.Handler, m *ui.SessionModel) {
	for {
		select {
		case ev := <-h.Chat:
			m.Push(ui.SessionEvent{Kind: ui.EventChat, From: ev.From, Name: ev.Name, Message: ev.Message, Ts: ev.Ts})

		case member := <-h.ViewerJoined:
			m.Push(ui.SessionEvent{Kind: ui.EventViewerJoined, From: member.ID, Name: member.Name})

		case id := <-h.ViewerLeft:
			m.Push(ui.SessionEvent{Kind: ui.EventViewerLeft, From: id})

		case hostID := <-h.HostReady:
			m.Push(ui.SessionEvent{Kind: ui.EventHostReady, From: hostID})

		case msg := <-h.HostLeft:
			m.Push(ui.SessionEvent{Kind: ui.EventHostLeft, Message: msg})

		case msg := <-h.System:
			m.Push(ui.SessionEvent{Kind: ui.EventSystem, Message: msg})

		case sig := <-h.Signal:
			m.Push(ui.SessionEvent{Kind: ui.EventSignal, From: sig.From, Size: len(sig.Data)})

		case msg := <-h.Errors:
			m.Push(ui.SessionEvent{Kind: ui.EventError, Message: msg})

		case <-h.Disconnected:
			m.Push(ui.SessionEvent{Kind: ui.EventDisconnected})
			return
		}
	}
}

// displayName mirrors the relay's defaulting so the local header shows
// the same name other members see.
func displayName(name string, role signaling.Role) string {
	if name != "" {
		return name
	}
	if role == signaling.RoleHost {
		return "Host"
	}
	return "Viewer"
}
