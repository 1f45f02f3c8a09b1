package signaling

import (
	"encoding/json"
	"unicode/utf8"
)

// Message types accepted from clients.
const (
	TypeJoin   = "join"
	TypeSignal = "signal"
	TypeChat   = "chat"
	TypeLeave  = "leave"
)

// Message types sent to clients.
const (
	TypeHello        = "hello"
	TypeJoined       = "joined"
	TypeHostReady    = "host_ready"
	TypeViewerJoined = "viewer_joined"
	TypeViewerLeft   = "viewer_left"
	TypeHostLeft     = "host_left"
	TypeSystem       = "system"
	TypeError        = "error"
)

// Role identifies a member's privilege level within a room.
type Role string

const (
	RoleNone   Role = ""
	RoleHost   Role = "host"
	RoleViewer Role = "viewer"
)

// Message defines the structure for all C2S (Client to Server)
// and S2C (Server to Client) websocket messages.
// All fields except Type are optional and populated per message type.
type Message struct {
	Type string `json:"type"`

	// Join request fields.
	RoomID string `json:"roomId,omitempty"`
	Role   Role   `json:"role,omitempty"`
	Name   string `json:"name,omitempty"`

	// Targeted relay fields. Data is never inspected by the relay.
	To   string          `json:"to,omitempty"`
	Data json.RawMessage `json:"data,omitempty"`

	// Chat text and notice text share this field.
	Message string `json:"message,omitempty"`

	// Server-assigned fields on outbound messages.
	ID         string  `json:"id,omitempty"`
	From       string  `json:"from,omitempty"`
	HostID     string  `json:"hostId,omitempty"`
	ViewerID   string  `json:"viewerId,omitempty"`
	ViewerName string  `json:"viewerName,omitempty"`
	Roster     *Roster `json:"roster,omitempty"`
	Ts         int64   `json:"ts,omitempty"`

	// sender is the connection that sent the message.
	// It's used internally by the Hub and not sent over JSON.
	sender *Client
}

// Member is one participant entry in a roster snapshot.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Roster is a derived snapshot of a room's current membership,
// built on demand for join acknowledgments.
type Roster struct {
	Host    *Member  `json:"host,omitempty"`
	Viewers []Member `json:"viewers"`
}

// truncate caps s at max runes. Clients may send arbitrarily long
// names and chat lines; the relay shortens them silently.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
