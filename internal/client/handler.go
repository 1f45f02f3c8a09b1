package client

import (
	"encoding/json"

	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
)

// JoinInfo is the decoded join acknowledgment.
type JoinInfo struct {
	RoomID string
	ID     string
	Role   signaling.Role
	Roster *signaling.Roster
	HostID string
}

// ChatEvent is a chat frame relayed by the server.
type ChatEvent struct {
	From    string
	Name    string
	Message string
	Ts      int64
}

// SignalEvent is a negotiation payload relayed from another member.
type SignalEvent struct {
	From string
	Data json.RawMessage
}

// Handler fans incoming relay frames out to typed channels so command
// code can select on exactly the events it cares about.
type Handler struct {
	client       *Client
	Hello        chan string
	Joined       chan *JoinInfo
	HostReady    chan string
	ViewerJoined chan signaling.Member
	ViewerLeft   chan string
	HostLeft     chan string
	System       chan string
	Chat         chan *ChatEvent
	Signal       chan *SignalEvent
	Errors       chan string
	Disconnected chan struct{}
}

// NewHandler creates a handler for the given client. Call Start in a
// goroutine to begin routing.
func NewHandler(client *Client) *Handler {
	return &Handler{
		client:       client,
		Hello:        make(chan string, 1),
		Joined:       make(chan *JoinInfo, 1),
		HostReady:    make(chan string, 1),
		ViewerJoined: make(chan signaling.Member, 16),
		ViewerLeft:   make(chan string, 16),
		HostLeft:     make(chan string, 1),
		System:       make(chan string, 16),
		Chat:         make(chan *ChatEvent, 32),
		Signal:       make(chan *SignalEvent, 32),
		Errors:       make(chan string, 1),
		Disconnected: make(chan struct{}, 1),
	}
}

// Start routes frames until the connection drops, then signals
// Disconnected.
func (h *Handler) Start() {
	for msg := range h.client.Incoming() {
		switch msg.Type {

		case signaling.TypeHello:
			h.Hello <- msg.ID

		case signaling.TypeJoined:
			h.Joined <- &JoinInfo{
				RoomID: msg.RoomID,
				ID:     msg.ID,
				Role:   msg.Role,
				Roster: msg.Roster,
				HostID: msg.HostID,
			}

		case signaling.TypeHostReady:
			h.HostReady <- msg.HostID

		case signaling.TypeViewerJoined:
			h.ViewerJoined <- signaling.Member{ID: msg.ViewerID, Name: msg.ViewerName}

		case signaling.TypeViewerLeft:
			h.ViewerLeft <- msg.ViewerID

		case signaling.TypeHostLeft:
			h.HostLeft <- msg.Message

		case signaling.TypeSystem:
			h.System <- msg.Message

		case signaling.TypeChat:
			h.Chat <- &ChatEvent{
				From:    msg.From,
				Name:    msg.Name,
				Message: msg.Message,
				Ts:      msg.Ts,
			}

		case signaling.TypeSignal:
			h.Signal <- &SignalEvent{From: msg.From, Data: msg.Data}

		case signaling.TypeError:
			h.Errors <- msg.Message

		default:
		}
	}

	select {
	case h.Disconnected <- struct{}{}:
	default:
	}
}
