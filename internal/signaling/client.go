package signaling

import (
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Gobert4/ultrawatchtogether/internal/metrics"
)

// Client is a wrapper for a single websocket connection (a participant).
type Client struct {
	// Hub is a pointer to the hub that manages this client.
	Hub *Hub

	// Conn is the websocket connection. Nil in tests that drive the
	// hub directly.
	Conn *websocket.Conn

	// ID is the opaque identifier assigned at registration.
	ID string

	// RoomID is the room the client has joined, empty before join
	// and after leave.
	RoomID string

	// Role is the client's privilege level in its room.
	Role Role

	// Name is the display name chosen at join time.
	Name string

	// Send is a buffered channel for all outbound messages. The hub
	// writes to it and the write pump drains it to the websocket.
	Send chan *Message

	// alive is cleared by each liveness probe and set again when the
	// pong arrives. Owned by the hub's run loop.
	alive bool
}

// ReadPump pumps messages from the websocket connection to the hub.
//
// The application runs ReadPump in a per-connection goroutine. The
// application ensures that there is at most one reader on a connection
// by executing all reads from this goroutine.
func (c *Client) ReadPump() {
	// When this function exits (e.g., connection closes), unregister the client
	defer func() {
		c.Hub.unregister <- c
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(c.Hub.cfg.MaxMessageSize)
	c.Conn.SetPongHandler(func(string) error {
		// Report the pong to the hub's sweep. Dropping one is fine,
		// the next probe round will catch up.
		select {
		case c.Hub.alive <- c.ID:
		default:
		}
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.Hub.logger.Debug("read error", "id", c.ID, "error", err)
			}
			break
		}

		// Parse here so a malformed body never kills the connection.
		// The hub replies with an error for the empty type.
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.Hub.logger.Debug("malformed message", "id", c.ID, "error", err)
			msg = Message{}
		}

		msg.sender = c
		c.Hub.inbound <- &msg
	}
}

// WritePump pumps messages from the hub to the websocket connection.
//
// A goroutine running WritePump is started for each connection. The
// application ensures that there is at most one writer to a connection
// by executing all writes from this goroutine.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for message := range c.Send {
		c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.cfg.WriteTimeout))
		if err := c.Conn.WriteJSON(message); err != nil {
			return
		}
	}

	// The hub closed the channel. Everything queued before the close
	// has been flushed, so say goodbye properly.
	c.Conn.SetWriteDeadline(time.Now().Add(c.Hub.cfg.WriteTimeout))
	c.Conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// enqueue queues an outbound message, dropping it when the send
// buffer is full. Delivery is best effort throughout: no queue growth,
// no retry, no backpressure. Must only be called from the hub's run
// loop, which is also the only closer of Send.
func (c *Client) enqueue(msg *Message) bool {
	select {
	case c.Send <- msg:
		return true
	default:
		metrics.SendsDropped.Inc()
		return false
	}
}

// ping sends a liveness probe control frame. Write errors are left to
// the next sweep to discover.
func (c *Client) ping() {
	if c.Conn == nil {
		return
	}
	_ = c.Conn.WriteControl(websocket.PingMessage, nil,
		time.Now().Add(c.Hub.cfg.WriteTimeout))
}

// closeSend closes the outbound queue. The write pump flushes what is
// already queued, then closes the connection.
func (c *Client) closeSend() {
	close(c.Send)
}

// forceClose tears the transport down immediately, discarding
// anything still queued.
func (c *Client) forceClose() {
	if c.Conn != nil {
		c.Conn.Close()
	}
	close(c.Send)
}
