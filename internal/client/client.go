// Package client implements the terminal side of the relay protocol:
// a websocket connection with read/write pumps and a demultiplexer
// that fans incoming frames out to typed channels.
package client

import (
	"fmt"
	"net/url"
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/dns"
	"github.com/Gobert4/ultrawatchtogether/internal/signaling"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Client manages the WebSocket connection to the relay.
type Client struct {
	conn      *websocket.Conn
	serverURL string
	incoming  chan *signaling.Message
	outgoing  chan *signaling.Message
	done      chan struct{}
	closed    bool
}

// NewClient creates a client for the given ws:// or wss:// URL. No
// connection is made until Connect.
func NewClient(serverURL string) *Client {
	return &Client{
		serverURL: serverURL,
		incoming:  make(chan *signaling.Message, 16),
		outgoing:  make(chan *signaling.Message, 16),
		done:      make(chan struct{}),
	}
}

// Connect dials the relay and starts the read and write pumps.
func (c *Client) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	dialer := *websocket.DefaultDialer
	dialer.NetDialContext = dns.DialContext

	conn, _, err := dialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	c.conn = conn
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go c.readPump()
	go c.writePump()

	return nil
}

// readPump reads frames until the connection drops, then closes the
// incoming channel so consumers observe the disconnect.
func (c *Client) readPump() {
	defer func() {
		c.conn.Close()
		close(c.incoming)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))

	for {
		var msg signaling.Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.incoming <- &msg
	}
}

// writePump writes queued frames and answers the relay's liveness
// probes with pings of its own.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg := <-c.outgoing:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

// Send queues a frame for delivery.
func (c *Client) Send(msg *signaling.Message) {
	select {
	case c.outgoing <- msg:
	case <-c.done:
	}
}

// Incoming returns the channel of frames read from the relay. It is
// closed when the connection drops.
func (c *Client) Incoming() <-chan *signaling.Message {
	return c.incoming
}

// Close sends a close frame and releases the connection.
func (c *Client) Close() {
	if c.closed {
		return
	}
	c.closed = true
	close(c.done)
}
