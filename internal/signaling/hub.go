package signaling

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Gobert4/ultrawatchtogether/internal/metrics"
)

// Config holds the tunable settings for a Hub.
type Config struct {
	// ProbeInterval is the liveness sweep period. A connection that
	// misses two consecutive probes is reaped.
	ProbeInterval time.Duration

	// WriteTimeout bounds every websocket write.
	WriteTimeout time.Duration

	// SendBuffer is the outbound queue capacity per connection.
	SendBuffer int

	// MaxMessageSize is the inbound read limit in bytes.
	MaxMessageSize int64

	// MaxChatLen caps chat text in runes; longer lines are truncated.
	MaxChatLen int

	// MaxNameLen caps display names in runes.
	MaxNameLen int
}

func (c *Config) applyDefaults() {
	if c.ProbeInterval == 0 {
		c.ProbeInterval = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.SendBuffer == 0 {
		c.SendBuffer = 256
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = 64 * 1024
	}
	if c.MaxChatLen == 0 {
		c.MaxChatLen = 2000
	}
	if c.MaxNameLen == 0 {
		c.MaxNameLen = 40
	}
}

// Hub is the central brain of the relay. Its run loop is the single
// goroutine that owns the registry and every room, so join, relay,
// and teardown sequences run one at a time to completion and never
// interleave.
type Hub struct {
	cfg    Config
	logger *slog.Logger

	// store holds all active rooms.
	store *RoomStore

	// registry tracks all live connections and their probe state.
	registry *Registry

	// Register is the channel for registering new clients.
	Register chan *Client

	// unregister is fed by read pumps when a connection dies.
	unregister chan *Client

	// inbound carries parsed client messages into the run loop.
	inbound chan *Message

	// alive carries pong notifications from read pumps.
	alive chan string
}

// NewHub creates a new Hub instance. A nil store or logger falls back
// to a fresh store and slog.Default.
func NewHub(cfg Config, store *RoomStore, logger *slog.Logger) *Hub {
	cfg.applyDefaults()
	if store == nil {
		store = NewRoomStore()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Hub{
		cfg:        cfg,
		logger:     logger,
		store:      store,
		registry:   NewRegistry(),
		Register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan *Message),
		alive:      make(chan string, 64),
	}
}

// Store returns the room store the hub routes against.
func (h *Hub) Store() *RoomStore {
	return h.store
}

// NewClient wraps a websocket connection for this hub. The caller
// registers it and starts its pumps.
func (h *Hub) NewClient(conn *websocket.Conn) *Client {
	return &Client{
		Hub:  h,
		Conn: conn,
		Send: make(chan *Message, h.cfg.SendBuffer),
	}
}

// Run starts the hub's main processing loop and blocks until ctx is
// cancelled, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.cfg.ProbeInterval)
	defer ticker.Stop()

	h.logger.Info("hub started", "probe_interval", h.cfg.ProbeInterval)

	for {
		select {
		case client := <-h.Register:
			h.handleRegister(client)

		case client := <-h.unregister:
			h.teardownClient(client, false)

		case msg := <-h.inbound:
			h.dispatch(msg)

		case id := <-h.alive:
			h.registry.MarkAlive(id)

		case <-ticker.C:
			h.sweep()

		case <-ctx.Done():
			h.shutdown()
			return
		}
	}
}

// handleRegister assigns the connection its identifier and greets it.
func (h *Hub) handleRegister(c *Client) {
	id := h.registry.Register(c)
	c.enqueue(&Message{Type: TypeHello, ID: id})
	metrics.ConnectionsActive.Set(float64(h.registry.Len()))
	h.logger.Debug("client registered", "id", id)
}

// sweep reaps connections that missed the previous probe and probes
// the rest. This is the only place a connection is closed for
// inactivity.
func (h *Hub) sweep() {
	h.registry.ProbeAndReap(func(c *Client) {
		h.logger.Info("reaping unresponsive connection", "id", c.ID, "room", c.RoomID)
		metrics.ConnectionsReaped.Inc()
		h.teardownClient(c, true)
	})
}

// shutdown disconnects every registered client. Teardown of a host
// cascades through its room, so the map shrinks as we walk it.
func (h *Hub) shutdown() {
	h.logger.Info("hub stopping", "connections", h.registry.Len())
	for _, c := range h.registry.clients {
		h.teardownClient(c, false)
	}
}
