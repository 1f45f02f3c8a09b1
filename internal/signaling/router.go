package signaling

import (
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/metrics"
)

// dispatch routes one inbound message by type. Every operation except
// join requires the sender to have completed a successful join.
func (h *Hub) dispatch(msg *Message) {
	c := msg.sender
	if c == nil || !h.registry.Has(c.ID) {
		// Sender was torn down while this message sat in the channel.
		return
	}

	switch msg.Type {
	case TypeJoin:
		metrics.MessagesTotal.WithLabelValues(TypeJoin).Inc()
		h.handleJoin(msg)

	case TypeSignal:
		metrics.MessagesTotal.WithLabelValues(TypeSignal).Inc()
		h.handleSignal(msg)

	case TypeChat:
		metrics.MessagesTotal.WithLabelValues(TypeChat).Inc()
		h.handleChat(msg)

	case TypeLeave:
		metrics.MessagesTotal.WithLabelValues(TypeLeave).Inc()
		h.teardownClient(c, false)

	case "":
		metrics.MessagesTotal.WithLabelValues("malformed").Inc()
		h.reject(c, NewError("read", ErrMalformed))

	default:
		metrics.MessagesTotal.WithLabelValues("unknown").Inc()
		h.reject(c, WrapError("dispatch", ErrUnknownType, msg.Type))
	}
}

// handleSignal relays an opaque negotiation payload to one member of
// the sender's room. The payload is forwarded verbatim, wrapped with
// the sender's identifier, and never inspected.
func (h *Hub) handleSignal(msg *Message) {
	c := msg.sender

	if c.RoomID == "" {
		h.reject(c, NewError("signal", ErrNotJoined))
		return
	}
	room := h.store.Get(c.RoomID)
	if room == nil {
		h.reject(c, NewError("signal", ErrNotJoined))
		return
	}
	target := room.member(msg.To)
	if target == nil {
		h.reject(c, NewError("signal", ErrUnknownTarget))
		return
	}

	target.enqueue(&Message{Type: TypeSignal, From: c.ID, Data: msg.Data})
}

// handleChat broadcasts a chat line to every member of the sender's
// room, the sender included. Text is capped, never rejected.
func (h *Hub) handleChat(msg *Message) {
	c := msg.sender

	if c.RoomID == "" {
		h.reject(c, NewError("chat", ErrNotJoined))
		return
	}
	room := h.store.Get(c.RoomID)
	if room == nil {
		h.reject(c, NewError("chat", ErrNotJoined))
		return
	}

	out := &Message{
		Type:    TypeChat,
		From:    c.ID,
		Name:    c.Name,
		Message: truncate(msg.Message, h.cfg.MaxChatLen),
		Ts:      time.Now().UnixMilli(),
	}
	for _, member := range room.conns {
		member.enqueue(out)
	}
}

// reject reports a protocol violation back to the sender. The
// connection stays open.
func (h *Hub) reject(c *Client, perr *ProtocolError) {
	h.logger.Debug("request rejected", "id", c.ID, "error", perr.Error())
	c.enqueue(&Message{Type: TypeError, Message: perr.Error()})
}
