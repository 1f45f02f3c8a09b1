package signaling

import (
	"time"

	"github.com/Gobert4/ultrawatchtogether/internal/metrics"
)

// handleJoin admits a connection into a room as host or viewer.
// Validation happens before any index is touched, so a rejected join
// leaves room state exactly as it was.
func (h *Hub) handleJoin(msg *Message) {
	c := msg.sender

	if c.RoomID != "" {
		h.reject(c, NewError("join", ErrAlreadyJoined))
		return
	}
	if msg.RoomID == "" {
		h.reject(c, NewError("join", ErrRoomRequired))
		return
	}

	role := msg.Role
	if role != RoleHost {
		role = RoleViewer
	}
	name := truncate(msg.Name, h.cfg.MaxNameLen)
	if name == "" {
		if role == RoleHost {
			name = "Host"
		} else {
			name = "Viewer"
		}
	}

	if role == RoleHost {
		h.joinHost(c, msg.RoomID, name)
	} else {
		h.joinViewer(c, msg.RoomID, name)
	}
}

// joinHost installs c as the room's host, creating the room if needed.
// The most recent host claim wins: a live previous host is told it was
// superseded and disconnected before the new host is installed.
func (h *Hub) joinHost(c *Client, roomID, name string) {
	room := h.store.GetOrCreate(roomID)

	if prev := room.member(room.HostID); prev != nil && prev != c {
		// Bypass leaveRoom here: the departing connection still looks
		// like the host, and the cascade must not fire.
		room.remove(prev.ID)
		prev.RoomID = ""
		prev.Role = RoleNone
		h.registry.Remove(prev.ID)
		prev.enqueue(&Message{Type: TypeSystem, Message: "host role taken over, disconnecting"})
		prev.closeSend()
		h.logger.Info("host superseded", "room", roomID, "old", prev.ID, "new", c.ID)
	}

	room.add(c, RoleHost, name)
	room.HostID = c.ID
	c.RoomID = roomID
	c.Role = RoleHost
	c.Name = name

	c.enqueue(&Message{
		Type:   TypeJoined,
		RoomID: roomID,
		ID:     c.ID,
		Role:   RoleHost,
		Roster: room.roster(c.ID),
	})

	// Viewers that were waiting on a host get the identifier they need
	// to restart negotiation.
	for id, member := range room.conns {
		if id == c.ID {
			continue
		}
		member.enqueue(&Message{Type: TypeHostReady, HostID: c.ID})
		member.enqueue(&Message{Type: TypeSystem, Message: name + " joined as host"})
	}

	metrics.RoomsActive.Set(float64(h.store.Len()))
	metrics.ConnectionsActive.Set(float64(h.registry.Len()))
	h.logger.Info("host joined", "room", roomID, "id", c.ID, "name", name)
}

// joinViewer admits c into an existing room. The join is gated on the
// room's host currently resolving to a registered connection.
func (h *Hub) joinViewer(c *Client, roomID, name string) {
	room := h.store.Get(roomID)
	if room == nil {
		h.reject(c, WrapError("join", ErrNoHost, "room does not exist"))
		return
	}
	host := room.member(room.HostID)
	if host == nil || !h.registry.Has(room.HostID) {
		h.reject(c, NewError("join", ErrNoHost))
		return
	}

	room.add(c, RoleViewer, name)
	c.RoomID = roomID
	c.Role = RoleViewer
	c.Name = name

	c.enqueue(&Message{
		Type:   TypeJoined,
		RoomID: roomID,
		ID:     c.ID,
		Role:   RoleViewer,
		Roster: room.roster(c.ID),
		HostID: room.HostID,
	})

	// Direct notice so the host can open negotiation with the viewer.
	host.enqueue(&Message{Type: TypeViewerJoined, ViewerID: c.ID, ViewerName: name})

	for id, member := range room.conns {
		if id == c.ID {
			continue
		}
		member.enqueue(&Message{Type: TypeSystem, Message: name + " joined"})
	}

	h.logger.Info("viewer joined", "room", roomID, "id", c.ID, "name", name)
}

// teardownClient runs the full disconnect path for c: deregistration,
// room departure, transport close. Explicit leaves, read failures,
// reaping, and host-departure cascades all converge here; the registry
// check makes a second arrival a no-op.
func (h *Hub) teardownClient(c *Client, abrupt bool) {
	if !h.registry.Has(c.ID) {
		return
	}
	h.registry.Remove(c.ID)

	h.leaveRoom(c)

	if abrupt {
		c.forceClose()
	} else {
		c.closeSend()
	}

	metrics.ConnectionsActive.Set(float64(h.registry.Len()))
	h.logger.Debug("client gone", "id", c.ID)
}

// leaveRoom removes c from its room and applies the departure rules.
// A departing host takes the whole room with it.
func (h *Hub) leaveRoom(c *Client) {
	if c.RoomID == "" {
		return
	}
	roomID := c.RoomID
	c.RoomID = ""
	role := c.Role
	c.Role = RoleNone

	room := h.store.Get(roomID)
	if room == nil {
		return
	}

	room.remove(c.ID)

	if role == RoleHost && room.HostID == c.ID {
		// A room cannot outlive its host. Tell everyone, disconnect
		// them, then drop the room.
		for _, member := range room.conns {
			member.enqueue(&Message{Type: TypeHostLeft, Message: "host left, room closed"})
		}
		for id, member := range room.conns {
			h.registry.Remove(id)
			member.RoomID = ""
			member.Role = RoleNone
			member.closeSend()
			room.remove(id)
		}
		h.store.Delete(roomID)
		h.logger.Info("room closed", "room", roomID, "host", c.ID, "age", time.Since(room.CreatedAt).Round(time.Second))
	} else {
		if host := room.member(room.HostID); host != nil {
			host.enqueue(&Message{Type: TypeViewerLeft, ViewerID: c.ID})
		}
		for _, member := range room.conns {
			member.enqueue(&Message{Type: TypeSystem, Message: c.Name + " left"})
		}
		if room.size() == 0 {
			h.store.Delete(roomID)
		}
		h.logger.Info("viewer left", "room", roomID, "id", c.ID)
	}

	metrics.RoomsActive.Set(float64(h.store.Len()))
}
