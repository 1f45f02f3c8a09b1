package signaling

import "time"

// Room is a named coordination scope holding at most one host and any
// number of viewers. The three index maps always share the same key
// set: a member is inserted into and removed from all three as a unit.
type Room struct {
	// ID is the externally supplied room identifier.
	ID string

	// HostID is the connection identifier of the current host.
	// Empty while no host has claimed the room.
	HostID string

	// CreatedAt records when the first join created the room.
	CreatedAt time.Time

	// conns maps connection identifiers to their handles.
	conns map[string]*Client

	// roles maps connection identifiers to host/viewer.
	roles map[string]Role

	// names maps connection identifiers to display names.
	names map[string]string
}

func newRoom(id string) *Room {
	return &Room{
		ID:        id,
		CreatedAt: time.Now(),
		conns:     make(map[string]*Client),
		roles:     make(map[string]Role),
		names:     make(map[string]string),
	}
}

// add inserts a member into all three indexes.
func (r *Room) add(c *Client, role Role, name string) {
	r.conns[c.ID] = c
	r.roles[c.ID] = role
	r.names[c.ID] = name
}

// remove deletes a member from all three indexes.
func (r *Room) remove(id string) {
	delete(r.conns, id)
	delete(r.roles, id)
	delete(r.names, id)
}

// has reports whether id is a member of this room.
func (r *Room) has(id string) bool {
	_, ok := r.conns[id]
	return ok
}

// member returns the connection handle for id, or nil.
func (r *Room) member(id string) *Client {
	return r.conns[id]
}

// size returns the current member count.
func (r *Room) size() int {
	return len(r.conns)
}

// roster builds a membership snapshot, excluding the given connection
// identifier so a joiner sees everyone but itself.
func (r *Room) roster(exclude string) *Roster {
	ros := &Roster{Viewers: []Member{}}
	for id, role := range r.roles {
		if id == exclude {
			continue
		}
		m := Member{ID: id, Name: r.names[id]}
		if role == RoleHost {
			host := m
			ros.Host = &host
		} else {
			ros.Viewers = append(ros.Viewers, m)
		}
	}
	return ros
}
