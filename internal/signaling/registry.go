package signaling

import "github.com/google/uuid"

// Registry tracks every live connection and its probe state,
// independent of room membership. It is owned by the hub's run loop
// and must only be touched from there.
type Registry struct {
	clients map[string]*Client
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{clients: make(map[string]*Client)}
}

// Register assigns the connection a fresh identifier and stores it
// with liveness confirmed.
func (r *Registry) Register(c *Client) string {
	id := uuid.NewString()
	c.ID = id
	c.alive = true
	r.clients[id] = c
	return id
}

// Get returns the registered connection for id, or nil.
func (r *Registry) Get(id string) *Client {
	return r.clients[id]
}

// Has reports whether id is currently registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.clients[id]
	return ok
}

// MarkAlive records a probe response for id.
func (r *Registry) MarkAlive(id string) {
	if c := r.clients[id]; c != nil {
		c.alive = true
	}
}

// Remove deregisters id. Absent ids are a no-op.
func (r *Registry) Remove(id string) {
	delete(r.clients, id)
}

// Len returns the number of registered connections.
func (r *Registry) Len() int {
	return len(r.clients)
}

// ProbeAndReap walks every registered connection. Connections that
// never answered the previous probe are handed to reap; the rest are
// flagged pending and sent a fresh probe. reap must deregister the
// connection, so a reaped entry is gone before the walk finishes.
func (r *Registry) ProbeAndReap(reap func(*Client)) {
	for _, c := range r.clients {
		if !c.alive {
			reap(c)
			continue
		}
		c.alive = false
		c.ping()
	}
}
