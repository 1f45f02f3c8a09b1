package signaling

import "sync"

// RoomStore owns every active Room, keyed by room identifier.
// The hub's run loop is the only mutator of Room contents; the map
// itself is guarded so HTTP handlers can probe it concurrently.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewRoomStore creates an empty store.
func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room for id, creating it if absent.
// Creation is idempotent: callers racing on the same id observe the
// same instance.
func (s *RoomStore) GetOrCreate(id string) *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	room := s.rooms[id]
	if room == nil {
		room = newRoom(id)
		s.rooms[id] = room
	}
	return room
}

// Get returns the room for id, or nil if absent.
func (s *RoomStore) Get(id string) *Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rooms[id]
}

// Has reports whether a room with this id currently exists.
func (s *RoomStore) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok
}

// Delete removes the room for id. Absent ids are a no-op.
func (s *RoomStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

// Len returns the number of active rooms.
func (s *RoomStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
