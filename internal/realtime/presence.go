package realtime

import (
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Registry tracks which users hold live connections to each project room.
// A user may hold several connections (multiple tabs); the user only leaves
// the room once the last one disconnects.
type Registry struct {
	mu    sync.Mutex
	rooms map[uuid.UUID]map[uuid.UUID]int
}

// NewRegistry builds an empty presence registry.
func NewRegistry() *Registry {
	return &Registry{rooms: map[uuid.UUID]map[uuid.UUID]int{}}
}

// Connect records a connection and reports whether the user just came online
// in the room.
func (r *Registry) Connect(projectID, userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		room = map[uuid.UUID]int{}
		r.rooms[projectID] = room
	}
	room[userID]++
	return room[userID] == 1
}

// Disconnect drops a connection and reports whether the user just went
// offline in the room.
func (r *Registry) Disconnect(projectID, userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		return false
	}
	count, ok := room[userID]
	if !ok {
		return false
	}
	if count <= 1 {
		delete(room, userID)
		if len(room) == 0 {
			delete(r.rooms, projectID)
		}
		return true
	}
	room[userID] = count - 1
	return false
}

// IsOnline reports whether the user has at least one live connection to the room.
func (r *Registry) IsOnline(projectID, userID uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		return false
	}
	return room[userID] > 0
}

// OnlineUsers returns the users currently connected to the room, sorted for
// stable output.
func (r *Registry) OnlineUsers(projectID uuid.UUID) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[projectID]
	if !ok {
		return nil
	}
	users := make([]uuid.UUID, 0, len(room))
	for userID := range room {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].String() < users[j].String()
	})
	return users
}
