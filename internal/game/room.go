package game

import (
	"fmt"
	"sync"

	"github.com/scythe504/partyroom-backend/internal"
	"github.com/scythe504/partyroom-backend/internal/random"
)

// =============================================================================
// ROOM REGISTRY
// =============================================================================

const (
	roomIdAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	roomIdLength   = 6
)

// Registry owns every live room. Take the registry lock before a room lock,
// never the other way round.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*internal.Room
	rnd   random.Source
	clock internal.Clock
}

// NewRegistry builds an empty registry whose rooms run their timers on clock.
func NewRegistry(rnd random.Source, clock internal.Clock) *Registry {
	return &Registry{
		rooms: make(map[string]*internal.Room),
		rnd:   rnd,
		clock: clock,
	}
}

// Create allocates a room under a fresh id, regenerating on collision.
func (r *Registry) Create(kind internal.GameKind, hostId string) *internal.Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.newId()
	for r.rooms[id] != nil {
		id = r.newId()
	}

	room := internal.NewRoom(id, kind, hostId, r.clock)
	r.rooms[id] = room
	return room
}

func (r *Registry) newId() string {
	b := make([]byte, roomIdLength)
	for i := range b {
		b[i] = roomIdAlphabet[r.rnd.IntN(len(roomIdAlphabet))]
	}
	return string(b)
}

func (r *Registry) Get(id string) (*internal.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRoomNotFound, id)
	}
	return room, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, id)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

// Rooms returns a snapshot of the live rooms.
func (r *Registry) Rooms() []*internal.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rooms := make([]*internal.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, room)
	}
	return rooms
}
