package registry

import (
	"errors"
	"sort"
	"sync"
)

const (
	MaxRooms          = 1024
	MaxClientsPerRoom = 8
	MaxRoomsPerClient = 8
)

var (
	ErrRoomsLimit       = errors.New("rooms limit exceeded")
	ErrClientsLimit     = errors.New("clients limit exceeded")
	ErrClientRoomsLimit = errors.New("client rooms limit exceeded")
)

// RoomRegistry maps room ids to their member sets. A room exists iff it has at
// least one member: creation happens on the first successful AddMember and the
// entry is dropped when the last member is removed.
type RoomRegistry struct {
	mu       sync.RWMutex
	rooms    map[string]map[string]struct{}
	byClient map[string]map[string]struct{}
}

func NewRoomRegistry() *RoomRegistry {
	return &RoomRegistry{
		rooms:    make(map[string]map[string]struct{}),
		byClient: make(map[string]map[string]struct{}),
	}
}

// AddMember inserts sid into room, creating the room if needed. The capacity
// comparisons are inclusive: a room is admitted while the current count is
// still <= the cap, so the registry holds up to MaxRooms+1 rooms and a room
// holds up to MaxClientsPerRoom+1 members before further attempts are refused.
// Adding an existing member is a no-op that reports success.
func (r *RoomRegistry) AddMember(room, sid string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.rooms[room]
	if !exists && len(r.rooms) > MaxRooms {
		return ErrRoomsLimit
	}
	if _, in := members[sid]; !in {
		if len(members) > MaxClientsPerRoom {
			return ErrClientsLimit
		}
		if len(r.byClient[sid]) >= MaxRoomsPerClient {
			return ErrClientRoomsLimit
		}
	}

	if !exists {
		members = make(map[string]struct{})
		r.rooms[room] = members
	}
	members[sid] = struct{}{}

	joined := r.byClient[sid]
	if joined == nil {
		joined = make(map[string]struct{})
		r.byClient[sid] = joined
	}
	joined[room] = struct{}{}
	return nil
}

// RemoveMember removes sid from room, deleting the room entry when it empties.
// It reports whether the room still exists afterward. Unknown rooms and
// non-members are a no-op.
func (r *RoomRegistry) RemoveMember(room, sid string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	members, exists := r.rooms[room]
	if !exists {
		return false
	}
	if _, in := members[sid]; in {
		delete(members, sid)
		if joined := r.byClient[sid]; joined != nil {
			delete(joined, room)
			if len(joined) == 0 {
				delete(r.byClient, sid)
			}
		}
	}
	if len(members) == 0 {
		delete(r.rooms, room)
		return false
	}
	return true
}

// Members returns a sorted snapshot of the room's member ids, empty if the
// room does not exist.
func (r *RoomRegistry) Members(room string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.rooms[room])
}

// RoomsContaining returns a sorted snapshot of the rooms sid belongs to.
func (r *RoomRegistry) RoomsContaining(sid string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.byClient[sid])
}

func (r *RoomRegistry) IsMember(room, sid string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, in := r.rooms[room][sid]
	return in
}

// Snapshot returns the full room -> members mapping.
func (r *RoomRegistry) Snapshot() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string][]string, len(r.rooms))
	for room, members := range r.rooms {
		out[room] = sortedKeys(members)
	}
	return out
}

// Len returns the number of live rooms.
func (r *RoomRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
