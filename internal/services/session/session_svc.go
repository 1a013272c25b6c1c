package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"signalrelaygo/internal/registry"
)

// Emitter is the transport-gateway surface the controller drives: targeted and
// room-wide event delivery plus the transport's own room grouping, which must
// be kept in sync with the RoomRegistry.
type Emitter interface {
	EmitTo(sid, event string, body any)
	EmitToRoom(room, event string, body any)
	EnterRoom(sid, room string)
	ExitRoom(sid, room string)
}

type RoomJoinedBody struct {
	SID string `json:"sid"`
	RID string `json:"rid"`
}

type RoomLeftBody struct {
	SID string `json:"sid"`
	RID string `json:"rid"`
}

type RoomClientsBody struct {
	Clients []string `json:"clients"`
}

type RoomGeneratedBody struct {
	RID string `json:"rid"`
}

type JoinErrorBody struct {
	Message string `json:"message"`
}

type ISessionService interface {
	Connect(sid string)
	Disconnect(sid string)
	JoinRoom(sid, room string)
	LeaveRoom(sid, room string)
	GenerateRoom(sid string)
	BroadcastRoomClients(sid, room string)
	Rooms(sid string) []string
	Clients() []string
	RoomSnapshot() map[string][]string
}

// sessionService owns both registries. A single mutex serializes every event
// end to end (registry mutation plus the resulting emits), so membership
// changes and their broadcasts never interleave for a room.
type sessionService struct {
	mu    sync.Mutex
	conns *registry.ConnectionRegistry
	rooms *registry.RoomRegistry
	em    Emitter
}

func NewSessionService(conns *registry.ConnectionRegistry, rooms *registry.RoomRegistry, em Emitter) ISessionService {
	return &sessionService{conns: conns, rooms: rooms, em: em}
}

func (s *sessionService) Connect(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns.OnConnect(sid)
	zap.L().Debug("client connected", zap.String("sid", sid))
}

// Disconnect removes the client from every room it belongs to. Rooms that
// still have members get a fresh member list; emptied rooms vanish silently.
func (s *sessionService) Disconnect(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conns.OnDisconnect(sid)

	var survivors []string
	for _, room := range s.rooms.RoomsContaining(sid) {
		s.em.ExitRoom(sid, room)
		if s.rooms.RemoveMember(room, sid) {
			survivors = append(survivors, room)
		}
	}
	for _, room := range survivors {
		s.em.EmitToRoom(room, "room_clients", RoomClientsBody{Clients: s.rooms.Members(room)})
	}
	zap.L().Debug("client disconnected", zap.String("sid", sid), zap.Int("rooms_left", len(survivors)))
}

func (s *sessionService) JoinRoom(sid, room string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := uuid.Parse(room); err != nil {
		zap.L().Debug("join rejected", zap.String("sid", sid), zap.String("room", room), zap.Error(err))
		s.em.EmitTo(sid, "join_room_error", JoinErrorBody{Message: "Invalid room id"})
		return
	}
	if err := s.rooms.AddMember(room, sid); err != nil {
		zap.L().Debug("join rejected", zap.String("sid", sid), zap.String("room", room), zap.Error(err))
		s.em.EmitTo(sid, "join_room_error", JoinErrorBody{Message: joinErrorMessage(err)})
		return
	}

	s.em.EnterRoom(sid, room)
	s.em.EmitTo(sid, "room_joined", RoomJoinedBody{SID: sid, RID: room})
	s.em.EmitToRoom(room, "room_clients", RoomClientsBody{Clients: s.rooms.Members(room)})
}

// LeaveRoom is a silent no-op when sid is not a member.
func (s *sessionService) LeaveRoom(sid, room string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.rooms.IsMember(room, sid) {
		return
	}
	s.em.ExitRoom(sid, room)
	s.rooms.RemoveMember(room, sid)
	s.em.EmitToRoom(room, "room_left", RoomLeftBody{SID: sid, RID: room})
	s.em.EmitToRoom(room, "room_clients", RoomClientsBody{Clients: s.rooms.Members(room)})
}

// GenerateRoom derives a stable room id from the requesting connection
// (UUIDv5 over the OID namespace, hex form) and suggests it to the requester.
// The registry is untouched; the room comes to life only on join.
func (s *sessionService) GenerateRoom(sid string) {
	rid := strings.ReplaceAll(uuid.NewSHA1(uuid.NameSpaceOID, []byte(sid)).String(), "-", "")
	s.em.EmitTo(sid, "room_generated", RoomGeneratedBody{RID: rid})
}

// BroadcastRoomClients pushes the room's member list to the whole room, not
// just the requester.
func (s *sessionService) BroadcastRoomClients(sid, room string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	zap.L().Debug("room clients requested", zap.String("sid", sid), zap.String("room", room))
	s.em.EmitToRoom(room, "room_clients", RoomClientsBody{Clients: s.rooms.Members(room)})
}

func (s *sessionService) Rooms(sid string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms.RoomsContaining(sid)
}

func (s *sessionService) Clients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conns.ListConnections()
}

func (s *sessionService) RoomSnapshot() map[string][]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rooms.Snapshot()
}

func joinErrorMessage(err error) string {
	switch {
	case errors.Is(err, registry.ErrRoomsLimit):
		return "Rooms limit exceeded"
	case errors.Is(err, registry.ErrClientsLimit):
		return "Clients limit exceeded"
	case errors.Is(err, registry.ErrClientRoomsLimit):
		return "Client rooms limit exceeded"
	}
	return err.Error()
}
