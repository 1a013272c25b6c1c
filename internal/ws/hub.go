package ws

import (
	"sync"

	"go.uber.org/zap"
)

// Hub is the transport gateway: it tracks every open connection by sid plus
// the transport-level rooms, and implements the emit primitives the session
// controller and the relay drive. Emits to unknown sids or rooms are no-ops.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]*clientConn
	rooms map[string]*room
}

func NewHub() *Hub {
	return &Hub{
		conns: make(map[string]*clientConn),
		rooms: make(map[string]*room),
	}
}

func (h *Hub) Register(c *clientConn) {
	h.mu.Lock()
	h.conns[c.sid] = c
	h.mu.Unlock()
}

func (h *Hub) Unregister(sid string) {
	h.mu.Lock()
	delete(h.conns, sid)
	h.mu.Unlock()
}

// EmitTo delivers one event to exactly one connection.
func (h *Hub) EmitTo(sid, event string, body any) {
	h.mu.RLock()
	c, ok := h.conns[sid]
	h.mu.RUnlock()
	if !ok {
		zap.L().Debug("ws.emit_unknown_sid", zap.String("sid", sid), zap.String("event", event))
		return
	}
	if err := c.writeJSON(outEnvelope{Event: event, Body: body}); err != nil {
		zap.L().Debug("ws.emit_write", zap.String("sid", sid), zap.Error(err))
	}
}

// EmitToRoom delivers one event to every connection in the room.
func (h *Hub) EmitToRoom(rid, event string, body any) {
	h.mu.RLock()
	r, ok := h.rooms[rid]
	h.mu.RUnlock()
	if !ok {
		return
	}
	r.broadcast(outEnvelope{Event: event, Body: body})
}

// EnterRoom adds sid's connection to the transport room, creating it lazily.
func (h *Hub) EnterRoom(sid, rid string) {
	h.mu.Lock()
	c, ok := h.conns[sid]
	if !ok {
		h.mu.Unlock()
		return
	}
	r, ok := h.rooms[rid]
	if !ok {
		r = newRoom()
		h.rooms[rid] = r
	}
	h.mu.Unlock()

	r.add(c)
}

// ExitRoom removes sid from the transport room, dropping the room once empty.
func (h *Hub) ExitRoom(sid, rid string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	r, ok := h.rooms[rid]
	if !ok {
		return
	}
	if r.remove(sid) {
		delete(h.rooms, rid)
	}
}
