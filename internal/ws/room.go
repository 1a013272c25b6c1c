package ws

import (
	"sync"

	"go.uber.org/zap"
)

// room is the transport-level connection group behind EmitToRoom. It mirrors
// the RoomRegistry's bookkeeping; the session controller keeps the two in sync.
type room struct {
	mu    sync.RWMutex
	conns map[string]*clientConn
}

func newRoom() *room { return &room{conns: map[string]*clientConn{}} }

func (r *room) add(c *clientConn) {
	r.mu.Lock()
	r.conns[c.sid] = c
	r.mu.Unlock()
}

func (r *room) remove(sid string) (empty bool) {
	r.mu.Lock()
	delete(r.conns, sid)
	empty = len(r.conns) == 0
	r.mu.Unlock()
	return empty
}

func (r *room) broadcast(v any) {
	// Snapshot first, do the I/O outside the lock.
	r.mu.RLock()
	conns := make([]*clientConn, 0, len(r.conns))
	for _, c := range r.conns {
		conns = append(conns, c)
	}
	r.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeJSON(v); err != nil {
			// The reader for this conn will notice and run disconnect cleanup.
			zap.L().Debug("ws.broadcast_write", zap.String("sid", c.sid), zap.Error(err))
		}
	}
}
