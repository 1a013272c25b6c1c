package registry

import "sync"

// ConnectionRegistry is the in-memory set of currently connected clients.
// It is the source of truth for whether a connection id is alive.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[string]struct{}
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{conns: make(map[string]struct{})}
}

// OnConnect inserts sid. Idempotent.
func (r *ConnectionRegistry) OnConnect(sid string) {
	r.mu.Lock()
	r.conns[sid] = struct{}{}
	r.mu.Unlock()
}

// OnDisconnect removes sid. Idempotent.
func (r *ConnectionRegistry) OnDisconnect(sid string) {
	r.mu.Lock()
	delete(r.conns, sid)
	r.mu.Unlock()
}

func (r *ConnectionRegistry) Contains(sid string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.conns[sid]
	return ok
}

// ListConnections returns a sorted snapshot of the connected ids.
func (r *ConnectionRegistry) ListConnections() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.conns)
}
