package server

import (
	"sync"

	"github.com/esphome-native/api-server/pkg/conn"
)

// Registry tracks the connections currently being served, keyed by their
// connection id, mirroring how a relay tracks its peer table.
type Registry struct {
	mu          sync.RWMutex
	connections map[string]*conn.Connection
}

func newRegistry() *Registry {
	return &Registry{connections: make(map[string]*conn.Connection)}
}

func (r *Registry) add(c *conn.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.connections[c.ID] = c
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.connections, id)
}

// Count reports the number of connections currently tracked. It
// implements internal/httpstatus.ConnectionCounter.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.connections)
}
