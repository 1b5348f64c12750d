package realtime

import "sync"

// Member is a registered connection together with its optional bound identity.
// UserID and Role are empty until Bind is called for the connection.
type Member struct {
	Conn   Conn
	UserID string
	Role   string
}

// Registry tracks live connections by id. Membership exactly mirrors transport
// liveness: Add on open, Remove on close or error. Remove is idempotent so the
// close path and a failed delivery may both prune the same connection.
type Registry struct {
	mu      sync.RWMutex
	members map[string]*Member
}

func NewRegistry() *Registry {
	return &Registry{members: make(map[string]*Member)}
}

// Add registers a connection. Re-adding the same id replaces the entry.
func (r *Registry) Add(conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.members[conn.ID()] = &Member{Conn: conn}
}

// Remove drops a connection from the registry. Unknown ids are ignored.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.members, id)
}

// Bind attaches a user identity to an open connection, enabling targeted
// delivery via BroadcastToUser. Baseline connections stay unbound.
func (r *Registry) Bind(id, userID, role string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.members[id]
	if !ok {
		return false
	}
	m.UserID = userID
	m.Role = role
	return true
}

// Snapshot returns the current membership. Delivery iterates the snapshot so
// connections may close (and be removed) mid-broadcast without invalidating
// the iteration.
func (r *Registry) Snapshot() []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out
}

// Len reports the number of live connections.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.members)
}
