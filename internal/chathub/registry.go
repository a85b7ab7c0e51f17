package chathub

import "sync"

// Registry tracks the live connections of every online user.
// It is populated on connect and pruned on disconnect; it holds no other presence state.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]map[string]Client
}

func NewRegistry() *Registry {
	return &Registry{byUser: make(map[string]map[string]Client)}
}

// Add registers c under its user.
func (r *Registry) Add(c Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.byUser[c.UserID()]
	if !ok {
		conns = make(map[string]Client)
		r.byUser[c.UserID()] = conns
	}
	conns[c.ID()] = c
}

// Remove deregisters c. removed is false when c was not registered;
// last is true when c was the user's final connection.
func (r *Registry) Remove(c Client) (removed, last bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.byUser[c.UserID()]
	if !ok {
		return false, false
	}
	if _, ok := conns[c.ID()]; !ok {
		return false, false
	}
	delete(conns, c.ID())
	if len(conns) == 0 {
		delete(r.byUser, c.UserID())
		return true, true
	}
	return true, false
}

// ClientsFor returns a snapshot of the user's connections.
func (r *Registry) ClientsFor(userID string) []Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns := r.byUser[userID]
	out := make([]Client, 0, len(conns))
	for _, c := range conns {
		out = append(out, c)
	}
	return out
}

// Count returns how many connections the user holds.
func (r *Registry) Count(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser[userID])
}

// OnlineUsers returns how many users hold at least one connection.
func (r *Registry) OnlineUsers() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byUser)
}
