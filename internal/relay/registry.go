package relay

import "sync"

// Conn is one live client session against the relay. The transport layer owns the
// actual socket; the relay only needs a stable ID and a best-effort send.
type Conn interface {
	ID() string
	Send(msg Outbound) error
}

// Membership is the (room, display name) a connection is associated with.
type Membership struct {
	RoomID   string
	Username string
}

// Registry tracks live connections and their room membership. It also keeps the
// roomID -> connections index the multiplexer reads; both maps are mutated under
// the same lock so they can never diverge.
type Registry struct {
	mu      sync.RWMutex
	conns   map[string]Conn            // connID -> handle
	members map[string]Membership      // connID -> membership
	rooms   map[string]map[string]Conn // roomID -> connID -> handle
}

func NewRegistry() *Registry {
	return &Registry{
		conns:   make(map[string]Conn),
		members: make(map[string]Membership),
		rooms:   make(map[string]map[string]Conn),
	}
}

// Register records a connection on transport connect. No membership yet.
func (r *Registry) Register(c Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[c.ID()] = c
}

// Associate records room membership for a connection. Last join wins: any prior
// association is overwritten and returned so the caller can announce the move.
func (r *Registry) Associate(c Conn, roomID, username string) (prev Membership, moved bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := c.ID()
	r.conns[id] = c

	if prev, moved = r.members[id]; moved {
		r.dropFromRoom(prev.RoomID, id)
	}

	r.members[id] = Membership{RoomID: roomID, Username: username}
	rs, ok := r.rooms[roomID]
	if !ok {
		rs = make(map[string]Conn)
		r.rooms[roomID] = rs
	}
	rs[id] = c

	return prev, moved
}

// Lookup returns the membership for a connection, if any.
func (r *Registry) Lookup(connID string) (Membership, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.members[connID]
	return m, ok
}

// Remove deletes the membership; idempotent. The connection itself stays
// registered and may join another room afterwards.
func (r *Registry) Remove(connID string) (Membership, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[connID]
	if !ok {
		return Membership{}, false
	}
	delete(r.members, connID)
	r.dropFromRoom(m.RoomID, connID)
	return m, true
}

// Unregister drops the connection entirely, membership included.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.members[connID]; ok {
		delete(r.members, connID)
		r.dropFromRoom(m.RoomID, connID)
	}
	delete(r.conns, connID)
}

// Connections snapshots the members of a room at call time.
func (r *Registry) Connections(roomID string) []Conn {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rs := r.rooms[roomID]
	out := make([]Conn, 0, len(rs))
	for _, c := range rs {
		out = append(out, c)
	}
	return out
}

// Get returns a registered connection by ID.
func (r *Registry) Get(connID string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.conns[connID]
	return c, ok
}

// caller holds r.mu
func (r *Registry) dropFromRoom(roomID, connID string) {
	if rs, ok := r.rooms[roomID]; ok {
		delete(rs, connID)
		if len(rs) == 0 {
			delete(r.rooms, roomID)
		}
	}
}
