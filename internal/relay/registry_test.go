package relay

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	id string

	mu     sync.Mutex
	events []Outbound
	failed bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(msg Outbound) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failed {
		return assert.AnError
	}
	c.events = append(c.events, msg)
	return nil
}

func (c *fakeConn) received() []Outbound {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Outbound, len(c.events))
	copy(out, c.events)
	return out
}

func (c *fakeConn) receivedTypes() []string {
	var types []string
	for _, ev := range c.received() {
		types = append(types, ev.Type)
	}
	return types
}

func TestRegistry_AssociateAndLookup(t *testing.T) {
	reg := NewRegistry()
	c := newFakeConn("c1")

	reg.Register(c)
	_, ok := reg.Lookup("c1")
	assert.False(t, ok, "registered connection must start unjoined")

	prev, moved := reg.Associate(c, "lobby", "alice")
	assert.False(t, moved)
	assert.Equal(t, Membership{}, prev)

	m, ok := reg.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, Membership{RoomID: "lobby", Username: "alice"}, m)

	require.Len(t, reg.Connections("lobby"), 1)
}

func TestRegistry_LastJoinWins(t *testing.T) {
	reg := NewRegistry()
	c := newFakeConn("c1")

	reg.Associate(c, "x", "alice")
	prev, moved := reg.Associate(c, "y", "alice")

	require.True(t, moved)
	assert.Equal(t, "x", prev.RoomID)

	m, ok := reg.Lookup("c1")
	require.True(t, ok)
	assert.Equal(t, "y", m.RoomID)

	assert.Empty(t, reg.Connections("x"), "old room must not keep the connection")
	assert.Len(t, reg.Connections("y"), 1)
}

func TestRegistry_RemoveIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	c := newFakeConn("c1")

	_, ok := reg.Remove("c1")
	assert.False(t, ok, "removing an unassociated connection is a no-op")

	reg.Associate(c, "lobby", "alice")
	m, ok := reg.Remove("c1")
	require.True(t, ok)
	assert.Equal(t, "alice", m.Username)

	_, ok = reg.Lookup("c1")
	assert.False(t, ok)
	assert.Empty(t, reg.Connections("lobby"))

	_, ok = reg.Remove("c1")
	assert.False(t, ok)
}

func TestRegistry_UnregisterDropsEverything(t *testing.T) {
	reg := NewRegistry()
	c := newFakeConn("c1")

	reg.Register(c)
	reg.Associate(c, "lobby", "alice")
	reg.Unregister("c1")

	_, ok := reg.Lookup("c1")
	assert.False(t, ok)
	_, ok = reg.Get("c1")
	assert.False(t, ok)
	assert.Empty(t, reg.Connections("lobby"))
}

func TestRegistry_ConnectionsSnapshotsRoomOnly(t *testing.T) {
	reg := NewRegistry()
	a := newFakeConn("a")
	b := newFakeConn("b")
	other := newFakeConn("other")

	reg.Associate(a, "lobby", "alice")
	reg.Associate(b, "lobby", "bob")
	reg.Associate(other, "kitchen", "carol")

	conns := reg.Connections("lobby")
	require.Len(t, conns, 2)
	for _, c := range conns {
		assert.NotEqual(t, "other", c.ID())
	}
}
