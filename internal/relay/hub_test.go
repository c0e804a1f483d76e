package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesEveryMemberOnce(t *testing.T) {
	reg := NewRegistry()
	hub := NewHub(reg)

	a := newFakeConn("a")
	b := newFakeConn("b")
	stranger := newFakeConn("s")
	reg.Associate(a, "lobby", "alice")
	reg.Associate(b, "lobby", "bob")
	reg.Associate(stranger, "kitchen", "carol")

	hub.Broadcast("lobby", Outbound{Type: EventReceiveMessage})

	assert.Len(t, a.received(), 1)
	assert.Len(t, b.received(), 1)
	assert.Empty(t, stranger.received(), "other rooms must not see the event")
}

func TestHub_BroadcastExceptSkipsSender(t *testing.T) {
	reg := NewRegistry()
	hub := NewHub(reg)

	a := newFakeConn("a")
	b := newFakeConn("b")
	reg.Associate(a, "lobby", "alice")
	reg.Associate(b, "lobby", "bob")

	hub.BroadcastExcept("lobby", "a", Outbound{Type: EventTyping})

	assert.Empty(t, a.received())
	require.Len(t, b.received(), 1)
	assert.Equal(t, EventTyping, b.received()[0].Type)
}

func TestHub_BroadcastToUnknownRoomIsNoop(t *testing.T) {
	reg := NewRegistry()
	hub := NewHub(reg)

	hub.Broadcast("ghost", Outbound{Type: EventUserJoined})
}

func TestHub_FailedSendDoesNotAbortFanout(t *testing.T) {
	reg := NewRegistry()
	hub := NewHub(reg)

	broken := newFakeConn("broken")
	broken.failed = true
	ok := newFakeConn("ok")
	reg.Associate(broken, "lobby", "alice")
	reg.Associate(ok, "lobby", "bob")

	hub.Broadcast("lobby", Outbound{Type: EventReceiveMessage})

	assert.Len(t, ok.received(), 1)
}

func TestHub_Unicast(t *testing.T) {
	reg := NewRegistry()
	hub := NewHub(reg)

	a := newFakeConn("a")
	hub.Unicast(a, Outbound{Type: EventStoppedTyping})

	require.Len(t, a.received(), 1)
	assert.Equal(t, EventStoppedTyping, a.received()[0].Type)
}
