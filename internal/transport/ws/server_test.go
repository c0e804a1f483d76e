package ws

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TaslimOwolarafe/JoyRoom/internal/relay"
)

type outboundFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newTestServer(t *testing.T) (*httptest.Server, *relay.Registry) {
	t.Helper()

	reg := relay.NewRegistry()
	hub := relay.NewHub(reg)
	router := relay.NewRouter(reg, hub, nil)
	s := NewServer(router)

	ts := httptest.NewServer(http.HandlerFunc(s.HandleWS))
	t.Cleanup(ts.Close)
	return ts, reg
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, ev relay.Inbound) {
	t.Helper()
	require.NoError(t, conn.WriteJSON(ev))
}

func read(t *testing.T, conn *websocket.Conn) outboundFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	var frame outboundFrame
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

// join sends a join-room event and waits until the server side processed it, so
// tests can rely on join order.
func join(t *testing.T, reg *relay.Registry, conn *websocket.Conn, room, user string, wantMembers int) {
	t.Helper()
	send(t, conn, relay.Inbound{Type: relay.EventJoinRoom, RoomID: room, Username: user})
	require.Eventually(t, func() bool {
		return len(reg.Connections(room)) == wantMembers
	}, 3*time.Second, 10*time.Millisecond)
}

func TestHandleWS_JoinMessageLeaveFlow(t *testing.T) {
	ts, reg := newTestServer(t)

	alice := dial(t, ts)
	bob := dial(t, ts)

	join(t, reg, alice, "lobby", "alice", 1)
	join(t, reg, bob, "lobby", "bob", 2)

	joined := read(t, alice)
	assert.Equal(t, relay.EventUserJoined, joined.Type)
	var presence relay.PresencePayload
	require.NoError(t, json.Unmarshal(joined.Payload, &presence))
	assert.Equal(t, "bob", presence.Username)

	send(t, alice, relay.Inbound{Type: relay.EventSendMessage, RoomID: "lobby", Username: "alice", Message: "hi"})

	for _, conn := range []*websocket.Conn{alice, bob} {
		frame := read(t, conn)
		assert.Equal(t, relay.EventReceiveMessage, frame.Type)
		var msg relay.MessagePayload
		require.NoError(t, json.Unmarshal(frame.Payload, &msg))
		assert.Equal(t, "hi", msg.Message)
		assert.Equal(t, "alice", msg.Username)
		assert.False(t, msg.Timestamp.IsZero())
	}

	require.NoError(t, bob.Close())

	left := read(t, alice)
	assert.Equal(t, relay.EventUserLeft, left.Type)
	require.NoError(t, json.Unmarshal(left.Payload, &presence))
	assert.Equal(t, "bob", presence.Username)
}

func TestHandleWS_MalformedFrameIsIgnored(t *testing.T) {
	ts, reg := newTestServer(t)

	alice := dial(t, ts)
	bob := dial(t, ts)

	join(t, reg, alice, "lobby", "alice", 1)
	join(t, reg, bob, "lobby", "bob", 2)
	_ = read(t, alice) // bob's user-joined

	require.NoError(t, alice.WriteMessage(websocket.TextMessage, []byte("not json")))
	send(t, alice, relay.Inbound{Type: relay.EventSendMessage, RoomID: "lobby", Username: "alice", Message: "still alive"})

	frame := read(t, bob)
	assert.Equal(t, relay.EventReceiveMessage, frame.Type)
}

func TestHandleWS_TypingSignalsSkipSender(t *testing.T) {
	ts, reg := newTestServer(t)

	alice := dial(t, ts)
	bob := dial(t, ts)

	join(t, reg, alice, "lobby", "alice", 1)
	join(t, reg, bob, "lobby", "bob", 2)
	_ = read(t, alice) // bob's user-joined

	send(t, alice, relay.Inbound{Type: relay.EventUserTyping, RoomID: "lobby", Username: "alice"})
	send(t, alice, relay.Inbound{Type: relay.EventUserStoppedTyping, RoomID: "lobby", Username: "alice"})

	first := read(t, bob)
	second := read(t, bob)
	assert.Equal(t, relay.EventTyping, first.Type)
	assert.Equal(t, relay.EventStoppedTyping, second.Type)
}
