package relay

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Persister is the relay's view of the durable store. Calls are fire-and-forget:
// the router runs them on their own goroutines and a failure never reaches the
// fan-out path. A nil Persister disables durability entirely.
type Persister interface {
	SaveMessage(ctx context.Context, roomID, sender, content string) error
	EnsureParticipant(ctx context.Context, roomID, username string) error
}

// Router is the protocol state machine. Each connection is either unjoined or
// joined to exactly one room; Dispatch interprets inbound events and drives the
// registry, the hub and the outbound emission.
//
// One mutex serializes whole event handlings, so every mutation of the shared
// maps and the broadcasts it triggers happen on a single logical stream. Handlers
// do no blocking work, so holding the lock across a handling is cheap.
type Router struct {
	mu    sync.Mutex
	reg   *Registry
	hub   *Hub
	store Persister

	now func() time.Time
}

func NewRouter(reg *Registry, hub *Hub, store Persister) *Router {
	return &Router{
		reg:   reg,
		hub:   hub,
		store: store,
		now:   time.Now,
	}
}

// Register records a transport-level connect before any join.
func (rt *Router) Register(c Conn) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.reg.Register(c)
}

// Dispatch routes one inbound event. Malformed events (missing room or username)
// and unknown types are dropped; the relay has no fatal states and never returns
// an error to the transport.
func (rt *Router) Dispatch(c Conn, ev Inbound) {
	if ev.RoomID == "" || ev.Username == "" {
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()

	switch ev.Type {
	case EventJoinRoom:
		rt.handleJoin(c, ev.RoomID, ev.Username)
	case EventLeaveRoom:
		rt.handleLeave(c, ev.RoomID, ev.Username)
	case EventSendMessage:
		rt.handleMessage(c, ev.RoomID, ev.Username, ev.Message)
	case EventUserTyping:
		rt.hub.BroadcastExcept(ev.RoomID, c.ID(), Outbound{
			Type:    EventTyping,
			Payload: PresencePayload{Username: ev.Username},
		})
	case EventUserStoppedTyping:
		rt.hub.BroadcastExcept(ev.RoomID, c.ID(), Outbound{
			Type:    EventStoppedTyping,
			Payload: PresencePayload{Username: ev.Username},
		})
	default:
		// unknown event type
	}
}

// HandleDisconnect runs the disconnect transition for a closed connection. With
// no prior association it is a no-op.
func (rt *Router) HandleDisconnect(c Conn) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	m, ok := rt.reg.Remove(c.ID())
	rt.reg.Unregister(c.ID())
	if !ok {
		return
	}
	rt.hub.BroadcastExcept(m.RoomID, c.ID(), Outbound{
		Type:    EventUserLeft,
		Payload: PresencePayload{Username: m.Username},
	})
}

func (rt *Router) handleJoin(c Conn, roomID, username string) {
	prev, moved := rt.reg.Associate(c, roomID, username)

	// Joining a second room is a move: announce the departure to the old room so
	// its projections stay consistent with the registry.
	if moved && prev.RoomID != roomID {
		rt.hub.Broadcast(prev.RoomID, Outbound{
			Type:    EventUserLeft,
			Payload: PresencePayload{Username: prev.Username},
		})
	}

	rt.hub.BroadcastExcept(roomID, c.ID(), Outbound{
		Type:    EventUserJoined,
		Payload: PresencePayload{Username: username},
	})

	if rt.store != nil {
		go func() {
			if err := rt.store.EnsureParticipant(context.Background(), roomID, username); err != nil {
				slog.Debug("relay: ensure participant failed", "room", roomID, "user", username, "err", err)
			}
		}()
	}
}

// Explicit leave broadcasts user-left to the whole room, sender included, before
// the registry entry goes away. The sender stops receiving anything afterwards.
func (rt *Router) handleLeave(c Conn, roomID, username string) {
	rt.hub.Broadcast(roomID, Outbound{
		Type:    EventUserLeft,
		Payload: PresencePayload{Username: username},
	})
	rt.reg.Remove(c.ID())
}

func (rt *Router) handleMessage(c Conn, roomID, username, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	// The sender receives its own message through the same broadcast as everyone
	// else, so one event stream orders the history on every client.
	rt.hub.Broadcast(roomID, Outbound{
		Type: EventReceiveMessage,
		Payload: MessagePayload{
			Message:   text,
			Username:  username,
			Timestamp: rt.now(),
		},
	})

	if rt.store != nil {
		go func() {
			if err := rt.store.SaveMessage(context.Background(), roomID, username, text); err != nil {
				slog.Warn("relay: save message failed", "room", roomID, "user", username, "err", err)
			}
		}()
	}
}
