package relay

import "time"

// Inbound event types (client -> relay).
const (
	EventJoinRoom          = "join-room"
	EventLeaveRoom         = "leave-room"
	EventSendMessage       = "send-message"
	EventUserTyping        = "user-typing"
	EventUserStoppedTyping = "user-stopped-typing"
)

// Outbound event types (relay -> clients).
const (
	EventUserJoined     = "user-joined"
	EventUserLeft       = "user-left"
	EventReceiveMessage = "receive-message"
	EventTyping         = "typing"
	EventStoppedTyping  = "stopped-typing"
)

// Inbound is the single envelope for every client event. The router switches on
// Type; unknown types and envelopes missing a room or username are ignored.
type Inbound struct {
	Type     string `json:"type"`
	RoomID   string `json:"room_id"`
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}

type Outbound struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// PresencePayload carries user-joined, user-left, typing and stopped-typing.
type PresencePayload struct {
	Username string `json:"username"`
}

type MessagePayload struct {
	Message   string    `json:"message"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}
