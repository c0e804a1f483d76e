package http

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

type CreateRoomRequest struct {
	Username string `json:"username"`
	RoomName string `json:"roomName"`
}

type CreateRoomResponse struct {
	RoomID   string `json:"roomId"`
	RoomName string `json:"roomName"`
}

type RoomItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type RoomsListResponse struct {
	Items      []RoomItem `json:"items"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

type RoomDetailResponse struct {
	RoomItem
	Participants []ParticipantItem `json:"participants"`
	Messages     []MessageItem     `json:"messages"`
}

type ParticipantItem struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	JoinedAt     time.Time `json:"joinedAt"`
	LastAccessed time.Time `json:"lastAccessed"`
}

type ParticipantsResponse struct {
	Items []ParticipantItem `json:"items"`
}

type ParticipantRequest struct {
	Username string `json:"username"`
}

type PostMessageRequest struct {
	Content string `json:"content"`
	Sender  string `json:"sender"`
}

type MessageItem struct {
	ID        string    `json:"id"`
	RoomID    string    `json:"roomId"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	ReadBy    []string  `json:"readBy,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type MessagesResponse struct {
	Items      []MessageItem `json:"items"`
	NextCursor string        `json:"nextCursor,omitempty"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unreadCount"`
}

type StatusResponse struct {
	Status string `json:"status"`
}
