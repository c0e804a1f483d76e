package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
	"github.com/TaslimOwolarafe/JoyRoom/internal/service"
)

type Handler struct {
	roomSvc   *service.RoomService
	memberSvc *service.MemberService
	chatSvc   *service.ChatService
}

func NewHandler(room *service.RoomService, member *service.MemberService, chat *service.ChatService) *Handler {
	return &Handler{
		roomSvc:   room,
		memberSvc: member,
		chatSvc:   chat,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// POST /rooms
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
		return
	}
	if req.Username == "" || req.RoomName == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username and room name are required"})
		return
	}

	room, err := h.roomSvc.CreateRoom(r.Context(), req.RoomName, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrRoomExists) {
			writeJSON(w, http.StatusConflict, ErrorResponse{Error: "room already exists"})
			return
		}
		slog.Error("handler.CreateRoom:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to create room"})
		return
	}

	writeJSON(w, http.StatusCreated, CreateRoomResponse{RoomID: room.ID, RoomName: room.Name})
}

// GET /rooms?username=  — rooms the user participates in.
// GET /rooms?limit=&cursor= — all rooms, paginated, when no username given.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if username := q.Get("username"); username != "" {
		rooms, err := h.roomSvc.ListRoomsFor(r.Context(), username)
		if err != nil {
			slog.Error("handler.ListRooms:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch rooms"})
			return
		}
		writeJSON(w, http.StatusOK, roomsToResponse(rooms, ""))
		return
	}

	limit := 20
	if s := q.Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}
	rooms, next, err := h.roomSvc.ListRooms(r.Context(), limit, q.Get("cursor"))
	if err != nil {
		if errors.Is(err, postgres.ErrInvalidCursor) {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid_cursor"})
			return
		}
		slog.Error("handler.ListRooms:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch rooms"})
		return
	}
	writeJSON(w, http.StatusOK, roomsToResponse(rooms, next))
}

// GET /rooms/{roomName} — room with participants and message history.
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")

	detail, err := h.roomSvc.GetRoomDetail(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.GetRoom:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "server error"})
		return
	}

	resp := RoomDetailResponse{
		RoomItem: RoomItem{
			ID:        detail.ID,
			Name:      detail.Name,
			Owner:     detail.Owner,
			CreatedAt: detail.CreatedAt,
		},
		Participants: participantsToItems(detail.Participants),
		Messages:     messagesToItems(detail.Messages),
	}
	writeJSON(w, http.StatusOK, resp)
}

// POST /rooms/{roomName}/participants
func (h *Handler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	if _, err := h.memberSvc.AddParticipant(r.Context(), name, req.Username); err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.AddParticipant:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to add participant"})
		return
	}

	writeJSON(w, http.StatusCreated, StatusResponse{Status: "joined"})
}

// DELETE /rooms/{roomName}/participants
func (h *Handler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	if err := h.memberSvc.RemoveParticipant(r.Context(), name, req.Username); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case errors.Is(err, domain.ErrParticipantNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "participant not found in this room"})
		default:
			slog.Error("handler.RemoveParticipant:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to remove participant"})
		}
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "removed"})
}

// GET /rooms/{roomName}/participants
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")

	parts, err := h.memberSvc.ListParticipants(r.Context(), name)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.ListParticipants:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to retrieve participants"})
		return
	}

	writeJSON(w, http.StatusOK, ParticipantsResponse{Items: participantsToItems(parts)})
}

// POST /rooms/{roomName}/messages
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Content == "" || req.Sender == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "content and sender are required"})
		return
	}

	msg, err := h.chatSvc.Save(r.Context(), name, req.Sender, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case errors.Is(err, domain.ErrEmptyMessage), errors.Is(err, domain.ErrMessageTooLong):
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		default:
			slog.Error("handler.PostMessage:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to send message"})
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageToItem(*msg))
}

// GET /rooms/{roomName}/messages?after=&limit=
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	after := r.URL.Query().Get("after")
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	items, next, err := h.chatSvc.History(r.Context(), name, after, limit)
	if err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.GetMessages:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "failed to fetch messages"})
		return
	}

	writeJSON(w, http.StatusOK, MessagesResponse{Items: messagesToItems(items), NextCursor: next})
}

// GET /rooms/{roomName}/unread-count?username=
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	username := r.URL.Query().Get("username")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	count, err := h.chatSvc.UnreadCount(r.Context(), name, username)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case errors.Is(err, domain.ErrParticipantNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "participant not found"})
		default:
			slog.Error("handler.UnreadCount:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error fetching unread count"})
		}
		return
	}

	writeJSON(w, http.StatusOK, UnreadCountResponse{UnreadCount: count})
}

// POST /rooms/{roomName}/mark-read
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	if err := h.chatSvc.MarkAllRead(r.Context(), name, req.Username); err != nil {
		if errors.Is(err, domain.ErrRoomNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
			return
		}
		slog.Error("handler.MarkRead:", slog.Any("err", err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error marking messages as read"})
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "read"})
}

// POST /rooms/{roomName}/update-last-accessed
func (h *Handler) UpdateLastAccessed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "roomName")
	var req ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "username is required"})
		return
	}

	if err := h.memberSvc.TouchLastAccessed(r.Context(), name, req.Username); err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "room not found"})
		case errors.Is(err, domain.ErrParticipantNotFound):
			writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "participant not found"})
		default:
			slog.Error("handler.UpdateLastAccessed:", slog.Any("err", err))
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "error updating last accessed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// --- mapping helpers ---

func roomsToResponse(rooms []domain.Room, next string) RoomsListResponse {
	resp := RoomsListResponse{Items: make([]RoomItem, 0, len(rooms)), NextCursor: next}
	for _, rm := range rooms {
		resp.Items = append(resp.Items, RoomItem{
			ID:        rm.ID,
			Name:      rm.Name,
			Owner:     rm.Owner,
			CreatedAt: rm.CreatedAt,
		})
	}
	return resp
}

func participantsToItems(parts []domain.Participant) []ParticipantItem {
	items := make([]ParticipantItem, 0, len(parts))
	for _, p := range parts {
		items = append(items, ParticipantItem{
			ID:           p.ID,
			Username:     p.Username,
			JoinedAt:     p.JoinedAt,
			LastAccessed: p.LastAccessed,
		})
	}
	return items
}

func messagesToItems(msgs []domain.Message) []MessageItem {
	items := make([]MessageItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, messageToItem(m))
	}
	return items
}

func messageToItem(m domain.Message) MessageItem {
	return MessageItem{
		ID:        m.ID,
		RoomID:    m.RoomID,
		Sender:    m.Sender,
		Content:   m.Content,
		ReadBy:    m.ReadBy,
		CreatedAt: m.CreatedAt.Truncate(time.Millisecond),
	}
}
