package service

import (
	"context"
	"strings"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
)

const maxMessageLen = 4000

type ChatService struct {
	roomRepo        *postgres.RoomRepository
	participantRepo *postgres.ParticipantRepository
	messageRepo     *postgres.MessageRepository
}

func NewChatService(
	roomRepo *postgres.RoomRepository,
	participantRepo *postgres.ParticipantRepository,
	messageRepo *postgres.MessageRepository,
) *ChatService {
	return &ChatService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
	}
}

func (s *ChatService) Save(ctx context.Context, roomName, sender, content string) (*domain.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.ErrEmptyMessage
	}
	if len(content) > maxMessageLen {
		return nil, domain.ErrMessageTooLong
	}
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return nil, err
	}
	return s.messageRepo.Save(ctx, room.ID, sender, content)
}

func (s *ChatService) History(ctx context.Context, roomName, after string, limit int) ([]domain.Message, string, error) {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return nil, "", err
	}
	return s.messageRepo.History(ctx, room.ID, after, limit)
}

// UnreadCount counts the room's messages created after the participant's
// last-accessed marker.
func (s *ChatService) UnreadCount(ctx context.Context, roomName, username string) (int64, error) {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return 0, err
	}
	p, err := s.participantRepo.Get(ctx, room.ID, username)
	if err != nil {
		return 0, err
	}
	return s.messageRepo.CountNewerThan(ctx, room.ID, p.LastAccessed)
}

// MarkAllRead records username as a reader on every message of the room.
func (s *ChatService) MarkAllRead(ctx context.Context, roomName, username string) error {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return err
	}
	return s.messageRepo.MarkAllRead(ctx, room.ID, username)
}
