package service

import (
	"context"
	"fmt"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
)

type RoomService struct {
	roomRepo        *postgres.RoomRepository
	participantRepo *postgres.ParticipantRepository
	messageRepo     *postgres.MessageRepository
}

func NewRoomService(
	roomRepo *postgres.RoomRepository,
	participantRepo *postgres.ParticipantRepository,
	messageRepo *postgres.MessageRepository,
) *RoomService {
	return &RoomService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
	}
}

// CreateRoom creates a room owned by username; the owner becomes the first
// participant.
func (s *RoomService) CreateRoom(ctx context.Context, name, owner string) (*domain.Room, error) {
	room := &domain.Room{
		Name:  name,
		Owner: owner,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, fmt.Errorf("roomRepo.Create: %w", err)
	}
	return room, nil
}

func (s *RoomService) GetRoom(ctx context.Context, name string) (*domain.Room, error) {
	return s.roomRepo.GetByName(ctx, name)
}

// GetRoomDetail returns the room with its participants and full message history.
func (s *RoomService) GetRoomDetail(ctx context.Context, name string) (*domain.RoomDetail, error) {
	room, err := s.roomRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	parts, err := s.participantRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("participantRepo.ListByRoom: %w", err)
	}
	msgs, err := s.messageRepo.ListByRoom(ctx, room.ID)
	if err != nil {
		return nil, fmt.Errorf("messageRepo.ListByRoom: %w", err)
	}

	return &domain.RoomDetail{
		Room:         *room,
		Participants: parts,
		Messages:     msgs,
	}, nil
}

// ListRoomsFor returns the rooms the user participates in.
func (s *RoomService) ListRoomsFor(ctx context.Context, username string) ([]domain.Room, error) {
	return s.roomRepo.ListByUsername(ctx, username)
}

// ListRooms returns all rooms with cursor pagination.
func (s *RoomService) ListRooms(ctx context.Context, limit int, cursor string) ([]domain.Room, string, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 50 {
		limit = 50
	}
	return s.roomRepo.List(ctx, limit, cursor)
}

func (s *RoomService) DeleteRoom(ctx context.Context, id string) error {
	return s.roomRepo.Delete(ctx, id)
}
