package service

import (
	"context"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
)

type MemberService struct {
	roomRepo        *postgres.RoomRepository
	participantRepo *postgres.ParticipantRepository
}

func NewMemberService(roomRepo *postgres.RoomRepository, participantRepo *postgres.ParticipantRepository) *MemberService {
	return &MemberService{
		roomRepo:        roomRepo,
		participantRepo: participantRepo,
	}
}

// AddParticipant registers username in the room; idempotent on duplicates.
func (s *MemberService) AddParticipant(ctx context.Context, roomName, username string) (*domain.Room, error) {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return nil, err
	}
	if err := s.participantRepo.Add(ctx, room.ID, username); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *MemberService) RemoveParticipant(ctx context.Context, roomName, username string) error {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return err
	}
	return s.participantRepo.Remove(ctx, room.ID, username)
}

func (s *MemberService) ListParticipants(ctx context.Context, roomName string) ([]domain.Participant, error) {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return nil, err
	}
	return s.participantRepo.ListByRoom(ctx, room.ID)
}

// TouchLastAccessed moves the user's read marker in the room to now.
func (s *MemberService) TouchLastAccessed(ctx context.Context, roomName, username string) error {
	room, err := s.roomRepo.GetByName(ctx, roomName)
	if err != nil {
		return err
	}
	return s.participantRepo.TouchLastAccessed(ctx, room.ID, username)
}
