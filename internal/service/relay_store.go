package service

import (
	"context"
	"strings"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
	"github.com/TaslimOwolarafe/JoyRoom/internal/postgres"
)

// RelayStore adapts the repositories to the relay's Persister interface. The
// relay addresses rooms by id, not by name, and its room namespace is wider than
// the persisted one: writes against a room that was never persisted fail here
// and the relay absorbs the failure.
type RelayStore struct {
	participantRepo *postgres.ParticipantRepository
	messageRepo     *postgres.MessageRepository
}

func NewRelayStore(participantRepo *postgres.ParticipantRepository, messageRepo *postgres.MessageRepository) *RelayStore {
	return &RelayStore{
		participantRepo: participantRepo,
		messageRepo:     messageRepo,
	}
}

func (s *RelayStore) SaveMessage(ctx context.Context, roomID, sender, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return domain.ErrEmptyMessage
	}
	if len(content) > maxMessageLen {
		return domain.ErrMessageTooLong
	}
	_, err := s.messageRepo.Save(ctx, roomID, sender, content)
	return err
}

func (s *RelayStore) EnsureParticipant(ctx context.Context, roomID, username string) error {
	return s.participantRepo.Add(ctx, roomID, username)
}
