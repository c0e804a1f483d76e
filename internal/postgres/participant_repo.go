package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
)

type ParticipantRepository struct {
	db *pgxpool.Pool
}

func NewParticipantRepository(db *pgxpool.Pool) *ParticipantRepository {
	return &ParticipantRepository{db: db}
}

// Add registers a participant; adding someone who is already in the room is a
// no-op, not an error.
func (r *ParticipantRepository) Add(ctx context.Context, roomID, username string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO room_participants (room_id, username)
		VALUES ($1, $2)
		ON CONFLICT (room_id, username) DO NOTHING`,
		roomID, username)
	return err
}

func (r *ParticipantRepository) Exists(ctx context.Context, roomID, username string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM room_participants WHERE room_id=$1 AND username=$2)`,
		roomID, username).Scan(&exists)
	return exists, err
}

func (r *ParticipantRepository) Remove(ctx context.Context, roomID, username string) error {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM room_participants WHERE room_id=$1 AND username=$2`,
		roomID, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}

func (r *ParticipantRepository) Get(ctx context.Context, roomID, username string) (*domain.Participant, error) {
	var p domain.Participant
	err := r.db.QueryRow(ctx, `
		SELECT id, room_id, username, joined_at, last_accessed
		FROM room_participants WHERE room_id=$1 AND username=$2`,
		roomID, username).
		Scan(&p.ID, &p.RoomID, &p.Username, &p.JoinedAt, &p.LastAccessed)
	if err != nil {
		return nil, domain.ErrParticipantNotFound
	}
	return &p, nil
}

func (r *ParticipantRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Participant, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_id, username, joined_at, last_accessed
		FROM room_participants WHERE room_id=$1 ORDER BY joined_at ASC`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []domain.Participant
	for rows.Next() {
		var p domain.Participant
		if err := rows.Scan(&p.ID, &p.RoomID, &p.Username, &p.JoinedAt, &p.LastAccessed); err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// TouchLastAccessed moves the participant's read marker to now.
func (r *ParticipantRepository) TouchLastAccessed(ctx context.Context, roomID, username string) error {
	cmd, err := r.db.Exec(ctx,
		`UPDATE room_participants SET last_accessed=now() WHERE room_id=$1 AND username=$2`,
		roomID, username)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrParticipantNotFound
	}
	return nil
}
