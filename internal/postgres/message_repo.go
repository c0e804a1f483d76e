package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
)

type MessageRepository struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Save(ctx context.Context, roomID, sender, content string) (*domain.Message, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO room_messages (room_id, sender, content)
		VALUES ($1, $2, $3)
		RETURNING id, room_id, sender, content, read_by, created_at`,
		roomID, sender, content)

	var m domain.Message
	if err := row.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Content, &m.ReadBy, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// History returns the room's messages with keyset pagination (created_at,id DESC).
func (r *MessageRepository) History(ctx context.Context, roomID, after string, limit int) ([]domain.Message, string, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 100 {
		limit = 100
	}
	cur, err := DecodeCursor(after)
	if err != nil {
		return nil, "", fmt.Errorf("decode cursor: %w", err)
	}

	const baseQuery = `
		SELECT id, room_id, sender, content, read_by, created_at
		FROM room_messages
		WHERE room_id = $1
		  AND (
		    $2::timestamptz IS NULL
		    OR created_at < $2
		    OR (created_at = $2 AND id < $3)
		  )
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	var createdAt any
	var id any
	if cur != nil {
		createdAt = cur.CreatedAt
		id = cur.ID
	}

	rows, err := r.db.Query(ctx, baseQuery, roomID, createdAt, id, limit)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Content, &m.ReadBy, &m.CreatedAt); err != nil {
			return nil, "", err
		}
		out = append(out, m)
	}

	var next string
	if len(out) == limit {
		last := out[len(out)-1]
		if c, e := EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID}); e == nil {
			next = c
		}
	}
	return out, next, rows.Err()
}

// ListByRoom returns the full history in creation order, for the room detail view.
func (r *MessageRepository) ListByRoom(ctx context.Context, roomID string) ([]domain.Message, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, room_id, sender, content, read_by, created_at
		FROM room_messages
		WHERE room_id=$1
		ORDER BY created_at ASC, id ASC`,
		roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.RoomID, &m.Sender, &m.Content, &m.ReadBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// CountNewerThan counts the messages created after the given marker.
func (r *MessageRepository) CountNewerThan(ctx context.Context, roomID string, marker time.Time) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM room_messages WHERE room_id=$1 AND created_at > $2`,
		roomID, marker).Scan(&count)
	return count, err
}

// MarkAllRead appends username to read_by on every message of the room that it
// is not on yet.
func (r *MessageRepository) MarkAllRead(ctx context.Context, roomID, username string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE room_messages
		SET read_by = array_append(read_by, $2)
		WHERE room_id = $1 AND NOT ($2 = ANY(read_by))`,
		roomID, username)
	return err
}
