package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TaslimOwolarafe/JoyRoom/internal/domain"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create inserts the room and its owner as the first participant in one
// transaction, so a room can never exist without its creator in it.
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO rooms (name, owner)
		VALUES ($1, $2)
		RETURNING id, created_at`,
		room.Name, room.Owner).Scan(&room.ID, &room.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrRoomExists
		}
		return err
	}

	if _, err := tx.Exec(ctx, `
		INSERT INTO room_participants (room_id, username)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING`,
		room.ID, room.Owner); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *RoomRepository) GetByName(ctx context.Context, name string) (*domain.Room, error) {
	var rm domain.Room
	err := r.db.QueryRow(ctx,
		`SELECT id, name, owner, created_at FROM rooms WHERE name=$1`, name).
		Scan(&rm.ID, &rm.Name, &rm.Owner, &rm.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// ListByUsername returns the rooms the user participates in, newest first.
func (r *RoomRepository) ListByUsername(ctx context.Context, username string) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, r.owner, r.created_at
		FROM rooms r
		JOIN room_participants p ON p.room_id = r.id
		WHERE p.username = $1
		ORDER BY r.created_at DESC, r.id DESC`,
		username)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Owner, &rm.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, rm)
	}
	return rooms, rows.Err()
}

func (r *RoomRepository) List(ctx context.Context, limit int, cursorStr string) ([]domain.Room, string, error) {
	cur, err := DecodeCursor(cursorStr)
	if err != nil {
		return nil, "", err
	}

	query := `
		SELECT id, name, owner, created_at
		FROM rooms
		WHERE ($1::timestamptz IS NULL OR created_at < $1
		       OR (created_at = $1 AND id < $2))
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	var createdAt any
	var id any
	if cur != nil {
		createdAt = cur.CreatedAt
		id = cur.ID
	}

	rows, err := r.db.Query(ctx, query, createdAt, id, limit)
	if err != nil {
		return nil, "", err
	}
	defer rows.Close()

	var rooms []domain.Room
	for rows.Next() {
		var rm domain.Room
		if err := rows.Scan(&rm.ID, &rm.Name, &rm.Owner, &rm.CreatedAt); err != nil {
			return nil, "", err
		}
		rooms = append(rooms, rm)
	}

	var nextCursor string
	if len(rooms) == limit {
		last := rooms[len(rooms)-1]
		nextCursor, _ = EncodeCursor(Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}

	return rooms, nextCursor, rows.Err()
}

func (r *RoomRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM rooms WHERE id=$1`, id)
	return err
}
