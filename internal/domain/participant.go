package domain

import "time"

type Participant struct {
	ID           string    `db:"id"`
	RoomID       string    `db:"room_id"`
	Username     string    `db:"username"`
	JoinedAt     time.Time `db:"joined_at"`
	LastAccessed time.Time `db:"last_accessed"`
}
