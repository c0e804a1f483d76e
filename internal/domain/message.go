package domain

import "time"

type Message struct {
	ID        string    `db:"id"`
	RoomID    string    `db:"room_id"`
	Sender    string    `db:"sender"`
	Content   string    `db:"content"`
	ReadBy    []string  `db:"read_by"`
	CreatedAt time.Time `db:"created_at"`
}
