package domain

import "time"

type Room struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Owner     string    `db:"owner"`
	CreatedAt time.Time `db:"created_at"`
}

// RoomDetail is a room together with its participants and message history.
type RoomDetail struct {
	Room
	Participants []Participant
	Messages     []Message
}
