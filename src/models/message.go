package models

import "time"

// Message is a market message collected from upstream feeds. Read state is
// tracked per user in user_messages.
type Message struct {
	ID        int64     `db:"id"`
	Title     string    `db:"title"`
	Content   string    `db:"content"`
	Source    string    `db:"source"`
	CreatedAt time.Time `db:"created_at"`
}

type UserMessage struct {
	ID        int64      `db:"id"`
	UserID    int64      `db:"user_id"`
	MessageID int64      `db:"message_id"`
	Read      bool       `db:"read"`
	ReadAt    *time.Time `db:"read_at"`
}
