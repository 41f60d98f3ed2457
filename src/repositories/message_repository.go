package repositories

import (
	"context"

	"cryptodash/src/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// UserMessageView is a message joined with its per-user read state.
type UserMessageView struct {
	models.Message
	UserMessageID int64 `db:"user_message_id"`
	Read          bool  `db:"read"`
}

type MessageRepository interface {
	GetByUserID(ctx context.Context, userID int64, limit int) ([]UserMessageView, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, userMessageID, userID int64) error
	Create(ctx context.Context, msg *models.Message) error
	// FanOut links a message to every active user as unread.
	FanOut(ctx context.Context, messageID int64) error
}

type messageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepository(db *pgxpool.Pool) MessageRepository {
	return &messageRepo{db: db}
}

func (r *messageRepo) GetByUserID(ctx context.Context, userID int64, limit int) ([]UserMessageView, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.title, m.content, m.source, m.created_at, um.id, um.read
		 FROM user_messages um
		 JOIN messages m ON m.id = um.message_id
		 WHERE um.user_id = $1
		 ORDER BY m.created_at DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []UserMessageView
	for rows.Next() {
		var v UserMessageView
		if err := rows.Scan(&v.ID, &v.Title, &v.Content, &v.Source, &v.CreatedAt, &v.UserMessageID, &v.Read); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

func (r *messageRepo) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM user_messages WHERE user_id = $1 AND read = FALSE`, userID).
		Scan(&count)
	return count, err
}

func (r *messageRepo) MarkRead(ctx context.Context, userMessageID, userID int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE user_messages SET read = TRUE, read_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		userMessageID, userID)
	return err
}

func (r *messageRepo) Create(ctx context.Context, msg *models.Message) error {
	return r.db.QueryRow(ctx,
		`INSERT INTO messages (title, content, source) VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		msg.Title, msg.Content, msg.Source,
	).Scan(&msg.ID, &msg.CreatedAt)
}

func (r *messageRepo) FanOut(ctx context.Context, messageID int64) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_messages (user_id, message_id, read)
		 SELECT id, $1, FALSE FROM users WHERE status = 'active'
		 ON CONFLICT (user_id, message_id) DO NOTHING`,
		messageID)
	return err
}
