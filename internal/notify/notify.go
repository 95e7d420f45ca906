package notify

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
)

// Notifier delivers a message to a user. Fire-and-forget from the sender's
// point of view; an error only means the delivery attempt itself failed.
type Notifier interface {
	Notify(ctx context.Context, userID, message string, severity Severity) error
}

type Notification struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Message   string    `json:"message"`
	Severity  Severity  `json:"severity"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists notifications as an inbox table the presentation layer
// reads from.
type Store struct{ DB *pgxpool.Pool }

func (s *Store) Notify(ctx context.Context, userID, message string, severity Severity) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO notifications(user_id, message, severity, created_at)
		VALUES ($1,$2,$3,NOW())`, userID, message, severity)
	return err
}

func (s *Store) ListForUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.DB.Query(ctx, `
		SELECT id, user_id, message, severity, created_at
		FROM notifications WHERE user_id=$1
		ORDER BY created_at DESC LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Severity, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
