// Package stores holds the SQLite-backed implementations of core storage interfaces.
package stores

import (
	"context"
	"fmt"
	"time"

	"github.com/colonyops/qaeval/internal/core/notify"
	"github.com/colonyops/qaeval/internal/data/db"
)

// NotifyStore implements notify.Store using SQLite.
type NotifyStore struct {
	db *db.DB
}

var _ notify.Store = (*NotifyStore)(nil)

// NewNotifyStore creates a new SQLite-backed notification store.
func NewNotifyStore(db *db.DB) *NotifyStore {
	return &NotifyStore{db: db}
}

const (
	insertNotification = `INSERT INTO notifications (level, message, question_id, created_at)
VALUES (?, ?, ?, ?)
RETURNING id`

	listNotifications = `SELECT id, level, message, question_id, created_at
FROM notifications
ORDER BY created_at DESC, id DESC`

	deleteAllNotifications = `DELETE FROM notifications`

	countNotifications = `SELECT COUNT(*) FROM notifications`
)

// Save persists a notification and returns its auto-generated ID.
func (s *NotifyStore) Save(ctx context.Context, n notify.Notification) (int64, error) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	var id int64
	err := s.db.Conn().QueryRowContext(ctx, insertNotification,
		string(n.Level), n.Message, n.QuestionID, n.CreatedAt.UnixNano(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert notification: %w", err)
	}

	return id, nil
}

// List returns all notifications ordered by newest first.
func (s *NotifyStore) List(ctx context.Context) ([]notify.Notification, error) {
	rows, err := s.db.Conn().QueryContext(ctx, listNotifications)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer func() { _ = rows.Close() }()

	result := make([]notify.Notification, 0)
	for rows.Next() {
		var (
			n         notify.Notification
			level     string
			createdAt int64
		)
		if err := rows.Scan(&n.ID, &level, &n.Message, &n.QuestionID, &createdAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		n.Level = notify.ParseLevel(level)
		n.CreatedAt = time.Unix(0, createdAt)
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	return result, nil
}

// Clear deletes all notifications.
func (s *NotifyStore) Clear(ctx context.Context) error {
	if _, err := s.db.Conn().ExecContext(ctx, deleteAllNotifications); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	return nil
}

// Count returns the total number of notifications.
func (s *NotifyStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.Conn().QueryRowContext(ctx, countNotifications).Scan(&count); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return count, nil
}
