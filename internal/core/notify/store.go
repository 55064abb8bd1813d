// Package notify defines user-facing notifications and their persistence
// contract. Notifications surface as toasts in the TUI and are kept in the
// local history database for the notifications command.
package notify

import (
	"context"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// ParseLevel returns the level named by s, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelWarning, LevelError:
		return Level(s)
	default:
		return LevelInfo
	}
}

// Notification represents a single notification event. QuestionID is zero
// when the notification is not about a specific question.
type Notification struct {
	ID         int64
	Level      Level
	Message    string
	QuestionID int
	CreatedAt  time.Time
}

// Store persists notifications to durable storage.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
