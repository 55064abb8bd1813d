package tui

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/colonyops/qaeval/internal/core/notify"
)

// drainNotificationsMsg tells the model the buffer has notifications ready.
type drainNotificationsMsg struct{}

// NotificationBuffer decouples bus publishers from the Bubble Tea loop. The
// bus subscriber pushes, and a waiting command wakes the model to drain.
type NotificationBuffer struct {
	mu            sync.Mutex
	notifications []notify.Notification
	signal        chan struct{}
}

func NewNotificationBuffer() *NotificationBuffer {
	return &NotificationBuffer{
		signal: make(chan struct{}, 1),
	}
}

// Push appends a notification and emits a non-blocking drain signal.
// Multiple pushes before a drain coalesce into one signal.
func (b *NotificationBuffer) Push(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	b.mu.Lock()
	b.notifications = append(b.notifications, n)
	b.mu.Unlock()

	select {
	case b.signal <- struct{}{}:
	default:
	}
}

// Drain returns all buffered notifications and clears the buffer.
func (b *NotificationBuffer) Drain() []notify.Notification {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.notifications) == 0 {
		return nil
	}
	out := b.notifications
	b.notifications = nil
	return out
}

// WaitForSignal blocks until there are notifications ready to drain.
func (b *NotificationBuffer) WaitForSignal() tea.Cmd {
	return func() tea.Msg {
		<-b.signal
		return drainNotificationsMsg{}
	}
}
