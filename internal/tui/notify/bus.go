// Package notify is the in-process notification bus used by the TUI. Views
// publish outcomes (failed mutations, uploads, load errors) and the root
// model subscribes to turn them into toasts.
package notify

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/qaeval/internal/core/notify"
)

const persistTimeout = 2 * time.Second

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus dispatches notifications to subscribers inline and persists them to a
// Store. It is safe for use from the Bubble Tea Update loop.
type Bus struct {
	store       notify.Store
	subscribers []Subscriber
	mu          sync.Mutex
}

// NewBus creates a notification bus backed by the given store. A nil store
// disables persistence.
func NewBus(store notify.Store) *Bus {
	return &Bus{store: store}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish persists n and then dispatches it to all subscribers.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if b.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		id, err := b.store.Save(ctx, n)
		cancel()
		if err != nil {
			log.Error().Err(err).Str("message", n.Message).Msg("failed to persist notification")
		} else {
			n.ID = id
		}
	}

	b.mu.Lock()
	subs := slices.Clone(b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

func (b *Bus) publishf(level notify.Level, format string, args ...any) {
	b.Publish(notify.Notification{Level: level, Message: fmt.Sprintf(format, args...)})
}

// Errorf, Warnf and Infof publish a formatted message at their level.
func (b *Bus) Errorf(format string, args ...any) { b.publishf(notify.LevelError, format, args...) }

func (b *Bus) Warnf(format string, args ...any) { b.publishf(notify.LevelWarning, format, args...) }

func (b *Bus) Infof(format string, args ...any) { b.publishf(notify.LevelInfo, format, args...) }

// History returns all persisted notifications, newest first. It returns nil
// when no store is configured.
func (b *Bus) History() ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return b.store.List(ctx)
}

// Clear deletes all persisted notifications.
func (b *Bus) Clear() error {
	if b.store == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	return b.store.Clear(ctx)
}
