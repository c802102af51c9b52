package notifier

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"user-admin-service/internal/domain/notification"
)

// Memory is an in-process Channel that fans notifications out to
// subscribers. Subscribers with full buffers are skipped rather than
// blocked; a toast that cannot be delivered now is not worth queueing.
type Memory struct {
	mu   sync.RWMutex
	subs map[chan notification.Notification]struct{}
	log  *zap.Logger
}

// NewMemory creates an in-memory notification channel.
func NewMemory(log *zap.Logger) *Memory {
	return &Memory{
		subs: make(map[chan notification.Notification]struct{}),
		log:  log,
	}
}

// Publish delivers the notification to every current subscriber.
func (m *Memory) Publish(_ context.Context, n notification.Notification) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for ch := range m.subs {
		select {
		case ch <- n:
		default:
			m.log.Warn("dropping notification for slow subscriber",
				zap.String("message", n.Message),
				zap.String("kind", string(n.Kind)),
			)
		}
	}
	return nil
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function that must be called when the subscriber goes away.
func (m *Memory) Subscribe(buffer int) (<-chan notification.Notification, func()) {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan notification.Notification, buffer)

	m.mu.Lock()
	m.subs[ch] = struct{}{}
	m.mu.Unlock()

	return ch, func() {
		m.mu.Lock()
		delete(m.subs, ch)
		m.mu.Unlock()
		close(ch)
	}
}
