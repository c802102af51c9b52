// Package notifier delivers transient user-facing notifications to
// whatever display layer is attached. Display lifecycle (timing,
// dismissal, animation) belongs to the consumer, not this package.
package notifier

import (
	"context"

	"user-admin-service/internal/domain/notification"
)

// Channel accepts notifications for display.
type Channel interface {
	Publish(ctx context.Context, n notification.Notification) error
}

// ChannelFunc adapts a function to the Channel interface.
type ChannelFunc func(ctx context.Context, n notification.Notification) error

// Publish implements Channel.
func (f ChannelFunc) Publish(ctx context.Context, n notification.Notification) error {
	return f(ctx, n)
}
