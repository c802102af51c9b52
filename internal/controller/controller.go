// Package controller holds the state of the users screen: the current
// user list and the active toast notification. It orchestrates calls to
// the backend directory and refreshes its list copy after every mutation.
package controller

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"user-admin-service/internal/directory"
	"user-admin-service/internal/domain/notification"
	"user-admin-service/internal/domain/user"
	"user-admin-service/internal/notifier"
)

// DefaultNotifyDelay is how long a cleared toast stays empty before the
// next one appears. The gap forces the display layer to unmount and
// remount the toast element, restarting its dismissal timer even when two
// consecutive notifications carry identical text.
const DefaultNotifyDelay = 100 * time.Millisecond

// UserListController owns the users-screen state. The backend remains the
// authoritative copy of the list; the controller's copy is a cache that is
// re-fetched wholesale after every mutation, never patched incrementally.
type UserListController struct {
	dir     directory.UserDirectory
	channel notifier.Channel
	log     *zap.Logger
	delay   time.Duration

	mu           sync.Mutex
	users        []user.User
	notification *notification.Notification
	pending      *time.Timer
	notifyGen    uint64
}

// Option configures a UserListController.
type Option func(*UserListController)

// WithNotifyDelay overrides the delay between clearing the current toast
// and showing the next one.
func WithNotifyDelay(d time.Duration) Option {
	return func(c *UserListController) {
		c.delay = d
	}
}

// WithChannel attaches an external notification channel; every toast the
// controller shows is also published there.
func WithChannel(ch notifier.Channel) Option {
	return func(c *UserListController) {
		c.channel = ch
	}
}

// New creates a controller and performs its one automatic refresh. The
// controller is returned even when that refresh fails so the screen can
// render empty; the error is the directory's, unwrapped and not retried.
func New(ctx context.Context, dir directory.UserDirectory, log *zap.Logger, opts ...Option) (*UserListController, error) {
	c := &UserListController{
		dir:   dir,
		log:   log,
		delay: DefaultNotifyDelay,
	}
	for _, opt := range opts {
		opt(c)
	}

	err := c.Refresh(ctx)
	return c, err
}

// Users returns a snapshot of the current user list.
func (c *UserListController) Users() []user.User {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]user.User, len(c.users))
	copy(snapshot, c.users)
	return snapshot
}

// Notification returns a copy of the active toast, or nil when none is
// displayed.
func (c *UserListController) Notification() *notification.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.notification == nil {
		return nil
	}
	n := *c.notification
	return &n
}

// Refresh replaces the user list wholesale with the backend's current
// state. Errors propagate to the caller untouched; the previous list is
// kept on failure.
func (c *UserListController) Refresh(ctx context.Context) error {
	users, err := c.dir.ListUsers(ctx)
	if err != nil {
		c.log.Error("failed to refresh user list", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.users = users
	c.mu.Unlock()

	c.log.Debug("user list refreshed", zap.Int("count", len(users)))
	return nil
}

// Create adds a user, shows a success toast naming the created record, and
// re-fetches the list. The toast is queued before the refresh completes;
// if the refresh then fails, the toast stands and the refresh error is
// returned with the list left stale.
func (c *UserListController) Create(ctx context.Context, u user.User) error {
	created, err := c.dir.CreateUser(ctx, u)
	if err != nil {
		return err
	}

	c.Notify(fmt.Sprintf("User %s created", created.Name), notification.KindSuccess)
	return c.Refresh(ctx)
}

// Edit updates a user, shows a success toast naming the updated record,
// and re-fetches the list.
func (c *UserListController) Edit(ctx context.Context, u user.User) error {
	updated, err := c.dir.UpdateUser(ctx, u)
	if err != nil {
		return err
	}

	c.Notify(fmt.Sprintf("User %s updated", updated.Name), notification.KindSuccess)
	return c.Refresh(ctx)
}

// Delete removes a user by id. The toast names the deleted record, not the
// input id, which is why the directory returns the removed record.
func (c *UserListController) Delete(ctx context.Context, id string) error {
	deleted, err := c.dir.DeleteUser(ctx, id)
	if err != nil {
		return err
	}

	c.Notify(fmt.Sprintf("User %s deleted", deleted.Name), notification.KindSuccess)
	return c.Refresh(ctx)
}

// Notify clears the currently displayed toast immediately, then sets the
// new one once the configured delay elapses. A pending toast is canceled
// first, so when Notify is called twice inside the delay window the later
// call always wins.
func (c *UserListController) Notify(message string, kind notification.Kind) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notification = nil
	if c.pending != nil {
		c.pending.Stop()
	}

	// The generation guard covers the window where a stopped timer's
	// callback had already started and is waiting on the mutex.
	c.notifyGen++
	gen := c.notifyGen

	c.pending = time.AfterFunc(c.delay, func() {
		n := notification.New(message, kind)

		c.mu.Lock()
		if c.notifyGen != gen {
			c.mu.Unlock()
			return
		}
		c.notification = n
		c.mu.Unlock()

		if c.channel != nil {
			if err := c.channel.Publish(context.Background(), *n); err != nil {
				c.log.Warn("failed to publish notification", zap.Error(err))
			}
		}
	})
}

// Close cancels any pending toast timer.
func (c *UserListController) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
}
