package notifier

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-admin-service/internal/domain/notification"
)

func setupTestRedis(t *testing.T) *redis.Client {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestRedis_PublishSubscribeRoundTrip(t *testing.T) {
	client := setupTestRedis(t)
	r := NewRedis(client, "notifications", zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := r.Subscribe(ctx)
	require.NoError(t, err)

	n := notification.Notification{Message: "User Ann created", Kind: notification.KindSuccess}
	require.NoError(t, r.Publish(ctx, n))

	select {
	case got := <-ch:
		assert.Equal(t, n, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}

func TestRedis_SubscribeStopsOnContextCancel(t *testing.T) {
	client := setupTestRedis(t)
	r := NewRedis(client, "notifications", zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())

	ch, err := r.Subscribe(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok, "channel should be closed after cancel")
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after context cancel")
	}
}

func TestRedis_MalformedPayloadIsDropped(t *testing.T) {
	client := setupTestRedis(t)
	r := NewRedis(client, "notifications", zaptest.NewLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := r.Subscribe(ctx)
	require.NoError(t, err)

	require.NoError(t, client.Publish(ctx, "notifications", "not json").Err())

	n := notification.Notification{Message: "User Bo updated", Kind: notification.KindSuccess}
	require.NoError(t, r.Publish(ctx, n))

	// The malformed message is skipped; the valid one still arrives
	select {
	case got := <-ch:
		assert.Equal(t, n, got)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for notification")
	}
}
