package notifier

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"user-admin-service/internal/domain/notification"
)

// Redis publishes notifications on a Redis pub/sub channel so other
// console replicas observe them too.
type Redis struct {
	client  *redis.Client
	channel string
	log     *zap.Logger
}

// redisEnvelope is the wire form of a notification on the pub/sub channel.
type redisEnvelope struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// NewRedis creates a Redis-backed notification channel publishing on the
// named pub/sub channel.
func NewRedis(client *redis.Client, channel string, log *zap.Logger) *Redis {
	return &Redis{client: client, channel: channel, log: log}
}

// Publish sends the notification to the pub/sub channel.
func (r *Redis) Publish(ctx context.Context, n notification.Notification) error {
	data, err := json.Marshal(redisEnvelope{Message: n.Message, Kind: string(n.Kind)})
	if err != nil {
		r.log.Error("failed to marshal notification", zap.Error(err))
		return err
	}

	if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
		r.log.Error("failed to publish notification",
			zap.String("channel", r.channel),
			zap.Error(err),
		)
		return err
	}

	r.log.Debug("published notification",
		zap.String("channel", r.channel),
		zap.String("kind", string(n.Kind)),
	)
	return nil
}

// Subscribe listens for notifications published by any replica and
// forwards them until ctx is canceled.
func (r *Redis) Subscribe(ctx context.Context) (<-chan notification.Notification, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	out := make(chan notification.Notification)
	go func() {
		defer close(out)
		defer func() { _ = sub.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var env redisEnvelope
				if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
					r.log.Warn("dropping malformed notification payload", zap.Error(err))
					continue
				}
				select {
				case out <- notification.Notification{Message: env.Message, Kind: notification.Kind(env.Kind)}:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

// Fanout returns a Channel that publishes to every given channel in order,
// returning the first error encountered.
func Fanout(channels ...Channel) Channel {
	return ChannelFunc(func(ctx context.Context, n notification.Notification) error {
		for _, ch := range channels {
			if ch == nil {
				continue
			}
			if err := ch.Publish(ctx, n); err != nil {
				return err
			}
		}
		return nil
	})
}
