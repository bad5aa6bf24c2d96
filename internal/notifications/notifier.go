// Package notifications provides real-time notification delivery over Redis
// pub/sub and websockets.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"

	"marketplus/internal/models"
	"marketplus/internal/observability"

	"github.com/redis/go-redis/v9"
)

// Channel is the Redis pub/sub channel new-comment notifications are
// broadcast on. Every connected client receives every event.
const Channel = "new-notification-channel"

// Event is the payload published for a new comment on someone's post.
type Event struct {
	Message string          `json:"message"`
	Post    *models.Post    `json:"post"`
	Comment *models.Comment `json:"comment"`
	User    *models.User    `json:"user"`
}

// Notifier publishes notification events into Redis.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// PublishNewNotification broadcasts the event on the notification channel.
// A nil Redis client is a no-op so the API keeps working without Redis.
func (n *Notifier) PublishNewNotification(ctx context.Context, event *Event) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		observability.NotificationsPublished.WithLabelValues("marshal_error").Inc()
		return fmt.Errorf("marshal notification event: %w", err)
	}
	if err := n.rdb.Publish(ctx, Channel, payload).Err(); err != nil {
		observability.NotificationsPublished.WithLabelValues("publish_error").Inc()
		return fmt.Errorf("publish notification: %w", err)
	}
	observability.NotificationsPublished.WithLabelValues("ok").Inc()
	return nil
}

// StartSubscriber subscribes to the notification channel and calls onMessage
// for each incoming payload until ctx is done.
func (n *Notifier) StartSubscriber(ctx context.Context, onMessage func(payload string)) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.Subscribe(ctx, Channel)
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in notification subscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Payload)
				}()
			}
		}
	}()

	return nil
}
