package notify

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"taskhub/internal/domain/notification"
	"taskhub/internal/observability"
)

// NotificationStore is the slice of the notifications repository the
// consumer needs to persist drained entries.
type NotificationStore interface {
	Create(ctx context.Context, n notification.Notification) error
}

// Consumer drains the notification queue and writes each entry to the
// store. Malformed payloads are logged and dropped so one bad entry
// cannot wedge the loop.
type Consumer struct {
	rdb   *redis.Client
	store NotificationStore
	log   *slog.Logger
	prom  *observability.Prom
}

func NewConsumer(rdb *redis.Client, store NotificationStore, log *slog.Logger, prom *observability.Prom) *Consumer {
	return &Consumer{rdb: rdb, store: store, log: log, prom: prom}
}

func (c *Consumer) count(result string) {
	if c.prom != nil {
		c.prom.NotificationsConsumed.WithLabelValues(result).Inc()
	}
}

// Run blocks until ctx is cancelled. Transient redis or store errors
// back off exponentially instead of hot-looping.
func (c *Consumer) Run(ctx context.Context) error {
	attempt := 0

	for {
		select {
		case <-ctx.Done():
			c.log.Info("notification consumer stopping")
			return nil
		default:
		}

		res, err := c.rdb.BRPop(ctx, 5*time.Second, QueueKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				attempt = 0
				continue
			}
			if ctx.Err() != nil {
				return nil
			}

			delay := backoff(attempt)
			attempt++
			c.log.Warn("queue pop failed", "error", err, "retry_in", delay)

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}

		// BRPop returns [key, value].
		if len(res) != 2 {
			continue
		}

		popped := time.Now()

		n, err := Decode([]byte(res[1]))
		if err != nil {
			c.log.Warn("dropping malformed notification payload", "error", err)
			c.count("dropped")
			attempt = 0
			continue
		}

		if err := c.store.Create(ctx, n); err != nil {
			c.count("requeued")
			delay := backoff(attempt)
			attempt++
			c.log.Warn("persist notification failed",
				"notification_id", n.ID, "error", err, "retry_in", delay)

			// Push back so the entry is retried rather than lost.
			if rerr := c.rdb.RPush(ctx, QueueKey, []byte(res[1])).Err(); rerr != nil {
				c.log.Error("requeue failed, notification lost",
					"notification_id", n.ID, "error", rerr)
			}

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
			continue
		}

		attempt = 0
		c.count("stored")
		if c.prom != nil {
			c.prom.ConsumeDuration.Observe(time.Since(popped).Seconds())
		}
		c.log.Info("notification stored", "notification_id", n.ID, "user_id", n.UserID)
	}
}

func backoff(attempt int) time.Duration {
	base := 2 * time.Second
	capDelay := 5 * time.Minute

	delay := time.Duration(float64(base) * math.Pow(2, float64(attempt)))
	if delay > capDelay {
		delay = capDelay
	}

	// small jitter (0–250ms) to avoid thundering herd
	delay += time.Duration(rand.Intn(250)) * time.Millisecond
	return delay
}
