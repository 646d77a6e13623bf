package notify

import (
	"context"

	"github.com/redis/go-redis/v9"

	"taskhub/internal/domain/notification"
	"taskhub/internal/observability"
)

// QueueKey is the redis list the API pushes to and the worker drains.
const QueueKey = "taskhub:notifications"

// QueueNotifier enqueues notifications for the worker to persist, so a
// slow or unavailable store never sits on the request path.
type QueueNotifier struct {
	rdb  *redis.Client
	prom *observability.Prom
}

func NewQueueNotifier(rdb *redis.Client, prom *observability.Prom) *QueueNotifier {
	return &QueueNotifier{rdb: rdb, prom: prom}
}

func (q *QueueNotifier) Notify(ctx context.Context, n notification.Notification) error {
	b, err := Encode(n)
	if err != nil {
		return err
	}

	err = q.rdb.LPush(ctx, QueueKey, b).Err()
	if q.prom != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		q.prom.NotificationsEnqueued.WithLabelValues(result).Inc()
	}
	return err
}
