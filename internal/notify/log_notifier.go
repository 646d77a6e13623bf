package notify

import (
	"context"
	"log/slog"

	"taskhub/internal/domain/notification"
)

// LogNotifier writes notifications to the structured log instead of a
// queue. Used when redis is not configured, and in tests.
type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (l *LogNotifier) Notify(_ context.Context, n notification.Notification) error {
	l.log.Info("notification",
		"notification_id", n.ID,
		"user_id", n.UserID,
		"title", n.Title,
		"message", n.Message,
	)
	return nil
}
