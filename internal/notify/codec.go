package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"taskhub/internal/domain/notification"
)

var (
	ErrInvalidPayload = errors.New("invalid notification payload")
)

// payload is the wire shape pushed onto the redis list. Kept separate
// from the entity so queue compatibility does not pin the domain type.
type payload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func Encode(n notification.Notification) ([]byte, error) {
	if n.ID == "" || n.UserID == "" {
		return nil, ErrInvalidPayload
	}

	b, err := json.Marshal(payload{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		EntityID:  n.EntityID,
		CreatedAt: n.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	return b, nil
}

func Decode(b []byte) (notification.Notification, error) {
	if len(b) == 0 {
		return notification.Notification{}, ErrInvalidPayload
	}

	var p payload
	if err := json.Unmarshal(b, &p); err != nil {
		return notification.Notification{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.ID == "" || p.UserID == "" {
		return notification.Notification{}, ErrInvalidPayload
	}

	return notification.Notification{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Message:   p.Message,
		EntityID:  p.EntityID,
		Read:      false,
		CreatedAt: p.CreatedAt,
	}, nil
}
