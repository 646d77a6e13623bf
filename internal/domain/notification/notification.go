package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	EntityID  *string   `json:"entityId,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func New(userID, title, message string, entityID *string) Notification {
	return Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Message:   message,
		EntityID:  entityID,
		Read:      false,
		CreatedAt: time.Now().UTC(),
	}
}

func (n *Notification) MarkRead() {
	n.Read = true
}
