package activity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated       Action = "created"
	ActionUpdated       Action = "updated"
	ActionDeleted       Action = "deleted"
	ActionStatusChanged Action = "status_changed"
	ActionAssigned      Action = "assigned"
)

type EntityType string

const (
	EntityProject   EntityType = "project"
	EntityTask      EntityType = "task"
	EntityTeam      EntityType = "team"
	EntityMilestone EntityType = "milestone"
)

// Log is one audit-trail row: who did what to which entity.
type Log struct {
	ID         string          `json:"id"`
	UserID     string          `json:"userId"`
	Action     Action          `json:"action"`
	EntityType EntityType      `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func New(userID string, action Action, entityType EntityType, entityID string, metadata json.RawMessage) Log {
	return Log{
		ID:         uuid.NewString(),
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Metadata:   metadata,
		CreatedAt:  time.Now().UTC(),
	}
}
