package project

import (
	"time"

	"github.com/google/uuid"

	"taskhub/internal/domain/task"
)

type Status string

const (
	StatusPlanning  Status = "planning"
	StatusActive    Status = "active"
	StatusOnHold    Status = "onhold"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPlanning, StatusActive, StatusOnHold, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Project struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description *string       `json:"description,omitempty"`
	Status      Status        `json:"status"`
	Priority    task.Priority `json:"priority"`
	StartDate   *time.Time    `json:"startDate,omitempty"`
	EndDate     *time.Time    `json:"endDate,omitempty"`
	Budget      *float64      `json:"budget,omitempty"`
	OwnerID     string        `json:"ownerId"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func New(name string, description *string, ownerID string, status Status, priority task.Priority, startDate, endDate *time.Time, budget *float64) Project {
	if status == "" {
		status = StatusPlanning
	}
	if priority == "" {
		priority = task.PriorityMedium
	}
	now := time.Now().UTC()

	return Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Status:      status,
		Priority:    priority,
		StartDate:   startDate,
		EndDate:     endDate,
		Budget:      budget,
		OwnerID:     ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

func (p *Project) IsCompleted() bool {
	return p.Status == StatusCompleted
}

// CanAddTasks: closed projects no longer grow.
func (p *Project) CanAddTasks() bool {
	return p.Status != StatusCompleted && p.Status != StatusCancelled
}

func (p *Project) UpdateStatus(status Status) {
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
}
