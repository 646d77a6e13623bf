package milestone

import (
	"time"

	"github.com/google/uuid"
)

type Milestone struct {
	ID          string     `json:"id"`
	ProjectID   string     `json:"projectId"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func New(projectID, name string, description *string, dueDate *time.Time) Milestone {
	now := time.Now().UTC()

	return Milestone{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Name:        name,
		Description: description,
		DueDate:     dueDate,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (m *Milestone) MarkCompleted() {
	m.Completed = true
	m.UpdatedAt = time.Now().UTC()
}

func (m *Milestone) IsOverdue() bool {
	if m.DueDate == nil {
		return false
	}
	return !m.Completed && time.Now().UTC().After(*m.DueDate)
}
