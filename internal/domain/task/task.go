package task

import (
	"time"

	"github.com/google/uuid"

	"taskhub/internal/apperr"
)

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
	StatusBlocked    Status = "blocked"
)

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone, StatusBlocked:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// transitions is the full legal-transition table. Anything absent,
// including a same-status no-op, is illegal.
var transitions = map[Status][]Status{
	StatusTodo:       {StatusInProgress},
	StatusInProgress: {StatusReview, StatusBlocked, StatusTodo},
	StatusReview:     {StatusDone, StatusInProgress},
	StatusBlocked:    {StatusInProgress, StatusTodo},
	StatusDone:       {StatusInProgress}, // reopen
}

type Task struct {
	ID             string     `json:"id"`
	ProjectID      string     `json:"projectId"`
	MilestoneID    *string    `json:"milestoneId,omitempty"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	AssigneeID     *string    `json:"assigneeId,omitempty"`
	DueDate        *time.Time `json:"dueDate,omitempty"`
	EstimatedHours *float64   `json:"estimatedHours,omitempty"`
	ActualHours    *float64   `json:"actualHours,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// New starts every task in todo with no logged hours. Priority defaults
// to medium when empty.
func New(projectID, title string, description *string, priority Priority, assigneeID *string, dueDate *time.Time, estimatedHours *float64) Task {
	if priority == "" {
		priority = PriorityMedium
	}
	now := time.Now().UTC()

	return Task{
		ID:             uuid.NewString(),
		ProjectID:      projectID,
		Title:          title,
		Description:    description,
		Status:         StatusTodo,
		Priority:       priority,
		AssigneeID:     assigneeID,
		DueDate:        dueDate,
		EstimatedHours: estimatedHours,
		ActualHours:    nil,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func (t *Task) IsDone() bool {
	return t.Status == StatusDone
}

func (t *Task) IsBlocked() bool {
	return t.Status == StatusBlocked
}

// CanTransitionTo is a pure predicate over the legal-transition table.
func (t *Task) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[t.Status] {
		if next == allowed {
			return true
		}
	}
	return false
}

// UpdateStatus applies a status change and refreshes UpdatedAt. The
// predicate is checked here too, so an illegal transition cannot slip
// through a caller that forgot to ask first.
func (t *Task) UpdateStatus(next Status) error {
	if !t.CanTransitionTo(next) {
		return apperr.Validation("cannot transition task from " + string(t.Status) + " to " + string(next))
	}

	t.Status = next
	t.UpdatedAt = time.Now().UTC()

	return nil
}

// AssignTo sets or clears the assignee. Always legal, in any status.
func (t *Task) AssignTo(userID *string) {
	t.AssigneeID = userID
	t.UpdatedAt = time.Now().UTC()
}

// LogHours adds delta to the accumulated actual hours, starting from
// zero when none were logged yet. Callers pass non-negative deltas;
// hours are never decremented through this path.
func (t *Task) LogHours(delta float64) {
	total := delta
	if t.ActualHours != nil {
		total += *t.ActualHours
	}

	t.ActualHours = &total
	t.UpdatedAt = time.Now().UTC()
}
