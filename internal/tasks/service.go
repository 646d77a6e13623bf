package tasks

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/activity"
	"taskhub/internal/domain/notification"
	"taskhub/internal/domain/task"
)

// TaskRepository is the task store port.
type TaskRepository interface {
	FindByID(ctx context.Context, id string) (task.Task, error)
	FindAll(ctx context.Context) ([]task.Task, error)
	FindByProject(ctx context.Context, projectID string) ([]task.Task, error)
	FindByAssignee(ctx context.Context, userID string) ([]task.Task, error)
	FindByStatus(ctx context.Context, status task.Status) ([]task.Task, error)
	Create(ctx context.Context, t task.Task) (task.Task, error)
	Update(ctx context.Context, t task.Task) (task.Task, error)
	Delete(ctx context.Context, id string) error
}

// ActivityRecorder persists audit-trail entries.
type ActivityRecorder interface {
	Record(ctx context.Context, entry activity.Log) error
}

// Notifier delivers user notifications; the redis-backed queue implements
// it in production, a log notifier elsewhere.
type Notifier interface {
	Notify(ctx context.Context, n notification.Notification) error
}

type Service struct {
	tasks    TaskRepository
	activity ActivityRecorder
	notifier Notifier
	log      *slog.Logger
}

func NewService(tasks TaskRepository, recorder ActivityRecorder, notifier Notifier, log *slog.Logger) *Service {
	return &Service{
		tasks:    tasks,
		activity: recorder,
		notifier: notifier,
		log:      log,
	}
}

type CreateInput struct {
	ProjectID      string
	MilestoneID    *string
	Title          string
	Description    *string
	Priority       task.Priority
	AssigneeID     *string
	DueDate        *time.Time
	EstimatedHours *float64
}

// UpdateInput carries optional field patches. Status changes run through
// the entity's transition table; assignment has its own operation because
// "clear the assignee" and "leave it alone" need to be different inputs.
type UpdateInput struct {
	Title          *string
	Description    *string
	Status         *task.Status
	Priority       *task.Priority
	MilestoneID    *string
	DueDate        *time.Time
	EstimatedHours *float64
}

func (s *Service) List(ctx context.Context) ([]task.Task, error) {
	out, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, apperr.Internal("could not list tasks", err)
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (task.Task, error) {
	return s.load(ctx, id)
}

func (s *Service) ListByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	out, err := s.tasks.FindByProject(ctx, projectID)
	if err != nil {
		return nil, apperr.Internal("could not list project tasks", err)
	}
	return out, nil
}

func (s *Service) ListByAssignee(ctx context.Context, userID string) ([]task.Task, error) {
	out, err := s.tasks.FindByAssignee(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("could not list assigned tasks", err)
	}
	return out, nil
}

func (s *Service) ListByStatus(ctx context.Context, status task.Status) ([]task.Task, error) {
	if !status.Valid() {
		return nil, apperr.Validation("invalid task status")
	}

	out, err := s.tasks.FindByStatus(ctx, status)
	if err != nil {
		return nil, apperr.Internal("could not list tasks by status", err)
	}
	return out, nil
}

func (s *Service) Create(ctx context.Context, actorID string, in CreateInput) (task.Task, error) {
	if in.ProjectID == "" {
		return task.Task{}, apperr.Validation("projectId is required")
	}
	if in.Title == "" {
		return task.Task{}, apperr.Validation("title is required")
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return task.Task{}, apperr.Validation("invalid priority")
	}

	t := task.New(in.ProjectID, in.Title, in.Description, in.Priority, in.AssigneeID, in.DueDate, in.EstimatedHours)
	t.MilestoneID = in.MilestoneID

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return task.Task{}, apperr.Internal("could not create task", err)
	}

	s.record(ctx, actorID, activity.ActionCreated, created.ID, nil)

	if created.AssigneeID != nil {
		s.notifyAssigned(ctx, created)
	}

	return created, nil
}

// Update re-reads current state, applies the patches and persists the
// result. A status patch goes through the entity mutator, so an illegal
// transition fails the whole update with a validation error.
func (s *Service) Update(ctx context.Context, actorID, id string, in UpdateInput) (task.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	statusChanged := false

	if in.Status != nil {
		if !in.Status.Valid() {
			return task.Task{}, apperr.Validation("invalid task status")
		}
		if err := t.UpdateStatus(*in.Status); err != nil {
			return task.Task{}, err
		}
		statusChanged = true
	}

	if in.Title != nil {
		t.Title = *in.Title
	}
	if in.Description != nil {
		t.Description = in.Description
	}
	if in.Priority != nil {
		if !in.Priority.Valid() {
			return task.Task{}, apperr.Validation("invalid priority")
		}
		t.Priority = *in.Priority
	}
	if in.MilestoneID != nil {
		t.MilestoneID = in.MilestoneID
	}
	if in.DueDate != nil {
		t.DueDate = in.DueDate
	}
	if in.EstimatedHours != nil {
		t.EstimatedHours = in.EstimatedHours
	}

	t.UpdatedAt = time.Now().UTC()

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		return task.Task{}, apperr.Internal("could not update task", err)
	}

	action := activity.ActionUpdated
	if statusChanged {
		action = activity.ActionStatusChanged
		meta, _ := json.Marshal(map[string]string{"status": string(updated.Status)})
		s.record(ctx, actorID, action, updated.ID, meta)
	} else {
		s.record(ctx, actorID, action, updated.ID, nil)
	}

	return updated, nil
}

// Assign sets or clears the assignee; nil clears. Legal in any status.
func (s *Service) Assign(ctx context.Context, actorID, id string, assigneeID *string) (task.Task, error) {
	t, err := s.load(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	t.AssignTo(assigneeID)

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		return task.Task{}, apperr.Internal("could not update task", err)
	}

	s.record(ctx, actorID, activity.ActionAssigned, updated.ID, nil)

	if updated.AssigneeID != nil {
		s.notifyAssigned(ctx, updated)
	}

	return updated, nil
}

// LogHours adds delta to the task's accumulated hours. Negative deltas
// are rejected here: the entity accumulates whatever it is told, the
// service boundary is where the caller convention is enforced.
func (s *Service) LogHours(ctx context.Context, actorID, id string, delta float64) (task.Task, error) {
	if delta < 0 {
		return task.Task{}, apperr.Validation("logged hours cannot be negative")
	}

	t, err := s.load(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	t.LogHours(delta)

	updated, err := s.tasks.Update(ctx, t)
	if err != nil {
		return task.Task{}, apperr.Internal("could not update task", err)
	}

	s.record(ctx, actorID, activity.ActionUpdated, updated.ID, nil)

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	if _, err := s.load(ctx, id); err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return apperr.Internal("could not delete task", err)
	}

	s.record(ctx, actorID, activity.ActionDeleted, id, nil)

	return nil
}

func (s *Service) load(ctx context.Context, id string) (task.Task, error) {
	t, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return task.Task{}, apperr.NotFound("task not found")
		}
		return task.Task{}, apperr.Internal("could not load task", err)
	}
	return t, nil
}

// Side effects are best effort: a broken audit trail or notification
// queue must not fail the mutation that already happened.

func (s *Service) record(ctx context.Context, actorID string, action activity.Action, taskID string, meta json.RawMessage) {
	if s.activity == nil {
		return
	}

	entry := activity.New(actorID, action, activity.EntityTask, taskID, meta)

	if err := s.activity.Record(ctx, entry); err != nil {
		s.log.Warn("activity record failed", "task_id", taskID, "action", string(action), "err", err)
	}
}

func (s *Service) notifyAssigned(ctx context.Context, t task.Task) {
	if s.notifier == nil || t.AssigneeID == nil {
		return
	}

	n := notification.New(*t.AssigneeID, "Task assigned", "You were assigned to \""+t.Title+"\"", &t.ID)

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.log.Warn("assignment notification failed", "task_id", t.ID, "err", err)
	}
}
