package tasks_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/activity"
	"taskhub/internal/domain/notification"
	"taskhub/internal/domain/task"
	"taskhub/internal/repo/memory"
	"taskhub/internal/tasks"
)

type recordedActivity struct {
	entries []activity.Log
}

func (r *recordedActivity) Record(_ context.Context, entry activity.Log) error {
	r.entries = append(r.entries, entry)
	return nil
}

type recordedNotifier struct {
	sent []notification.Notification
}

func (r *recordedNotifier) Notify(_ context.Context, n notification.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

func newService() (*tasks.Service, *memory.TasksRepo, *recordedActivity, *recordedNotifier) {
	repo := memory.NewTasksRepo()
	rec := &recordedActivity{}
	notif := &recordedNotifier{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	return tasks.NewService(repo, rec, notif, log), repo, rec, notif
}

func create(t *testing.T, svc *tasks.Service, in tasks.CreateInput) task.Task {
	t.Helper()

	if in.ProjectID == "" {
		in.ProjectID = "project-1"
	}
	if in.Title == "" {
		in.Title = "Ship the thing"
	}

	created, err := svc.Create(context.Background(), "actor-1", in)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return created
}

func TestCreateDefaults(t *testing.T) {
	svc, _, rec, _ := newService()

	created := create(t, svc, tasks.CreateInput{})

	if created.Status != task.StatusTodo {
		t.Fatalf("status = %s, want todo", created.Status)
	}
	if created.Priority != task.PriorityMedium {
		t.Fatalf("priority = %s, want medium", created.Priority)
	}
	if created.ActualHours != nil {
		t.Fatalf("new task has logged hours")
	}
	if len(rec.entries) != 1 || rec.entries[0].Action != activity.ActionCreated {
		t.Fatalf("expected one created activity entry, got %+v", rec.entries)
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	tests := []struct {
		name string
		in   tasks.CreateInput
	}{
		{"missing project", tasks.CreateInput{Title: "x"}},
		{"missing title", tasks.CreateInput{ProjectID: "p"}},
		{"bad priority", tasks.CreateInput{ProjectID: "p", Title: "x", Priority: "urgent"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, "actor-1", tt.in)
			if apperr.KindOf(err) != apperr.KindValidation {
				t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
			}
		})
	}
}

func TestCreateWithAssigneeNotifies(t *testing.T) {
	svc, _, _, notif := newService()
	assignee := "user-7"

	created := create(t, svc, tasks.CreateInput{AssigneeID: &assignee})

	if len(notif.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(notif.sent))
	}
	if notif.sent[0].UserID != assignee {
		t.Fatalf("notification went to %s, want %s", notif.sent[0].UserID, assignee)
	}
	if notif.sent[0].EntityID == nil || *notif.sent[0].EntityID != created.ID {
		t.Fatalf("notification not linked to task")
	}
}

func TestUpdateStatusLegalPath(t *testing.T) {
	svc, _, rec, _ := newService()
	ctx := context.Background()

	created := create(t, svc, tasks.CreateInput{})

	next := task.StatusInProgress
	updated, err := svc.Update(ctx, "actor-1", created.ID, tasks.UpdateInput{Status: &next})
	if err != nil {
		t.Fatalf("todo -> inprogress failed: %v", err)
	}
	if updated.Status != task.StatusInProgress {
		t.Fatalf("status = %s", updated.Status)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) && !updated.UpdatedAt.Equal(created.UpdatedAt) {
		t.Fatalf("UpdatedAt went backwards")
	}

	last := rec.entries[len(rec.entries)-1]
	if last.Action != activity.ActionStatusChanged {
		t.Fatalf("last activity = %s, want status_changed", last.Action)
	}
}

// The service refuses the transition and the stored task is untouched.
func TestUpdateStatusIllegalTransition(t *testing.T) {
	svc, repo, _, _ := newService()
	ctx := context.Background()

	created := create(t, svc, tasks.CreateInput{})

	done := task.StatusDone
	_, err := svc.Update(ctx, "actor-1", created.ID, tasks.UpdateInput{Status: &done})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("todo -> done kind = %v, want validation", apperr.KindOf(err))
	}

	stored, err := repo.FindByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if stored.Status != task.StatusTodo {
		t.Fatalf("stored status mutated to %s on rejected transition", stored.Status)
	}
}

func TestUpdateFieldPatches(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	created := create(t, svc, tasks.CreateInput{})

	title := "Ship it properly"
	desc := "with tests"
	prio := task.PriorityHigh
	updated, err := svc.Update(ctx, "actor-1", created.ID, tasks.UpdateInput{
		Title:       &title,
		Description: &desc,
		Priority:    &prio,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != title || updated.Description == nil || *updated.Description != desc {
		t.Fatalf("patches not applied: %+v", updated)
	}
	if updated.Priority != task.PriorityHigh {
		t.Fatalf("priority = %s", updated.Priority)
	}
	if updated.Status != task.StatusTodo {
		t.Fatalf("status changed by a field-only update")
	}
}

func TestUpdateUnknownTask(t *testing.T) {
	svc, _, _, _ := newService()

	title := "x"
	_, err := svc.Update(context.Background(), "actor-1", "missing", tasks.UpdateInput{Title: &title})
	if apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("kind = %v, want not_found", apperr.KindOf(err))
	}
}

func TestAssignAndClear(t *testing.T) {
	svc, _, rec, notif := newService()
	ctx := context.Background()

	created := create(t, svc, tasks.CreateInput{})
	assignee := "user-7"

	assigned, err := svc.Assign(ctx, "actor-1", created.ID, &assignee)
	if err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	if assigned.AssigneeID == nil || *assigned.AssigneeID != assignee {
		t.Fatalf("assignee not set")
	}
	if len(notif.sent) != 1 {
		t.Fatalf("expected assignment notification")
	}

	cleared, err := svc.Assign(ctx, "actor-1", created.ID, nil)
	if err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	if cleared.AssigneeID != nil {
		t.Fatalf("assignee not cleared")
	}
	if len(notif.sent) != 1 {
		t.Fatalf("clearing the assignee should not notify")
	}

	last := rec.entries[len(rec.entries)-1]
	if last.Action != activity.ActionAssigned {
		t.Fatalf("last activity = %s, want assigned", last.Action)
	}
}

func TestLogHoursAccumulates(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()

	created := create(t, svc, tasks.CreateInput{})

	first, err := svc.LogHours(ctx, "actor-1", created.ID, 2.5)
	if err != nil {
		t.Fatalf("LogHours failed: %v", err)
	}
	if first.ActualHours == nil || *first.ActualHours != 2.5 {
		t.Fatalf("after first log: %v, want 2.5", first.ActualHours)
	}

	second, err := svc.LogHours(ctx, "actor-1", created.ID, 1.0)
	if err != nil {
		t.Fatalf("second LogHours failed: %v", err)
	}
	if second.ActualHours == nil || *second.ActualHours != 3.5 {
		t.Fatalf("after second log: %v, want 3.5", second.ActualHours)
	}
}

func TestLogHoursRejectsNegativeDelta(t *testing.T) {
	svc, _, _, _ := newService()

	created := create(t, svc, tasks.CreateInput{})

	_, err := svc.LogHours(context.Background(), "actor-1", created.ID, -1)
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestDelete(t *testing.T) {
	svc, repo, rec, _ := newService()
	ctx := context.Background()

	created := create(t, svc, tasks.CreateInput{})

	if err := svc.Delete(ctx, "actor-1", created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := repo.FindByID(ctx, created.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("task still present after delete")
	}
	if err := svc.Delete(ctx, "actor-1", created.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Fatalf("double delete kind = %v", apperr.KindOf(err))
	}

	last := rec.entries[len(rec.entries)-1]
	if last.Action != activity.ActionDeleted {
		t.Fatalf("last activity = %s, want deleted", last.Action)
	}
}

func TestListByStatusValidatesStatus(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.ListByStatus(context.Background(), "archived")
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("kind = %v, want validation", apperr.KindOf(err))
	}
}

func TestListByProjectAndAssignee(t *testing.T) {
	svc, _, _, _ := newService()
	ctx := context.Background()
	assignee := "user-7"

	create(t, svc, tasks.CreateInput{ProjectID: "p1", Title: "a", AssigneeID: &assignee})
	create(t, svc, tasks.CreateInput{ProjectID: "p1", Title: "b"})
	create(t, svc, tasks.CreateInput{ProjectID: "p2", Title: "c"})

	byProject, err := svc.ListByProject(ctx, "p1")
	if err != nil || len(byProject) != 2 {
		t.Fatalf("ListByProject = %d tasks, err=%v, want 2", len(byProject), err)
	}

	byAssignee, err := svc.ListByAssignee(ctx, assignee)
	if err != nil || len(byAssignee) != 1 {
		t.Fatalf("ListByAssignee = %d tasks, err=%v, want 1", len(byAssignee), err)
	}
}
