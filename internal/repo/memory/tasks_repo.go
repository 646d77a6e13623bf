package memory

import (
	"context"
	"sync"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/task"
)

type TasksRepo struct {
	mu    sync.RWMutex
	items map[string]task.Task
}

func NewTasksRepo() *TasksRepo {
	return &TasksRepo{
		items: make(map[string]task.Task),
	}
}

func (r *TasksRepo) FindByID(_ context.Context, id string) (task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.items[id]
	if !ok {
		return task.Task{}, apperr.NotFound("task not found")
	}
	return t, nil
}

func (r *TasksRepo) FindAll(_ context.Context) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]task.Task, 0, len(r.items))
	for _, t := range r.items {
		out = append(out, t)
	}
	return out, nil
}

func (r *TasksRepo) FindByProject(_ context.Context, projectID string) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []task.Task
	for _, t := range r.items {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TasksRepo) FindByAssignee(_ context.Context, userID string) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []task.Task
	for _, t := range r.items {
		if t.AssigneeID != nil && *t.AssigneeID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TasksRepo) FindByStatus(_ context.Context, status task.Status) ([]task.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []task.Task
	for _, t := range r.items {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *TasksRepo) Create(_ context.Context, t task.Task) (task.Task, error) {
	r.mu.Lock()
	r.items[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *TasksRepo) Update(_ context.Context, t task.Task) (task.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[t.ID]; !ok {
		return task.Task{}, apperr.NotFound("task not found")
	}
	r.items[t.ID] = t

	return t, nil
}

func (r *TasksRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return apperr.NotFound("task not found")
	}
	delete(r.items, id)

	return nil
}
