package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/task"
	"taskhub/internal/observability"
)

type TasksRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewTasksRepo(pool *pgxpool.Pool, prom *observability.Prom) *TasksRepo {
	return &TasksRepo{pool: pool, prom: prom}
}

func (r *TasksRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

const taskColumns = `id, project_id, milestone_id, title, description, status, priority,
	assignee_id, due_date, estimated_hours, actual_hours, created_at, updated_at`

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task

	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.MilestoneID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.AssigneeID,
		&t.DueDate,
		&t.EstimatedHours,
		&t.ActualHours,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, apperr.NotFound("task not found")
		}
		return task.Task{}, err
	}

	return t, nil
}

func (r *TasksRepo) queryTasks(ctx context.Context, query string, args ...interface{}) ([]task.Task, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *TasksRepo) FindByID(ctx context.Context, id string) (t task.Task, err error) {
	err = r.observe("tasks.find_by_id", func() error {
		t, err = scanTask(r.pool.QueryRow(ctx,
			`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
		return err
	})
	return t, err
}

func (r *TasksRepo) FindAll(ctx context.Context) ([]task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at DESC`)
}

func (r *TasksRepo) FindByProject(ctx context.Context, projectID string) ([]task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY created_at DESC`, projectID)
}

func (r *TasksRepo) FindByAssignee(ctx context.Context, userID string) ([]task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE assignee_id = $1 ORDER BY created_at DESC`, userID)
}

func (r *TasksRepo) FindByStatus(ctx context.Context, status task.Status) ([]task.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE status = $1 ORDER BY created_at DESC`, status)
}

func (r *TasksRepo) Create(ctx context.Context, t task.Task) (task.Task, error) {
	err := r.observe("tasks.create", func() error {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO tasks (id, project_id, milestone_id, title, description, status, priority,
				assignee_id, due_date, estimated_hours, actual_hours, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
			t.ID, t.ProjectID, t.MilestoneID, t.Title, t.Description, t.Status, t.Priority,
			t.AssigneeID, t.DueDate, t.EstimatedHours, t.ActualHours, t.CreatedAt, t.UpdatedAt,
		)
		return err
	})
	if err != nil {
		return task.Task{}, err
	}

	return t, nil
}

func (r *TasksRepo) Update(ctx context.Context, t task.Task) (task.Task, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks
		 SET milestone_id = $2,
		     title = $3,
		     description = $4,
		     status = $5,
		     priority = $6,
		     assignee_id = $7,
		     due_date = $8,
		     estimated_hours = $9,
		     actual_hours = $10,
		     updated_at = $11
		 WHERE id = $1`,
		t.ID, t.MilestoneID, t.Title, t.Description, t.Status, t.Priority,
		t.AssigneeID, t.DueDate, t.EstimatedHours, t.ActualHours, t.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, err
	}
	if tag.RowsAffected() == 0 {
		return task.Task{}, apperr.NotFound("task not found")
	}

	return t, nil
}

func (r *TasksRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("task not found")
	}

	return nil
}
