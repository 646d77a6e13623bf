package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/project"
)

type ProjectsRepo struct {
	pool *pgxpool.Pool
}

func NewProjectsRepo(pool *pgxpool.Pool) *ProjectsRepo {
	return &ProjectsRepo{pool: pool}
}

const projectColumns = `id, name, description, status, priority, start_date, end_date,
	budget, owner_id, created_at, updated_at`

func scanProject(row pgx.Row) (project.Project, error) {
	var p project.Project

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.Priority,
		&p.StartDate,
		&p.EndDate,
		&p.Budget,
		&p.OwnerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return project.Project{}, apperr.NotFound("project not found")
		}
		return project.Project{}, err
	}

	return p, nil
}

func (r *ProjectsRepo) FindByID(ctx context.Context, id string) (project.Project, error) {
	return scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
}

func (r *ProjectsRepo) FindAll(ctx context.Context) ([]project.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []project.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *ProjectsRepo) Create(ctx context.Context, p project.Project) (project.Project, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, name, description, status, priority, start_date, end_date,
			budget, owner_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.Name, p.Description, p.Status, p.Priority, p.StartDate, p.EndDate,
		p.Budget, p.OwnerID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}

	return p, nil
}

func (r *ProjectsRepo) Update(ctx context.Context, p project.Project) (project.Project, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects
		 SET name = $2, description = $3, status = $4, priority = $5,
		     start_date = $6, end_date = $7, budget = $8, updated_at = $9
		 WHERE id = $1`,
		p.ID, p.Name, p.Description, p.Status, p.Priority,
		p.StartDate, p.EndDate, p.Budget, p.UpdatedAt,
	)
	if err != nil {
		return project.Project{}, err
	}
	if tag.RowsAffected() == 0 {
		return project.Project{}, apperr.NotFound("project not found")
	}

	return p, nil
}

func (r *ProjectsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("project not found")
	}

	return nil
}
