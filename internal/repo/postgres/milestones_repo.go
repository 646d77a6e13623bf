package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/milestone"
)

type MilestonesRepo struct {
	pool *pgxpool.Pool
}

func NewMilestonesRepo(pool *pgxpool.Pool) *MilestonesRepo {
	return &MilestonesRepo{pool: pool}
}

const milestoneColumns = `id, project_id, name, description, due_date, completed, created_at, updated_at`

func scanMilestone(row pgx.Row) (milestone.Milestone, error) {
	var m milestone.Milestone

	err := row.Scan(
		&m.ID,
		&m.ProjectID,
		&m.Name,
		&m.Description,
		&m.DueDate,
		&m.Completed,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return milestone.Milestone{}, apperr.NotFound("milestone not found")
		}
		return milestone.Milestone{}, err
	}

	return m, nil
}

func (r *MilestonesRepo) FindByID(ctx context.Context, id string) (milestone.Milestone, error) {
	return scanMilestone(r.pool.QueryRow(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE id = $1`, id))
}

func (r *MilestonesRepo) FindByProject(ctx context.Context, projectID string) ([]milestone.Milestone, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+milestoneColumns+` FROM milestones WHERE project_id = $1 ORDER BY due_date ASC NULLS LAST`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []milestone.Milestone
	for rows.Next() {
		m, err := scanMilestone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *MilestonesRepo) Create(ctx context.Context, m milestone.Milestone) (milestone.Milestone, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO milestones (id, project_id, name, description, due_date, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.ProjectID, m.Name, m.Description, m.DueDate, m.Completed, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return milestone.Milestone{}, err
	}

	return m, nil
}

func (r *MilestonesRepo) Update(ctx context.Context, m milestone.Milestone) (milestone.Milestone, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE milestones
		 SET name = $2, description = $3, due_date = $4, completed = $5, updated_at = $6
		 WHERE id = $1`,
		m.ID, m.Name, m.Description, m.DueDate, m.Completed, m.UpdatedAt,
	)
	if err != nil {
		return milestone.Milestone{}, err
	}
	if tag.RowsAffected() == 0 {
		return milestone.Milestone{}, apperr.NotFound("milestone not found")
	}

	return m, nil
}

func (r *MilestonesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM milestones WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("milestone not found")
	}

	return nil
}
