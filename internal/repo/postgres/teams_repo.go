package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub/internal/apperr"
	"taskhub/internal/domain/team"
)

type TeamsRepo struct {
	pool *pgxpool.Pool
}

func NewTeamsRepo(pool *pgxpool.Pool) *TeamsRepo {
	return &TeamsRepo{pool: pool}
}

const teamColumns = `id, name, description, lead_id, created_at, updated_at`

func scanTeam(row pgx.Row) (team.Team, error) {
	var t team.Team

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.LeadID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, apperr.NotFound("team not found")
		}
		return team.Team{}, err
	}

	return t, nil
}

func (r *TeamsRepo) FindByID(ctx context.Context, id string) (team.Team, error) {
	return scanTeam(r.pool.QueryRow(ctx,
		`SELECT `+teamColumns+` FROM teams WHERE id = $1`, id))
}

func (r *TeamsRepo) FindAll(ctx context.Context) ([]team.Team, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+teamColumns+` FROM teams ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []team.Team
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *TeamsRepo) Create(ctx context.Context, t team.Team) (team.Team, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO teams (id, name, description, lead_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Description, t.LeadID, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return team.Team{}, err
	}

	return t, nil
}

func (r *TeamsRepo) Update(ctx context.Context, t team.Team) (team.Team, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE teams
		 SET name = $2, description = $3, lead_id = $4, updated_at = $5
		 WHERE id = $1`,
		t.ID, t.Name, t.Description, t.LeadID, t.UpdatedAt,
	)
	if err != nil {
		return team.Team{}, err
	}
	if tag.RowsAffected() == 0 {
		return team.Team{}, apperr.NotFound("team not found")
	}

	return t, nil
}

func (r *TeamsRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM teams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("team not found")
	}

	return nil
}

func (r *TeamsRepo) FindMembers(ctx context.Context, teamID string) ([]team.Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, team_id, user_id, role, joined_at
		 FROM team_members WHERE team_id = $1 ORDER BY joined_at ASC`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []team.Member
	for rows.Next() {
		var m team.Member
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.JoinedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *TeamsRepo) AddMember(ctx context.Context, m team.Member) (team.Member, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO team_members (id, team_id, user_id, role, joined_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.TeamID, m.UserID, m.Role, m.JoinedAt,
	)
	if err != nil {
		return team.Member{}, err
	}

	return m, nil
}
