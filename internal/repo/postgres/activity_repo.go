package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taskhub/internal/domain/activity"
)

type ActivityRepo struct {
	pool *pgxpool.Pool
}

func NewActivityRepo(pool *pgxpool.Pool) *ActivityRepo {
	return &ActivityRepo{pool: pool}
}

func (r *ActivityRepo) Record(ctx context.Context, entry activity.Log) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO activity_logs (id, user_id, action, entity_type, entity_id, metadata, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		entry.ID, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, entry.Metadata, entry.CreatedAt,
	)

	return err
}

func (r *ActivityRepo) FindRecent(ctx context.Context, limit int) ([]activity.Log, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, user_id, action, entity_type, entity_id, metadata, created_at
		 FROM activity_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []activity.Log
	for rows.Next() {
		var entry activity.Log
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Action, &entry.EntityType,
			&entry.EntityID, &entry.Metadata, &entry.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, entry)
	}

	return out, rows.Err()
}
