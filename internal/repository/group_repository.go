package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openclass/courseware-backend/internal/model"
)

// GroupRepository handles group (role) data access.
type GroupRepository struct {
	pool *pgxpool.Pool
}

// NewGroupRepository creates a new GroupRepository.
func NewGroupRepository(pool *pgxpool.Pool) *GroupRepository {
	return &GroupRepository{pool: pool}
}

// List retrieves all groups.
func (r *GroupRepository) List(ctx context.Context) ([]model.Group, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, created_at FROM groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []model.Group
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

// Ensure creates a group by name if it does not exist yet. Running it
// repeatedly never produces a second row for the same name.
func (r *GroupRepository) Ensure(ctx context.Context, name, description string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO groups (name, description) VALUES ($1, $2)
		 ON CONFLICT (name) DO NOTHING`,
		name, description,
	)
	return err
}
