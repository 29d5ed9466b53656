package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openclass/courseware-backend/internal/model"
)

// ContentRepository handles course content data access.
type ContentRepository struct {
	pool *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(pool *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{pool: pool}
}

// GetByID retrieves a content block by its ID.
func (r *ContentRepository) GetByID(ctx context.Context, id int) (*model.Content, error) {
	c := &model.Content{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, course_id, body, created_at, updated_at
		 FROM contents WHERE id = $1`, id,
	).Scan(&c.ID, &c.CourseID, &c.Body, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// ListByCourse retrieves all content blocks of a course in insertion order.
func (r *ContentRepository) ListByCourse(ctx context.Context, courseID int) ([]model.Content, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, course_id, body, created_at, updated_at
		 FROM contents WHERE course_id = $1 ORDER BY id`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []model.Content
	for rows.Next() {
		var c model.Content
		if err := rows.Scan(&c.ID, &c.CourseID, &c.Body, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

// Create inserts a new content block under its course.
func (r *ContentRepository) Create(ctx context.Context, c *model.Content) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contents (course_id, body) VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		c.CourseID, c.Body,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Update modifies a content block's body.
func (r *ContentRepository) Update(ctx context.Context, c *model.Content) error {
	res, err := r.pool.Exec(ctx,
		`UPDATE contents SET body = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		c.Body, c.ID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a content block by ID.
func (r *ContentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
