package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openclass/courseware-backend/internal/model"
)

// EnrollmentRepository handles pending enrollment request data access.
type EnrollmentRepository struct {
	pool *pgxpool.Pool
}

// NewEnrollmentRepository creates a new EnrollmentRepository.
func NewEnrollmentRepository(pool *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{pool: pool}
}

// GetByID retrieves an enrollment request by its ID.
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int) (*model.EnrollmentRequest, error) {
	req := &model.EnrollmentRequest{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, user_id, course_id, created_at
		 FROM enrollment_requests WHERE id = $1`, id,
	).Scan(&req.ID, &req.UserID, &req.CourseID, &req.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// List retrieves enrollment requests with the requesting user and course
// expanded, optionally filtered by course id.
func (r *EnrollmentRepository) List(ctx context.Context, courseID *int) ([]model.EnrollmentRequest, error) {
	query := `
		SELECT er.id, er.user_id, er.course_id, er.created_at,
		       u.username, u.email, u.first_name, u.last_name,
		       c.name, c.description
		FROM enrollment_requests er
		JOIN users u ON er.user_id = u.id
		JOIN courses c ON er.course_id = c.id`
	var args []interface{}
	if courseID != nil {
		query += ` WHERE er.course_id = $1`
		args = append(args, *courseID)
	}
	query += ` ORDER BY er.id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []model.EnrollmentRequest
	for rows.Next() {
		var req model.EnrollmentRequest
		var u model.User
		var c model.Course
		err := rows.Scan(
			&req.ID, &req.UserID, &req.CourseID, &req.CreatedAt,
			&u.Username, &u.Email, &u.FirstName, &u.LastName,
			&c.Name, &c.Description,
		)
		if err != nil {
			return nil, err
		}
		u.ID = req.UserID
		c.ID = req.CourseID
		req.User = &u
		req.Course = &c
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// Create inserts a pending request. A second pending request for the same
// (user, course) pair violates the unique constraint and is rejected.
func (r *EnrollmentRepository) Create(ctx context.Context, req *model.EnrollmentRequest) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO enrollment_requests (user_id, course_id) VALUES ($1, $2)
		 RETURNING id, created_at`,
		req.UserID, req.CourseID,
	).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505":
				return ErrDuplicate
			case "23503":
				return ErrNotFound
			}
		}
		return err
	}
	return nil
}

// Delete removes a request by ID. Deleting an already-deleted request
// reports ErrNotFound so a repeated approval fails loudly.
func (r *EnrollmentRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM enrollment_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
