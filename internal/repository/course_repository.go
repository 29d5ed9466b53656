package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openclass/courseware-backend/internal/model"
)

// CourseRepository handles course data access, including the course_members
// join table.
type CourseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository creates a new CourseRepository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{pool: pool}
}

// GetByID retrieves a course by its ID.
func (r *CourseRepository) GetByID(ctx context.Context, id int) (*model.Course, error) {
	c := &model.Course{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, enrollment_key, author_id, created_at, updated_at
		 FROM courses WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Description, &c.EnrollmentKey, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

// List retrieves all courses.
func (r *CourseRepository) List(ctx context.Context) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, enrollment_key, author_id, created_at, updated_at
		 FROM courses ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// ListOwned retrieves the courses where the user is the author or a member.
func (r *CourseRepository) ListOwned(ctx context.Context, userID int) ([]model.Course, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT c.id, c.name, c.description, c.enrollment_key, c.author_id, c.created_at, c.updated_at
		 FROM courses c
		 LEFT JOIN course_members cm ON c.id = cm.course_id
		 WHERE c.author_id = $1 OR cm.user_id = $1
		 ORDER BY c.id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// ListMembers retrieves the member users of a course.
func (r *CourseRepository) ListMembers(ctx context.Context, courseID int) ([]model.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT u.id, u.username, u.email, u.first_name, u.last_name, u.created_at, u.updated_at
		 FROM users u
		 JOIN course_members cm ON u.id = cm.user_id
		 WHERE cm.course_id = $1
		 ORDER BY u.username`, courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, u)
	}
	return members, rows.Err()
}

// IsMember reports whether the user is in the course's member set.
func (r *CourseRepository) IsMember(ctx context.Context, courseID, userID int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM course_members WHERE course_id = $1 AND user_id = $2)`,
		courseID, userID,
	).Scan(&exists)
	return exists, err
}

// AddMember adds a user to the course's member set. Adding an existing
// member is a no-op, so concurrent approvals and repeated key joins
// converge on the same state.
func (r *CourseRepository) AddMember(ctx context.Context, courseID, userID int) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO course_members (course_id, user_id) VALUES ($1, $2)
		 ON CONFLICT DO NOTHING`,
		courseID, userID,
	)
	return err
}

// Create inserts a new course.
func (r *CourseRepository) Create(ctx context.Context, c *model.Course) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO courses (name, description, enrollment_key, author_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		c.Name, c.Description, c.EnrollmentKey, c.AuthorID,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
}

// Update modifies an existing course. The author never changes.
func (r *CourseRepository) Update(ctx context.Context, c *model.Course) error {
	res, err := r.pool.Exec(ctx,
		`UPDATE courses SET name = $1, description = $2, enrollment_key = $3, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $4`,
		c.Name, c.Description, c.EnrollmentKey, c.ID,
	)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a course by ID. Contents, memberships, and pending
// enrollment requests are removed by cascade.
func (r *CourseRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCourses(rows pgx.Rows) ([]model.Course, error) {
	var courses []model.Course
	for rows.Next() {
		var c model.Course
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.EnrollmentKey, &c.AuthorID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
