package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/openclass/courseware-backend/internal/model"
)

// UserRepository handles user data access, including the user_groups
// membership join table.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// GetByID retrieves a user by ID, including group names.
func (r *UserRepository) GetByID(ctx context.Context, id int) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, first_name, last_name, password_hash, created_at, updated_at
		 FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	groups, err := r.GroupNames(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Groups = groups
	return u, nil
}

// GetByUsername retrieves a user by their unique username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	u := &model.User{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, email, first_name, last_name, password_hash, created_at, updated_at
		 FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	groups, err := r.GroupNames(ctx, u.ID)
	if err != nil {
		return nil, err
	}
	u.Groups = groups
	return u, nil
}

// GroupNames retrieves the current group names of a user. The authorization
// middleware calls this on every request, so membership changes apply
// immediately instead of waiting for token expiry.
func (r *UserRepository) GroupNames(ctx context.Context, userID int) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT g.name
		 FROM groups g
		 JOIN user_groups ug ON g.id = ug.group_id
		 WHERE ug.user_id = $1
		 ORDER BY g.name`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ListPaginated retrieves users with pagination, newest first.
func (r *UserRepository) ListPaginated(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id, username, email, first_name, last_name, password_hash, created_at, updated_at
		 FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	for i := range users {
		groups, err := r.GroupNames(ctx, users[i].ID)
		if err != nil {
			return nil, 0, err
		}
		users[i].Groups = groups
	}
	return users, total, nil
}

// Create inserts a new user and assigns its groups, if any.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (username, email, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}

	if len(u.Groups) > 0 {
		return r.ReplaceGroups(ctx, u.ID, u.Groups)
	}
	return nil
}

// Update modifies a user's basic info (excluding password and groups).
func (r *UserRepository) Update(ctx context.Context, u *model.User) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET username = $1, email = $2, first_name = $3, last_name = $4, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $5`,
		u.Username, u.Email, u.FirstName, u.LastName, u.ID,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdatePassword updates a user's password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, id int, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		passwordHash, id,
	)
	return err
}

// ReplaceGroups swaps the user's full group set for the named groups.
// Unknown names are ignored rather than invented.
func (r *UserRepository) ReplaceGroups(ctx context.Context, userID int, groupNames []string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM user_groups WHERE user_id = $1`, userID); err != nil {
		return err
	}

	if len(groupNames) > 0 {
		_, err = tx.Exec(ctx,
			`INSERT INTO user_groups (user_id, group_id)
			 SELECT $1, id FROM groups WHERE name = ANY($2)
			 ON CONFLICT DO NOTHING`,
			userID, groupNames,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
