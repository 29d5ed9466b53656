package service

import (
	"context"
	"errors"

	"github.com/openclass/courseware-backend/internal/config"
	"github.com/openclass/courseware-backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when password and password_repeat differ
// during registration. No user record is created in that case.
var ErrPasswordMismatch = errors.New("password fields didn't match")

// UserStore is the persistence surface the user service needs.
// *repository.UserRepository satisfies it.
type UserStore interface {
	GetByID(ctx context.Context, id int) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GroupNames(ctx context.Context, userID int) ([]string, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]model.User, int, error)
	Create(ctx context.Context, u *model.User) error
	Update(ctx context.Context, u *model.User) error
	UpdatePassword(ctx context.Context, id int, passwordHash string) error
	ReplaceGroups(ctx context.Context, userID int, groupNames []string) error
	Delete(ctx context.Context, id int) error
}

// UserService handles account management and registration.
type UserService struct {
	cfg   *config.Config
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(cfg *config.Config, users UserStore) *UserService {
	return &UserService{cfg: cfg, users: users}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// GetByUsername retrieves a user by username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// List retrieves a paginated list of users.
func (s *UserService) List(ctx context.Context, page, perPage int) ([]model.User, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return s.users.ListPaginated(ctx, perPage, (page-1)*perPage)
}

// Register creates an account from public self-registration. Both password
// fields must match; the new account starts with no groups, so it passes no
// rule table until an Officer grants one.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if req.Password != req.PasswordRepeat {
		return nil, ErrPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Create adds a user account on behalf of an Officer, optionally with an
// initial group set.
func (s *UserService) Create(ctx context.Context, req *model.CreateUserRequest) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Groups:       req.Groups,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, user.ID)
}

// Update modifies a user's basic fields, and the password when provided.
func (s *UserService) Update(ctx context.Context, id int, req *model.UpdateUserRequest) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
			return nil, err
		}
	}

	return s.users.GetByID(ctx, id)
}

// UpdateGroups replaces a user's group set. This is the only way a role
// changes; nothing else about the account is touched.
func (s *UserService) UpdateGroups(ctx context.Context, id int, groups []string) (*model.User, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.users.ReplaceGroups(ctx, id, groups); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, id)
}

// Delete removes a user account.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.users.Delete(ctx, id)
}
