package service

import (
	"context"

	"github.com/openclass/courseware-backend/internal/model"
)

// CourseStore is the persistence surface shared by the course and
// enrollment services. *repository.CourseRepository satisfies it.
type CourseStore interface {
	GetByID(ctx context.Context, id int) (*model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	ListOwned(ctx context.Context, userID int) ([]model.Course, error)
	ListMembers(ctx context.Context, courseID int) ([]model.User, error)
	IsMember(ctx context.Context, courseID, userID int) (bool, error)
	AddMember(ctx context.Context, courseID, userID int) error
	Create(ctx context.Context, c *model.Course) error
	Update(ctx context.Context, c *model.Course) error
	Delete(ctx context.Context, id int) error
}

// CourseService handles course business logic.
type CourseService struct {
	courses CourseStore
	users   UserStore
}

// NewCourseService creates a new CourseService.
func NewCourseService(courses CourseStore, users UserStore) *CourseService {
	return &CourseService{courses: courses, users: users}
}

// List retrieves all courses.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courses.List(ctx)
}

// Get retrieves a course with its author and member set expanded.
func (s *CourseService) Get(ctx context.Context, id int) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	author, err := s.users.GetByID(ctx, course.AuthorID)
	if err == nil {
		course.Author = author
	}

	members, err := s.courses.ListMembers(ctx, id)
	if err != nil {
		return nil, err
	}
	course.Members = members
	return course, nil
}

// Owned retrieves exactly the courses where the user is the author or a
// member. Pure filter, no mutation.
func (s *CourseService) Owned(ctx context.Context, userID int) ([]model.Course, error) {
	return s.courses.ListOwned(ctx, userID)
}

// Create adds a course authored by the requesting user.
func (s *CourseService) Create(ctx context.Context, authorID int, req *model.CreateCourseRequest) (*model.Course, error) {
	course := &model.Course{
		Name:          req.Name,
		Description:   req.Description,
		EnrollmentKey: req.EnrollmentKey,
		AuthorID:      authorID,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Update modifies a course's fields. The author never changes.
func (s *CourseService) Update(ctx context.Context, id int, req *model.CreateCourseRequest) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description
	course.EnrollmentKey = req.EnrollmentKey
	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// Delete removes a course and, by cascade, its contents, memberships, and
// pending enrollment requests.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courses.Delete(ctx, id)
}
