package service

import (
	"context"
	"errors"

	"github.com/openclass/courseware-backend/internal/model"
)

// Enrollment workflow errors. Key mismatches and bad course ids in the
// key-based path are business results the caller may retry, not failures.
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrKeyMismatch    = errors.New("enrollment key doesn't match")
)

// EnrollmentStore is the persistence surface for pending requests.
// *repository.EnrollmentRepository satisfies it.
type EnrollmentStore interface {
	GetByID(ctx context.Context, id int) (*model.EnrollmentRequest, error)
	List(ctx context.Context, courseID *int) ([]model.EnrollmentRequest, error)
	Create(ctx context.Context, req *model.EnrollmentRequest) error
	Delete(ctx context.Context, id int) error
}

// EnrollmentService manages the transition of a (user, course) pair from
// non-member to member, either through a staff-approved pending request or
// through key-based self-enrollment.
type EnrollmentService struct {
	requests EnrollmentStore
	courses  CourseStore
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(requests EnrollmentStore, courses CourseStore) *EnrollmentService {
	return &EnrollmentService{requests: requests, courses: courses}
}

// List retrieves pending requests, optionally filtered by course id.
func (s *EnrollmentService) List(ctx context.Context, courseID *int) ([]model.EnrollmentRequest, error) {
	return s.requests.List(ctx, courseID)
}

// Request files a pending enrollment request for the user on the course.
// The course must exist; a second pending request for the same pair is
// rejected (repository.ErrDuplicate).
func (s *EnrollmentService) Request(ctx context.Context, userID, courseID int) (*model.EnrollmentRequest, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	req := &model.EnrollmentRequest{UserID: userID, CourseID: courseID}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Approve grants the request: the user joins the course member set, then
// the request is removed. Membership is made durable
// before the request disappears, so a failure in between leaves a pending
// request for an already-enrolled user (harmless, AddMember is idempotent)
// rather than a lost approval. Approving a request that no longer exists
// reports repository.ErrNotFound.
func (s *EnrollmentService) Approve(ctx context.Context, requestID int) error {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return err
	}

	if err := s.courses.AddMember(ctx, req.CourseID, req.UserID); err != nil {
		return err
	}
	return s.requests.Delete(ctx, requestID)
}

// Reject removes the request without granting membership.
func (s *EnrollmentService) Reject(ctx context.Context, requestID int) error {
	return s.requests.Delete(ctx, requestID)
}

// CourseExists reports whether the course id resolves to a course.
func (s *EnrollmentService) CourseExists(ctx context.Context, courseID int) error {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return ErrCourseNotFound
	}
	return nil
}

// JoinByKey enrolls the user directly when the submitted key exactly
// matches the course's enrollment key. A course without a key can never be
// joined this way. Returns the course with its updated member set.
func (s *EnrollmentService) JoinByKey(ctx context.Context, userID, courseID int, key string) (*model.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, ErrCourseNotFound
	}

	if course.EnrollmentKey == nil || *course.EnrollmentKey != key {
		return nil, ErrKeyMismatch
	}

	if err := s.courses.AddMember(ctx, courseID, userID); err != nil {
		return nil, err
	}

	members, err := s.courses.ListMembers(ctx, courseID)
	if err != nil {
		return nil, err
	}
	course.Members = members
	return course, nil
}
