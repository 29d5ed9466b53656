package service

import (
	"context"

	"github.com/openclass/courseware-backend/internal/model"
)

// ContentStore is the persistence surface for course content.
// *repository.ContentRepository satisfies it.
type ContentStore interface {
	GetByID(ctx context.Context, id int) (*model.Content, error)
	ListByCourse(ctx context.Context, courseID int) ([]model.Content, error)
	Create(ctx context.Context, c *model.Content) error
	Update(ctx context.Context, c *model.Content) error
	Delete(ctx context.Context, id int) error
}

// ContentService handles course content business logic.
type ContentService struct {
	contents ContentStore
	courses  CourseStore
}

// NewContentService creates a new ContentService.
func NewContentService(contents ContentStore, courses CourseStore) *ContentService {
	return &ContentService{contents: contents, courses: courses}
}

// ListByCourse retrieves a course's content blocks. The course must exist.
func (s *ContentService) ListByCourse(ctx context.Context, courseID int) ([]model.Content, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}
	return s.contents.ListByCourse(ctx, courseID)
}

// Create adds a content block under an existing course.
func (s *ContentService) Create(ctx context.Context, courseID int, req *model.CreateContentRequest) (*model.Content, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	content := &model.Content{CourseID: courseID, Body: req.Body}
	if err := s.contents.Create(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Update modifies a content block's body.
func (s *ContentService) Update(ctx context.Context, id int, req *model.CreateContentRequest) (*model.Content, error) {
	content, err := s.contents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content.Body = req.Body
	if err := s.contents.Update(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete removes a content block.
func (s *ContentService) Delete(ctx context.Context, id int) error {
	return s.contents.Delete(ctx, id)
}
