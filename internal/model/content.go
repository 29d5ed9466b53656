package model

import "time"

// Content is a block of course material. It belongs to exactly one course
// and is cascade-deleted with it.
type Content struct {
	ID        int       `json:"id"`
	CourseID  int       `json:"course_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateContentRequest is the payload for creating or updating content.
type CreateContentRequest struct {
	Body string `json:"body" binding:"required,max=255"`
}
