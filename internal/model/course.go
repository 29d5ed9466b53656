package model

import "time"

// Course represents a course page. Members only ever grow through the
// enrollment workflow (staff approval or key-based self-enrollment).
type Course struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	// EnrollmentKey enables key-based self-enrollment when set.
	// A course with a NULL key can never be joined via /bykey.
	EnrollmentKey *string   `json:"enrollment_key"`
	AuthorID      int       `json:"author_id"`
	Author        *User     `json:"author,omitempty"`
	Members       []User    `json:"members,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating or updating a course.
// The author is always the requesting user and never taken from the body.
type CreateCourseRequest struct {
	Name          string  `json:"name" binding:"required,min=1,max=30"`
	Description   string  `json:"description" binding:"required,max=255"`
	EnrollmentKey *string `json:"enrollment_key" binding:"omitempty,max=30"`
}

// EnrollmentKeyRequest is the payload for key-based self-enrollment.
type EnrollmentKeyRequest struct {
	EnrollmentKey string `json:"enrollment_key" binding:"required,max=255"`
}
