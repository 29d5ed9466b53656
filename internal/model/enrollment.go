package model

import "time"

// EnrollmentRequest is a pending intent of a user to join a course.
// Its existence does not imply membership: approval adds the user to the
// course member set and then removes the request.
type EnrollmentRequest struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	CourseID  int       `json:"course_id"`
	User      *User     `json:"user,omitempty"`
	Course    *Course   `json:"course,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
