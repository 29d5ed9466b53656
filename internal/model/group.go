package model

import "time"

// Group represents a named role used for authorization lookups.
type Group struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Well-known group names. Seeded at startup; extensible via the groups table.
const (
	GroupStudent = "Student"
	GroupTeacher = "Teacher"
	GroupOfficer = "Officer"
)

// SeedGroups lists the groups guaranteed to exist after startup.
// Seeding is create-if-absent by name and safe to run repeatedly.
var SeedGroups = []Group{
	{Name: GroupStudent, Description: "User who can view and access course pages and the content of each pages."},
	{Name: GroupTeacher, Description: "User who can create course pages and granted the access to students to enroll the course."},
	{Name: GroupOfficer, Description: "User who can manage the user account."},
}
