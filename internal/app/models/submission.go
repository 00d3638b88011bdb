package models

import (
	"time"

	"github.com/google/uuid"
)

// MinGrade and MaxGrade bound Submission.Grade. GradeDecimals matches the
// scale of the grade column.
const (
	MinGrade      = 0
	MaxGrade      = 100
	GradeDecimals = 2
)

// Submission is a student's answer to an assignment. Grade and Feedback stay
// nil until the owning teacher grades it.
type Submission struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	AssignmentID uuid.UUID  `json:"assignmentId" db:"assignment_id"`
	StudentID    uuid.UUID  `json:"studentId" db:"student_id"`
	Content      string     `json:"content" db:"content"`
	Grade        *float64   `json:"grade" db:"grade"`
	Feedback     *string    `json:"feedback" db:"feedback"`
	GradedAt     *time.Time `json:"gradedAt,omitempty" db:"graded_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`

	// Populated when listing an assignment's submissions
	Student *UserSummary `json:"student,omitempty"`
}

// GradeEntry is one row of a student's grade report.
type GradeEntry struct {
	AssignmentID    uuid.UUID `json:"assignmentId"`
	AssignmentTitle string    `json:"assignmentTitle"`
	CourseTitle     string    `json:"courseTitle"`
	Grade           float64   `json:"grade"`
	Feedback        *string   `json:"feedback"`
}
