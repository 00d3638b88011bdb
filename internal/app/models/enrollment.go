package models

import (
	"time"

	"github.com/google/uuid"
)

// Enrollment links one student to one course. At most one per pair.
type Enrollment struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CourseID  uuid.UUID `json:"courseId" db:"course_id"`
	StudentID uuid.UUID `json:"studentId" db:"student_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
