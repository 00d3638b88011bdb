package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is owned by exactly one teacher, fixed at creation.
type Course struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title" example:"Intro"`
	Description string    `json:"description" db:"description"`
	Duration    string    `json:"duration" db:"duration" example:"4 weeks"`
	TeacherID   uuid.UUID `json:"teacherId" db:"teacher_id"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Populated on list views
	Teacher *UserSummary `json:"teacher,omitempty"`
}
