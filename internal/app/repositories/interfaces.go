package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/yigit/lms/internal/app/models"
)

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// ICourseRepository defines course persistence
type ICourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	GetByTitleAndTeacher(ctx context.Context, title string, teacherID uuid.UUID) (*models.Course, error)
	ListWithTeacher(ctx context.Context) ([]*models.Course, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error)
}

// IEnrollmentRepository defines enrollment persistence
type IEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	ListStudentsByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.UserSummary, error)
}

// IAssignmentRepository defines assignment persistence
type IAssignmentRepository interface {
	Create(ctx context.Context, assignment *models.Assignment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error)
	GetByTitleAndCourse(ctx context.Context, title string, courseID uuid.UUID) (*models.Assignment, error)
}

// ISubmissionRepository defines submission persistence
type ISubmissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error)
	ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*models.Submission, error)
	UpdateGrade(ctx context.Context, id uuid.UUID, grade float64, feedback *string) (*models.Submission, error)
	ListGradesByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.GradeEntry, error)
}
