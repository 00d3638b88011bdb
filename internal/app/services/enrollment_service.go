package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/events"
)

// EnrollmentService defines the interface for enrollment ledger operations
type EnrollmentService interface {
	Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error)
	ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error)
	ListStudents(ctx context.Context, teacherID, courseID uuid.UUID) ([]*models.UserSummary, error)
}

type enrollmentServiceImpl struct {
	enrollmentRepo repositories.IEnrollmentRepository
	courseRepo     repositories.ICourseRepository
	authzService   *appAuth.AuthorizationService
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo repositories.IEnrollmentRepository,
	courseRepo repositories.ICourseRepository,
	authzService *appAuth.AuthorizationService,
	publisher events.Publisher,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		authzService:   authzService,
		publisher:      publisher,
		logger:         logger,
	}
}

// Enroll records studentID in courseID. The insert alone decides between
// success, Conflict (already enrolled) and NotFound (no such course).
func (s *enrollmentServiceImpl) Enroll(ctx context.Context, studentID, courseID uuid.UUID) (*models.Enrollment, error) {
	enrollment := &models.Enrollment{CourseID: courseID, StudentID: studentID}
	if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.New(events.EnrollmentCreated, enrollment.ID, enrollment))
	s.logger.Info().Str("courseID", courseID.String()).Str("studentID", studentID.String()).Msg("Student enrolled")
	return enrollment, nil
}

// ListForStudent returns the courses studentID is enrolled in
func (s *enrollmentServiceImpl) ListForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	courses, err := s.courseRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrolled courses: %w", err)
	}
	return courses, nil
}

// ListStudents returns a course's students. Only the owning teacher may ask.
func (s *enrollmentServiceImpl) ListStudents(ctx context.Context, teacherID, courseID uuid.UUID) ([]*models.UserSummary, error) {
	if _, err := s.authzService.ValidateCourseOwnership(ctx, courseID, teacherID); err != nil {
		return nil, err
	}

	students, err := s.enrollmentRepo.ListStudentsByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing course students: %w", err)
	}
	return students, nil
}
