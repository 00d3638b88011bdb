package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

// Ownership errors returned when the caller is not the owning teacher.
var (
	ErrNotCourseOwner     = apperrors.NewForbiddenError(apperrors.KindNotOwner, "you do not own this course")
	ErrNotAssignmentOwner = apperrors.NewForbiddenError(apperrors.KindNotOwner, "you do not own this assignment's course")
	ErrNotSubmissionOwner = apperrors.NewForbiddenError(apperrors.KindNotOwner, "you do not own the course this submission belongs to")
)

// AuthorizationService resolves resources to their owning teacher. Each
// chain is walked with explicit lookups so the missing hop is reported as
// its own NotFound.
type AuthorizationService struct {
	courseRepo     repositories.ICourseRepository
	assignmentRepo repositories.IAssignmentRepository
	submissionRepo repositories.ISubmissionRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(
	courseRepo repositories.ICourseRepository,
	assignmentRepo repositories.IAssignmentRepository,
	submissionRepo repositories.ISubmissionRepository,
) *AuthorizationService {
	return &AuthorizationService{
		courseRepo:     courseRepo,
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
	}
}

// CourseOwner returns the course and the id of the teacher that owns it.
func (s *AuthorizationService) CourseOwner(ctx context.Context, courseID uuid.UUID) (*models.Course, uuid.UUID, error) {
	course, err := s.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, uuid.Nil, lookupError(err, "course", courseID)
	}
	return course, course.TeacherID, nil
}

// AssignmentOwner resolves assignment -> course -> teacher.
func (s *AuthorizationService) AssignmentOwner(ctx context.Context, assignmentID uuid.UUID) (*models.Assignment, uuid.UUID, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, uuid.Nil, lookupError(err, "assignment", assignmentID)
	}
	_, ownerID, err := s.CourseOwner(ctx, assignment.CourseID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return assignment, ownerID, nil
}

// SubmissionOwner resolves submission -> assignment -> course -> teacher.
func (s *AuthorizationService) SubmissionOwner(ctx context.Context, submissionID uuid.UUID) (*models.Submission, uuid.UUID, error) {
	submission, err := s.submissionRepo.GetByID(ctx, submissionID)
	if err != nil {
		return nil, uuid.Nil, lookupError(err, "submission", submissionID)
	}
	_, ownerID, err := s.AssignmentOwner(ctx, submission.AssignmentID)
	if err != nil {
		return nil, uuid.Nil, err
	}
	return submission, ownerID, nil
}

// ValidateCourseOwnership returns the course if userID owns it.
func (s *AuthorizationService) ValidateCourseOwnership(ctx context.Context, courseID, userID uuid.UUID) (*models.Course, error) {
	course, ownerID, err := s.CourseOwner(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotCourseOwner
	}
	return course, nil
}

// ValidateAssignmentOwnership returns the assignment if userID owns its course.
func (s *AuthorizationService) ValidateAssignmentOwnership(ctx context.Context, assignmentID, userID uuid.UUID) (*models.Assignment, error) {
	assignment, ownerID, err := s.AssignmentOwner(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotAssignmentOwner
	}
	return assignment, nil
}

// ValidateSubmissionOwnership returns the submission if userID owns the
// course it was submitted to.
func (s *AuthorizationService) ValidateSubmissionOwnership(ctx context.Context, submissionID, userID uuid.UUID) (*models.Submission, error) {
	submission, ownerID, err := s.SubmissionOwner(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrNotSubmissionOwner
	}
	return submission, nil
}

func lookupError(err error, resource string, id uuid.UUID) error {
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		return err
	}
	logger.Error().Err(err).Str(resource+"ID", id.String()).Msg("Error resolving resource owner")
	return fmt.Errorf("failed to resolve %s owner: %w", resource, err)
}
