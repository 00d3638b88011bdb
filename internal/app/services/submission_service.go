package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/events"
)

// SubmissionService defines the interface for submission ledger operations
type SubmissionService interface {
	Submit(ctx context.Context, studentID, assignmentID uuid.UUID, body dto.RawBody) (*models.Submission, error)
	Grade(ctx context.Context, teacherID, submissionID uuid.UUID, body dto.RawBody) (*models.Submission, error)
	ListGradesForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.GradeEntry, error)
}

type submissionServiceImpl struct {
	submissionRepo repositories.ISubmissionRepository
	assignmentRepo repositories.IAssignmentRepository
	authzService   *appAuth.AuthorizationService
	publisher      events.Publisher
	logger         zerolog.Logger
}

// NewSubmissionService creates a new SubmissionService
func NewSubmissionService(
	submissionRepo repositories.ISubmissionRepository,
	assignmentRepo repositories.IAssignmentRepository,
	authzService *appAuth.AuthorizationService,
	publisher events.Publisher,
	logger zerolog.Logger,
) SubmissionService {
	return &submissionServiceImpl{
		submissionRepo: submissionRepo,
		assignmentRepo: assignmentRepo,
		authzService:   authzService,
		publisher:      publisher,
		logger:         logger,
	}
}

// Submit records a student's answer. Order: assignment exists, content
// present, then the insert decides Conflict.
func (s *submissionServiceImpl) Submit(ctx context.Context, studentID, assignmentID uuid.UUID, body dto.RawBody) (*models.Submission, error) {
	if _, err := s.assignmentRepo.GetByID(ctx, assignmentID); err != nil {
		return nil, err
	}

	var req dto.SubmitRequest
	if err := body.Decode(&req); err != nil {
		return nil, err
	}
	content := req.Content
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content is required")
	}

	submission := &models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      content,
	}
	if err := s.submissionRepo.Create(ctx, submission); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.New(events.SubmissionCreated, submission.ID, submission))
	s.logger.Info().Str("submissionID", submission.ID.String()).Str("assignmentID", assignmentID.String()).Msg("Submission created")
	return submission, nil
}

// Grade sets the grade of a submission. Order: submission exists, caller owns
// the course, body decodes, grade present and within range and precision.
// Nil feedback keeps the old one.
func (s *submissionServiceImpl) Grade(ctx context.Context, teacherID, submissionID uuid.UUID, body dto.RawBody) (*models.Submission, error) {
	if _, err := s.authzService.ValidateSubmissionOwnership(ctx, submissionID, teacherID); err != nil {
		return nil, err
	}

	var req dto.GradeRequest
	if err := body.Decode(&req); err != nil {
		return nil, err
	}

	if req.Grade == nil {
		return nil, apperrors.NewValidationError("grade is required")
	}
	grade := *req.Grade
	if grade < models.MinGrade || grade > models.MaxGrade {
		return nil, apperrors.NewValidationError(fmt.Sprintf("grade must be between %d and %d", models.MinGrade, models.MaxGrade))
	}
	if !hasGradePrecision(grade) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("grade may have at most %d decimal places", models.GradeDecimals))
	}

	submission, err := s.submissionRepo.UpdateGrade(ctx, submissionID, grade, req.Feedback)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, events.New(events.SubmissionGraded, submission.ID, submission))
	s.logger.Info().Str("submissionID", submissionID.String()).Float64("grade", grade).Msg("Submission graded")
	return submission, nil
}

// ListGradesForStudent returns the student's graded submissions only
func (s *submissionServiceImpl) ListGradesForStudent(ctx context.Context, studentID uuid.UUID) ([]*models.GradeEntry, error) {
	grades, err := s.submissionRepo.ListGradesByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	return grades, nil
}

// hasGradePrecision reports whether grade is stored exactly in a
// NUMERIC(5,2) column. The tolerance absorbs binary float noise such as
// 85.55*100 = 8555.000000000001.
func hasGradePrecision(grade float64) bool {
	scaled := grade * math.Pow10(models.GradeDecimals)
	return math.Abs(scaled-math.Round(scaled)) < 1e-6
}
