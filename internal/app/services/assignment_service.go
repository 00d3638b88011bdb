package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// dueDateLayouts are tried in order when parsing a due date.
var dueDateLayouts = []string{time.RFC3339, "2006-01-02"}

// AssignmentService defines the interface for assignment registry operations
type AssignmentService interface {
	Create(ctx context.Context, teacherID, courseID uuid.UUID, body dto.RawBody) (*models.Assignment, error)
	ListSubmissions(ctx context.Context, teacherID, assignmentID uuid.UUID) ([]*models.Submission, error)
}

type assignmentServiceImpl struct {
	assignmentRepo repositories.IAssignmentRepository
	submissionRepo repositories.ISubmissionRepository
	authzService   *appAuth.AuthorizationService
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo repositories.IAssignmentRepository,
	submissionRepo repositories.ISubmissionRepository,
	authzService *appAuth.AuthorizationService,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		submissionRepo: submissionRepo,
		authzService:   authzService,
		logger:         logger,
	}
}

// Create adds an assignment to a course owned by teacherID. Checks run in the
// order course exists, caller owns it, fields are valid.
func (s *assignmentServiceImpl) Create(ctx context.Context, teacherID, courseID uuid.UUID, body dto.RawBody) (*models.Assignment, error) {
	if _, err := s.authzService.ValidateCourseOwnership(ctx, courseID, teacherID); err != nil {
		return nil, err
	}

	var req dto.CreateAssignmentRequest
	if err := body.Decode(&req); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	switch {
	case title == "":
		return nil, apperrors.NewValidationError("title is required")
	case description == "":
		return nil, apperrors.NewValidationError("description is required")
	case strings.TrimSpace(req.DueDate) == "":
		return nil, apperrors.NewValidationError("dueDate is required")
	}

	dueDate, err := ParseDueDate(req.DueDate)
	if err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       title,
		Description: description,
		DueDate:     dueDate,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, fmt.Errorf("error creating assignment: %w", err)
	}

	s.logger.Info().Str("assignmentID", assignment.ID.String()).Str("courseID", courseID.String()).Msg("Assignment created")
	return assignment, nil
}

// ListSubmissions returns an assignment's submissions to its owning teacher
func (s *assignmentServiceImpl) ListSubmissions(ctx context.Context, teacherID, assignmentID uuid.UUID) ([]*models.Submission, error) {
	if _, err := s.authzService.ValidateAssignmentOwnership(ctx, assignmentID, teacherID); err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.ListByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("error listing submissions: %w", err)
	}
	return submissions, nil
}

// ParseDueDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date (UTC midnight).
func ParseDueDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("dueDate must be an RFC 3339 timestamp or YYYY-MM-DD")
}
