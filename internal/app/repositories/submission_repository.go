package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/dberrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

var submissionColumns = []string{
	"id", "assignment_id", "student_id", "content", "grade", "feedback", "graded_at", "created_at", "updated_at",
}

// SubmissionRepository handles submission database operations
type SubmissionRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewSubmissionRepository creates a new SubmissionRepository
func NewSubmissionRepository(db DBTX) *SubmissionRepository {
	return &SubmissionRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts an ungraded submission. A second submission by the same
// student for the same assignment fails on the unique constraint.
func (r *SubmissionRepository) Create(ctx context.Context, s *models.Submission) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	now := time.Now().UTC()
	s.CreatedAt, s.UpdatedAt = now, now
	s.Grade, s.Feedback, s.GradedAt = nil, nil, nil

	sql, args, err := r.sb.Insert("submissions").
		Columns("id", "assignment_id", "student_id", "content", "created_at", "updated_at").
		Values(s.ID, s.AssignmentID, s.StudentID, s.Content, s.CreatedAt, s.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create submission query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, ConstraintSubmissionUnique):
			return apperrors.ErrAlreadySubmitted
		case dberrors.IsForeignKeyError(err, ConstraintSubmissionAssignmentFK):
			return apperrors.ErrAssignmentNotFound
		case dberrors.IsForeignKeyError(err, ""):
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).
			Str("assignmentID", s.AssignmentID.String()).
			Str("studentID", s.StudentID.String()).
			Msg("Error executing create submission query")
		return fmt.Errorf("error creating submission: %w", err)
	}
	return nil
}

// GetByID retrieves a submission by ID
func (r *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	sql, args, err := r.sb.Select(submissionColumns...).
		From("submissions").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get submission query: %w", err)
	}

	s, err := scanSubmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		logger.Error().Err(err).Msg("Error scanning submission row")
		return nil, fmt.Errorf("error getting submission: %w", err)
	}
	return s, nil
}

// ListByAssignment returns an assignment's submissions with the submitting
// student's name and email.
func (r *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*models.Submission, error) {
	sql, args, err := r.sb.Select(
		"s.id", "s.assignment_id", "s.student_id", "s.content", "s.grade", "s.feedback", "s.graded_at",
		"s.created_at", "s.updated_at", "u.id", "u.name", "u.email",
	).
		From("submissions s").
		Join("users u ON u.id = s.student_id").
		Where(squirrel.Eq{"s.assignment_id": assignmentID}).
		OrderBy("s.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list submissions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("assignmentID", assignmentID.String()).Msg("Error executing list submissions query")
		return nil, fmt.Errorf("error querying submissions: %w", err)
	}
	defer rows.Close()

	submissions := []*models.Submission{}
	for rows.Next() {
		s := &models.Submission{Student: &models.UserSummary{}}
		if err := rows.Scan(
			&s.ID, &s.AssignmentID, &s.StudentID, &s.Content, &s.Grade, &s.Feedback, &s.GradedAt,
			&s.CreatedAt, &s.UpdatedAt, &s.Student.ID, &s.Student.Name, &s.Student.Email,
		); err != nil {
			return nil, fmt.Errorf("error scanning submission row: %w", err)
		}
		submissions = append(submissions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}
	return submissions, nil
}

// UpdateGrade sets the grade and, when feedback is non-nil, replaces the
// feedback. A nil feedback keeps whatever was stored before.
func (r *SubmissionRepository) UpdateGrade(ctx context.Context, id uuid.UUID, grade float64, feedback *string) (*models.Submission, error) {
	now := time.Now().UTC()

	sql, args, err := r.sb.Update("submissions").
		Set("grade", grade).
		Set("feedback", squirrel.Expr("COALESCE(?, feedback)", feedback)).
		Set("graded_at", now).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING id, assignment_id, student_id, content, grade, feedback, graded_at, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grade submission query: %w", err)
	}

	s, err := scanSubmission(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		logger.Error().Err(err).Str("submissionID", id.String()).Msg("Error executing grade submission query")
		return nil, fmt.Errorf("error grading submission: %w", err)
	}
	return s, nil
}

// ListGradesByStudent returns one entry per graded submission of the student.
func (r *SubmissionRepository) ListGradesByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.GradeEntry, error) {
	sql, args, err := r.sb.Select("a.id", "a.title", "c.title", "s.grade", "s.feedback").
		From("submissions s").
		Join("assignments a ON a.id = s.assignment_id").
		Join("courses c ON c.id = a.course_id").
		Where(squirrel.Eq{"s.student_id": studentID}).
		Where(squirrel.NotEq{"s.grade": nil}).
		OrderBy("s.graded_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("studentID", studentID.String()).Msg("Error executing list grades query")
		return nil, fmt.Errorf("error querying grades: %w", err)
	}
	defer rows.Close()

	grades := []*models.GradeEntry{}
	for rows.Next() {
		g := &models.GradeEntry{}
		if err := rows.Scan(&g.AssignmentID, &g.AssignmentTitle, &g.CourseTitle, &g.Grade, &g.Feedback); err != nil {
			return nil, fmt.Errorf("error scanning grade row: %w", err)
		}
		grades = append(grades, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating grade rows: %w", err)
	}
	return grades, nil
}

func scanSubmission(row pgx.Row) (*models.Submission, error) {
	s := &models.Submission{}
	err := row.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.Content, &s.Grade, &s.Feedback, &s.GradedAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}
