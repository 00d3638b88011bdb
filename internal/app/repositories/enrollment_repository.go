package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/dberrors"
	"github.com/yigit/lms/internal/pkg/logger"
)

// EnrollmentRepository handles enrollment database operations
type EnrollmentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db DBTX) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts an enrollment without a prior existence check. The unique
// (course_id, student_id) constraint and the course foreign key decide
// between Conflict and NotFound.
func (r *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if enrollment.ID == uuid.Nil {
		enrollment.ID = uuid.New()
	}
	enrollment.CreatedAt = time.Now().UTC()

	sql, args, err := r.sb.Insert("enrollments").
		Columns("id", "course_id", "student_id", "created_at").
		Values(enrollment.ID, enrollment.CourseID, enrollment.StudentID, enrollment.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create enrollment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, ConstraintEnrollmentUnique):
			return apperrors.ErrAlreadyEnrolled
		case dberrors.IsForeignKeyError(err, ConstraintEnrollmentCourseFK):
			return apperrors.ErrCourseNotFound
		case dberrors.IsForeignKeyError(err, ""):
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).
			Str("courseID", enrollment.CourseID.String()).
			Str("studentID", enrollment.StudentID.String()).
			Msg("Error executing create enrollment query")
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// ListStudentsByCourse returns the students enrolled in a course.
func (r *EnrollmentRepository) ListStudentsByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.UserSummary, error) {
	sql, args, err := r.sb.Select("u.id", "u.name", "u.email").
		From("enrollments e").
		Join("users u ON u.id = e.student_id").
		Where(squirrel.Eq{"e.course_id": courseID}).
		OrderBy("e.created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("courseID", courseID.String()).Msg("Error executing list students query")
		return nil, fmt.Errorf("error querying enrolled students: %w", err)
	}
	defer rows.Close()

	students := []*models.UserSummary{}
	for rows.Next() {
		s := &models.UserSummary{}
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("error scanning student row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating student rows: %w", err)
	}
	return students, nil
}
