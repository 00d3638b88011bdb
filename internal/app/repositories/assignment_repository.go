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

var assignmentColumns = []string{"id", "course_id", "title", "description", "due_date", "created_at", "updated_at"}

// AssignmentRepository handles assignment database operations
type AssignmentRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewAssignmentRepository creates a new AssignmentRepository
func NewAssignmentRepository(db DBTX) *AssignmentRepository {
	return &AssignmentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts an assignment
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == uuid.Nil {
		assignment.ID = uuid.New()
	}
	now := time.Now().UTC()
	assignment.CreatedAt, assignment.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("assignments").
		Columns(assignmentColumns...).
		Values(assignment.ID, assignment.CourseID, assignment.Title, assignment.Description, assignment.DueDate, assignment.CreatedAt, assignment.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create assignment query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err, ConstraintAssignmentCourseFK) {
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Str("courseID", assignment.CourseID.String()).Msg("Error executing create assignment query")
		return fmt.Errorf("error creating assignment: %w", err)
	}
	return nil
}

// GetByID retrieves an assignment by ID
func (r *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTitleAndCourse is used by the seeder to stay idempotent.
func (r *AssignmentRepository) GetByTitleAndCourse(ctx context.Context, title string, courseID uuid.UUID) (*models.Assignment, error) {
	return r.getOne(ctx, squirrel.And{squirrel.Eq{"course_id": courseID}, squirrel.Eq{"title": title}})
}

func (r *AssignmentRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Assignment, error) {
	sql, args, err := r.sb.Select(assignmentColumns...).
		From("assignments").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get assignment query: %w", err)
	}

	a := &models.Assignment{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&a.ID, &a.CourseID, &a.Title, &a.Description, &a.DueDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAssignmentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning assignment row")
		return nil, fmt.Errorf("error getting assignment: %w", err)
	}
	return a, nil
}
