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

var courseColumns = []string{"id", "title", "description", "duration", "teacher_id", "created_at", "updated_at"}

// courseWithTeacherColumns is the select list of the denormalized course view.
var courseWithTeacherColumns = []string{
	"c.id", "c.title", "c.description", "c.duration", "c.teacher_id", "c.created_at", "c.updated_at",
	"u.id", "u.name", "u.email",
}

// CourseRepository handles course database operations
type CourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create inserts a course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == uuid.Nil {
		course.ID = uuid.New()
	}
	now := time.Now().UTC()
	course.CreatedAt, course.UpdatedAt = now, now

	sql, args, err := r.sb.Insert("courses").
		Columns(courseColumns...).
		Values(course.ID, course.Title, course.Description, course.Duration, course.TeacherID, course.CreatedAt, course.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyError(err, "") {
			return apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Str("teacherID", course.TeacherID.String()).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByTitleAndTeacher is used by the seeder to stay idempotent.
func (r *CourseRepository) GetByTitleAndTeacher(ctx context.Context, title string, teacherID uuid.UUID) (*models.Course, error) {
	return r.getOne(ctx, squirrel.And{squirrel.Eq{"title": title}, squirrel.Eq{"teacher_id": teacherID}})
}

func (r *CourseRepository) getOne(ctx context.Context, where squirrel.Sqlizer) (*models.Course, error) {
	sql, args, err := r.sb.Select(courseColumns...).
		From("courses").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course := &models.Course{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&course.ID, &course.Title, &course.Description, &course.Duration, &course.TeacherID, &course.CreatedAt, &course.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course: %w", err)
	}
	return course, nil
}

// ListWithTeacher returns every course with its teacher's name and email.
func (r *CourseRepository) ListWithTeacher(ctx context.Context) ([]*models.Course, error) {
	query := r.sb.Select(courseWithTeacherColumns...).
		From("courses c").
		Join("users u ON u.id = c.teacher_id").
		OrderBy("c.created_at DESC")
	return r.listWithTeacher(ctx, query)
}

// ListByStudent returns the courses a student is enrolled in.
func (r *CourseRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	query := r.sb.Select(courseWithTeacherColumns...).
		From("enrollments e").
		Join("courses c ON c.id = e.course_id").
		Join("users u ON u.id = c.teacher_id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.created_at DESC")
	return r.listWithTeacher(ctx, query)
}

func (r *CourseRepository) listWithTeacher(ctx context.Context, query squirrel.SelectBuilder) ([]*models.Course, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course := &models.Course{Teacher: &models.UserSummary{}}
		if err := rows.Scan(
			&course.ID, &course.Title, &course.Description, &course.Duration, &course.TeacherID, &course.CreatedAt, &course.UpdatedAt,
			&course.Teacher.ID, &course.Teacher.Name, &course.Teacher.Email,
		); err != nil {
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}
	return courses, nil
}
