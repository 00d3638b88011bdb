package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/dberrors"
)

func TestSubmissionRepository_Create(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubmissionRepository(mock)
	assignmentID, studentID := uuid.New(), uuid.New()

	mock.ExpectExec("INSERT INTO submissions").
		WithArgs(pgxmock.AnyArg(), assignmentID, studentID, "my answer", anyTime{}, anyTime{}).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	s := &models.Submission{AssignmentID: assignmentID, StudentID: studentID, Content: "my answer"}
	require.NoError(t, repo.Create(context.Background(), s))
	assert.NotEqual(t, uuid.Nil, s.ID)
	assert.Nil(t, s.Grade)
	assert.Nil(t, s.Feedback)
}

func TestSubmissionRepository_Create_Violations(t *testing.T) {
	tests := []struct {
		name    string
		dbErr   error
		wantErr error
	}{
		{"already submitted", pgViolation(dberrors.CodeUniqueViolation, ConstraintSubmissionUnique), apperrors.ErrAlreadySubmitted},
		{"unknown assignment", pgViolation(dberrors.CodeForeignKeyViolation, ConstraintSubmissionAssignmentFK), apperrors.ErrAssignmentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			repo := NewSubmissionRepository(mock)

			mock.ExpectExec("INSERT INTO submissions").
				WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
				WillReturnError(tt.dbErr)

			err := repo.Create(context.Background(), &models.Submission{AssignmentID: uuid.New(), StudentID: uuid.New(), Content: "x"})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSubmissionRepository_UpdateGrade(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubmissionRepository(mock)
	id, assignmentID, studentID := uuid.New(), uuid.New(), uuid.New()
	grade := 92.5
	feedback := "Great"
	now := time.Now()

	mock.ExpectQuery(`UPDATE submissions SET grade = \$1, feedback = COALESCE\(\$2, feedback\)`).
		WithArgs(grade, pgxmock.AnyArg(), anyTime{}, anyTime{}, pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(submissionColumns).
			AddRow(id, assignmentID, studentID, "answer", &grade, &feedback, &now, now, now))

	s, err := repo.UpdateGrade(context.Background(), id, grade, &feedback)
	require.NoError(t, err)
	require.NotNil(t, s.Grade)
	assert.Equal(t, 92.5, *s.Grade)
	require.NotNil(t, s.Feedback)
	assert.Equal(t, "Great", *s.Feedback)
	assert.NotNil(t, s.GradedAt)
}

func TestSubmissionRepository_UpdateGrade_NotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubmissionRepository(mock)

	mock.ExpectQuery("UPDATE submissions").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.UpdateGrade(context.Background(), uuid.New(), 50, nil)
	assert.ErrorIs(t, err, apperrors.ErrSubmissionNotFound)
}

func TestSubmissionRepository_ListByAssignment(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubmissionRepository(mock)
	id, assignmentID, studentID := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	cols := append(append([]string{}, submissionColumns...), "student_id", "student_name", "student_email")
	mock.ExpectQuery("SELECT .* FROM submissions s JOIN users u").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows(cols).
			AddRow(id, assignmentID, studentID, "answer", nil, nil, nil, now, now, studentID, "Sam", "sam@example.com"))

	subs, err := repo.ListByAssignment(context.Background(), assignmentID)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Nil(t, subs[0].Grade)
	assert.Equal(t, "Sam", subs[0].Student.Name)
}

func TestSubmissionRepository_ListGradesByStudent(t *testing.T) {
	mock := newMockPool(t)
	repo := NewSubmissionRepository(mock)
	assignmentID := uuid.New()

	mock.ExpectQuery("SELECT .* FROM submissions s JOIN assignments a .* JOIN courses c .* s.grade IS NOT NULL").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "course_title", "grade", "feedback"}).
			AddRow(assignmentID, "HW1", "Intro", 88.0, nil))

	grades, err := repo.ListGradesByStudent(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, &models.GradeEntry{AssignmentID: assignmentID, AssignmentTitle: "HW1", CourseTitle: "Intro", Grade: 88.0}, grades[0])
}
