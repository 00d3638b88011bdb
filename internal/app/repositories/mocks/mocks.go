// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/yigit/lms/internal/app/models"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

type CourseRepository struct {
	mock.Mock
}

func (m *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	args := m.Called(ctx, course)
	return args.Error(0)
}

func (m *CourseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	args := m.Called(ctx, id)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *CourseRepository) GetByTitleAndTeacher(ctx context.Context, title string, teacherID uuid.UUID) (*models.Course, error) {
	args := m.Called(ctx, title, teacherID)
	course, _ := args.Get(0).(*models.Course)
	return course, args.Error(1)
}

func (m *CourseRepository) ListWithTeacher(ctx context.Context) ([]*models.Course, error) {
	args := m.Called(ctx)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

func (m *CourseRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	args := m.Called(ctx, studentID)
	courses, _ := args.Get(0).([]*models.Course)
	return courses, args.Error(1)
}

type EnrollmentRepository struct {
	mock.Mock
}

func (m *EnrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *EnrollmentRepository) ListStudentsByCourse(ctx context.Context, courseID uuid.UUID) ([]*models.UserSummary, error) {
	args := m.Called(ctx, courseID)
	students, _ := args.Get(0).([]*models.UserSummary)
	return students, args.Error(1)
}

type AssignmentRepository struct {
	mock.Mock
}

func (m *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *AssignmentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, id)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

func (m *AssignmentRepository) GetByTitleAndCourse(ctx context.Context, title string, courseID uuid.UUID) (*models.Assignment, error) {
	args := m.Called(ctx, title, courseID)
	assignment, _ := args.Get(0).(*models.Assignment)
	return assignment, args.Error(1)
}

type SubmissionRepository struct {
	mock.Mock
}

func (m *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	args := m.Called(ctx, submission)
	return args.Error(0)
}

func (m *SubmissionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Submission, error) {
	args := m.Called(ctx, id)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *SubmissionRepository) ListByAssignment(ctx context.Context, assignmentID uuid.UUID) ([]*models.Submission, error) {
	args := m.Called(ctx, assignmentID)
	submissions, _ := args.Get(0).([]*models.Submission)
	return submissions, args.Error(1)
}

func (m *SubmissionRepository) UpdateGrade(ctx context.Context, id uuid.UUID, grade float64, feedback *string) (*models.Submission, error) {
	args := m.Called(ctx, id, grade, feedback)
	submission, _ := args.Get(0).(*models.Submission)
	return submission, args.Error(1)
}

func (m *SubmissionRepository) ListGradesByStudent(ctx context.Context, studentID uuid.UUID) ([]*models.GradeEntry, error) {
	args := m.Called(ctx, studentID)
	grades, _ := args.Get(0).([]*models.GradeEntry)
	return grades, args.Error(1)
}
