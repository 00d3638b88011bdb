package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/lms/internal/app/models"
	appRepos "github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// Default demo data. The password applies to both seeded accounts.
const (
	TeacherEmail    = "teacher@example.com"
	StudentEmail    = "student@example.com"
	DefaultPassword = "Passw0rd!"
	CourseTitle     = "Intro to LMS"
	AssignmentTitle = "Week 1 Assignment"
)

// PasswordHasher hashes the seeded accounts' password
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// Seeder ensures the demo data exists. Every step looks the record up first,
// so running it against an already seeded database changes nothing.
type Seeder struct {
	Users       appRepos.IUserRepository
	Courses     appRepos.ICourseRepository
	Enrollments appRepos.IEnrollmentRepository
	Assignments appRepos.IAssignmentRepository
	Hasher      PasswordHasher
	Logger      zerolog.Logger

	now func() time.Time
}

// CreateDefaultData creates the demo teacher, student, course, enrollment
// and assignment if they don't exist.
func (s *Seeder) CreateDefaultData(ctx context.Context) error {
	s.Logger.Info().Msg("Checking/Creating default data...")

	teacher, err := s.ensureUser(ctx, "Demo Teacher", TeacherEmail, appModels.RoleTeacher)
	if err != nil {
		return err
	}
	student, err := s.ensureUser(ctx, "Demo Student", StudentEmail, appModels.RoleStudent)
	if err != nil {
		return err
	}

	course, err := s.Courses.GetByTitleAndTeacher(ctx, CourseTitle, teacher.ID)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		course = &appModels.Course{
			Title:       CourseTitle,
			Description: "A short tour of courses, assignments and grading.",
			Duration:    "4 weeks",
			TeacherID:   teacher.ID,
		}
		err = s.Courses.Create(ctx, course)
	}
	if err != nil {
		s.Logger.Error().Err(err).Msg("Error creating default course")
		return fmt.Errorf("seed course: %w", err)
	}

	var finalErr error

	enrollment := &appModels.Enrollment{CourseID: course.ID, StudentID: student.ID}
	if err := s.Enrollments.Create(ctx, enrollment); err != nil && !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
		s.Logger.Error().Err(err).Msg("Error enrolling default student")
		finalErr = errors.Join(finalErr, err)
	}

	_, err = s.Assignments.GetByTitleAndCourse(ctx, AssignmentTitle, course.ID)
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		err = s.Assignments.Create(ctx, &appModels.Assignment{
			CourseID:    course.ID,
			Title:       AssignmentTitle,
			Description: "Introduce yourself in a few sentences.",
			DueDate:     s.clock().Add(7 * 24 * time.Hour),
		})
	}
	if err != nil {
		s.Logger.Error().Err(err).Msg("Error creating default assignment")
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr == nil {
		s.Logger.Info().Str("courseID", course.ID.String()).Msg("Default data ready")
	}
	return finalErr
}

func (s *Seeder) ensureUser(ctx context.Context, name, email string, role appModels.Role) (*appModels.User, error) {
	user, err := s.Users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return nil, fmt.Errorf("seed lookup %s: %w", email, err)
	}

	hash, err := s.Hasher.Hash(DefaultPassword)
	if err != nil {
		return nil, fmt.Errorf("seed hash password: %w", err)
	}
	user = &appModels.User{Name: name, Email: email, PasswordHash: hash, Role: role}
	if err := s.Users.Create(ctx, user); err != nil {
		s.Logger.Error().Err(err).Str("email", email).Msg("Error creating default user")
		return nil, fmt.Errorf("seed user %s: %w", email, err)
	}
	s.Logger.Info().Str("email", email).Str("role", string(role)).Msg("Default user created")
	return user, nil
}

func (s *Seeder) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}
