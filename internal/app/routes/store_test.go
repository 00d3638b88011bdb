package routes

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// memStore backs every repository interface with maps. It enforces the same
// uniqueness and foreign-key rules as the schema.
type memStore struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*models.User
	courses     map[uuid.UUID]*models.Course
	enrollments []*models.Enrollment
	assignments map[uuid.UUID]*models.Assignment
	submissions map[uuid.UUID]*models.Submission
}

func newMemStore() *memStore {
	return &memStore{
		users:       map[uuid.UUID]*models.User{},
		courses:     map[uuid.UUID]*models.Course{},
		assignments: map[uuid.UUID]*models.Assignment{},
		submissions: map[uuid.UUID]*models.Submission{},
	}
}

func (s *memStore) summary(id uuid.UUID) *models.UserSummary {
	u := s.users[id]
	return &models.UserSummary{ID: u.ID, Name: u.Name, Email: u.Email}
}

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = uuid.New()
	user.CreatedAt, user.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

type memCourses struct{ *memStore }

func (r memCourses) Create(_ context.Context, course *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[course.TeacherID]; !ok {
		return apperrors.ErrUserNotFound
	}
	course.ID = uuid.New()
	course.CreatedAt, course.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *course
	r.courses[course.ID] = &cp
	return nil
}

func (r memCourses) GetByID(_ context.Context, id uuid.UUID) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r memCourses) GetByTitleAndTeacher(_ context.Context, title string, teacherID uuid.UUID) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.courses {
		if c.Title == title && c.TeacherID == teacherID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r memCourses) ListWithTeacher(_ context.Context) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Course{}
	for _, c := range r.courses {
		cp := *c
		cp.Teacher = r.summary(c.TeacherID)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memCourses) ListByStudent(_ context.Context, studentID uuid.UUID) ([]*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Course{}
	for _, e := range r.enrollments {
		if e.StudentID != studentID {
			continue
		}
		cp := *r.courses[e.CourseID]
		cp.Teacher = r.summary(cp.TeacherID)
		out = append(out, &cp)
	}
	return out, nil
}

type memEnrollments struct{ *memStore }

func (r memEnrollments) Create(_ context.Context, enrollment *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.CourseID == enrollment.CourseID && e.StudentID == enrollment.StudentID {
			return apperrors.ErrAlreadyEnrolled
		}
	}
	if _, ok := r.courses[enrollment.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	enrollment.ID = uuid.New()
	enrollment.CreatedAt = time.Now().UTC()
	cp := *enrollment
	r.enrollments = append(r.enrollments, &cp)
	return nil
}

func (r memEnrollments) ListStudentsByCourse(_ context.Context, courseID uuid.UUID) ([]*models.UserSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.UserSummary{}
	for _, e := range r.enrollments {
		if e.CourseID == courseID {
			out = append(out, r.summary(e.StudentID))
		}
	}
	return out, nil
}

type memAssignments struct{ *memStore }

func (r memAssignments) Create(_ context.Context, assignment *models.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.courses[assignment.CourseID]; !ok {
		return apperrors.ErrCourseNotFound
	}
	assignment.ID = uuid.New()
	assignment.CreatedAt, assignment.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *assignment
	r.assignments[assignment.ID] = &cp
	return nil
}

func (r memAssignments) GetByID(_ context.Context, id uuid.UUID) (*models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assignments[id]
	if !ok {
		return nil, apperrors.ErrAssignmentNotFound
	}
	cp := *a
	return &cp, nil
}

func (r memAssignments) GetByTitleAndCourse(_ context.Context, title string, courseID uuid.UUID) (*models.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.Title == title && a.CourseID == courseID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

type memSubmissions struct{ *memStore }

func (r memSubmissions) Create(_ context.Context, submission *models.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.submissions {
		if s.AssignmentID == submission.AssignmentID && s.StudentID == submission.StudentID {
			return apperrors.ErrAlreadySubmitted
		}
	}
	if _, ok := r.assignments[submission.AssignmentID]; !ok {
		return apperrors.ErrAssignmentNotFound
	}
	submission.ID = uuid.New()
	submission.CreatedAt, submission.UpdatedAt = time.Now().UTC(), time.Now().UTC()
	cp := *submission
	r.submissions[submission.ID] = &cp
	return nil
}

func (r memSubmissions) GetByID(_ context.Context, id uuid.UUID) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, apperrors.ErrSubmissionNotFound
	}
	cp := *s
	return &cp, nil
}

func (r memSubmissions) ListByAssignment(_ context.Context, assignmentID uuid.UUID) ([]*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Submission{}
	for _, s := range r.submissions {
		if s.AssignmentID == assignmentID {
			cp := *s
			cp.Student = r.summary(s.StudentID)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memSubmissions) UpdateGrade(_ context.Context, id uuid.UUID, grade float64, feedback *string) (*models.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.submissions[id]
	if !ok {
		return nil, apperrors.ErrSubmissionNotFound
	}
	now := time.Now().UTC()
	s.Grade = &grade
	if feedback != nil {
		fb := *feedback
		s.Feedback = &fb
	}
	s.GradedAt, s.UpdatedAt = &now, now
	cp := *s
	return &cp, nil
}

func (r memSubmissions) ListGradesByStudent(_ context.Context, studentID uuid.UUID) ([]*models.GradeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.GradeEntry{}
	for _, s := range r.submissions {
		if s.StudentID != studentID || s.Grade == nil {
			continue
		}
		a := r.assignments[s.AssignmentID]
		out = append(out, &models.GradeEntry{
			AssignmentID:    a.ID,
			AssignmentTitle: a.Title,
			CourseTitle:     r.courses[a.CourseID].Title,
			Grade:           *s.Grade,
			Feedback:        s.Feedback,
		})
	}
	return out, nil
}
