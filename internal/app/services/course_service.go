package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/app/repositories"
	"github.com/yigit/lms/internal/pkg/apperrors"
	"github.com/yigit/lms/internal/pkg/cache"
)

const courseListCacheKey = "courses:all"

// CourseService defines the interface for course registry operations
type CourseService interface {
	Create(ctx context.Context, teacherID uuid.UUID, req *dto.CreateCourseRequest) (*models.Course, error)
	List(ctx context.Context) ([]*models.Course, error)
}

type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	cache      cache.Cache
	listTTL    time.Duration
	logger     zerolog.Logger

	// listGen counts invalidations. List only fills the cache when no
	// invalidation happened during its database read.
	listMu  sync.Mutex
	listGen uint64
}

// NewCourseService creates a new CourseService. The course list is cached for
// listTTL and dropped whenever a course is created. Invalidation is tracked
// per process; other instances sharing the cache see a new course once their
// own write or the TTL clears the entry.
func NewCourseService(
	courseRepo repositories.ICourseRepository,
	c cache.Cache,
	listTTL time.Duration,
	logger zerolog.Logger,
) CourseService {
	if c == nil {
		c = cache.Noop{}
	}
	return &courseServiceImpl{
		courseRepo: courseRepo,
		cache:      c,
		listTTL:    listTTL,
		logger:     logger,
	}
}

// Create adds a course owned by teacherID
func (s *courseServiceImpl) Create(ctx context.Context, teacherID uuid.UUID, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Duration:    strings.TrimSpace(req.Duration),
		TeacherID:   teacherID,
	}

	switch {
	case course.Title == "":
		return nil, apperrors.NewValidationError("title is required")
	case course.Description == "":
		return nil, apperrors.NewValidationError("description is required")
	case course.Duration == "":
		return nil, apperrors.NewValidationError("duration is required")
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	s.invalidateList(ctx)

	s.logger.Info().Str("courseID", course.ID.String()).Str("teacherID", teacherID.String()).Msg("Course created")
	return course, nil
}

// List returns every course with its teacher's name and email
func (s *courseServiceImpl) List(ctx context.Context) ([]*models.Course, error) {
	if data, ok := s.cache.Get(ctx, courseListCacheKey); ok {
		var courses []*models.Course
		if err := json.Unmarshal(data, &courses); err == nil {
			return courses, nil
		}
		s.logger.Warn().Msg("Discarding undecodable cached course list")
	}

	gen := s.listGeneration()
	courses, err := s.courseRepo.ListWithTeacher(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}

	if data, err := json.Marshal(courses); err == nil {
		s.storeList(ctx, gen, data)
	}
	return courses, nil
}

func (s *courseServiceImpl) listGeneration() uint64 {
	s.listMu.Lock()
	defer s.listMu.Unlock()
	return s.listGen
}

func (s *courseServiceImpl) invalidateList(ctx context.Context) {
	s.listMu.Lock()
	defer s.listMu.Unlock()
	s.listGen++
	s.cache.Delete(ctx, courseListCacheKey)
}

// storeList caches data unless the list was invalidated after gen was read.
func (s *courseServiceImpl) storeList(ctx context.Context, gen uint64, data []byte) {
	s.listMu.Lock()
	defer s.listMu.Unlock()
	if s.listGen != gen {
		s.logger.Debug().Msg("Course list changed during read, not caching")
		return
	}
	s.cache.Set(ctx, courseListCacheKey, data, s.listTTL)
}
