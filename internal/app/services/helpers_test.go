package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/app/repositories/mocks"
	"github.com/yigit/lms/internal/pkg/events"
)

var nopLogger = zerolog.Nop()

type repoMocks struct {
	users       *mocks.UserRepository
	courses     *mocks.CourseRepository
	enrollments *mocks.EnrollmentRepository
	assignments *mocks.AssignmentRepository
	submissions *mocks.SubmissionRepository
	authz       *appAuth.AuthorizationService
}

func newRepoMocks() *repoMocks {
	m := &repoMocks{
		users:       new(mocks.UserRepository),
		courses:     new(mocks.CourseRepository),
		enrollments: new(mocks.EnrollmentRepository),
		assignments: new(mocks.AssignmentRepository),
		submissions: new(mocks.SubmissionRepository),
	}
	m.authz = appAuth.NewAuthorizationService(m.courses, m.assignments, m.submissions)
	return m
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryCache struct {
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *memoryCache) Set(_ context.Context, key string, data []byte, _ time.Duration) {
	c.data[key] = data
}

func (c *memoryCache) Delete(_ context.Context, key string) {
	delete(c.data, key)
}

func (c *memoryCache) Close() error { return nil }

func ptr[T any](v T) *T { return &v }

func jsonBody(t *testing.T, v interface{}) dto.RawBody {
	t.Helper()
	body, err := dto.NewRawBody(v)
	require.NoError(t, err)
	return body
}
