package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/controllers"
	"github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/middleware"
	"github.com/yigit/lms/internal/pkg/auth"
	"github.com/yigit/lms/internal/pkg/cache"
	"github.com/yigit/lms/internal/pkg/events"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := newMemStore()
	users, courses := memUsers{store}, memCourses{store}
	enrollments, assignments, submissions := memEnrollments{store}, memAssignments{store}, memSubmissions{store}
	lgr := zerolog.Nop()

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret", TokenExp: time.Hour, TokenIssuer: "lms.test"})
	authz := appAuth.NewAuthorizationService(courses, assignments, submissions)

	authService := services.NewAuthService(users, jwtService, auth.NewPasswordHasher(4), lgr)
	courseService := services.NewCourseService(courses, cache.Noop{}, time.Minute, lgr)
	enrollmentService := services.NewEnrollmentService(enrollments, courses, authz, events.Noop{}, lgr)
	assignmentService := services.NewAssignmentService(assignments, submissions, authz, lgr)
	submissionService := services.NewSubmissionService(submissions, assignments, authz, events.Noop{}, lgr)

	router := gin.New()
	SetupRouter(router,
		controllers.NewAuthController(authService, lgr),
		controllers.NewCourseController(courseService, enrollmentService, lgr),
		controllers.NewAssignmentController(assignmentService, submissionService, lgr),
		middleware.NewAuthMiddleware(jwtService),
	)
	return &testServer{t: t, router: router}
}

func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) register(name, email, role string) (token, id string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": "Passw0rd!", "role": role,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User.ID
}

func decodeID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ID)
	return resp.ID
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Code
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestEnrollGradeScenario(t *testing.T) {
	s := newTestServer(t)
	teacher, _ := s.register("Alice", "alice@example.com", "Teacher")
	student, _ := s.register("Bob", "bob@example.com", "Student")

	w := s.do(http.MethodPost, "/api/courses", teacher, map[string]string{
		"title": "Intro", "description": "...", "duration": "4 weeks",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	courseID := decodeID(t, w)

	w = s.do(http.MethodPost, "/api/courses/"+courseID+"/enroll", student, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/api/courses/"+courseID+"/enroll", student, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "RES_004", errorCode(t, w))

	w = s.do(http.MethodGet, "/api/courses/me/enrollments", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Intro"`)

	w = s.do(http.MethodGet, "/api/courses/"+courseID+"/students", teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@example.com")

	due := time.Now().Add(7 * 24 * time.Hour).UTC().Format(time.RFC3339)
	w = s.do(http.MethodPost, "/api/assignments/"+courseID, teacher, map[string]string{
		"title": "Week 1", "description": "Say hello", "dueDate": due,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assignmentID := decodeID(t, w)

	w = s.do(http.MethodPost, "/api/assignments/submit/"+assignmentID, student, map[string]string{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	submissionID := decodeID(t, w)

	w = s.do(http.MethodPost, "/api/assignments/submit/"+assignmentID, student, map[string]string{"content": "hello again"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodGet, "/api/assignments/"+assignmentID+"/submissions", teacher, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"content":"hello"`)

	w = s.do(http.MethodPost, "/api/assignments/grade/"+submissionID, teacher, map[string]interface{}{"grade": 85})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/api/assignments/me/grades", student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var grades []struct {
		Grade       float64 `json:"grade"`
		CourseTitle string  `json:"courseTitle"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &grades))
	require.Len(t, grades, 1)
	assert.Equal(t, 85.0, grades[0].Grade)
	assert.Equal(t, "Intro", grades[0].CourseTitle)
}

func TestOwnershipAndRoleGates(t *testing.T) {
	s := newTestServer(t)
	owner, _ := s.register("Alice", "alice@example.com", "Teacher")
	other, _ := s.register("Carol", "carol@example.com", "Teacher")
	student, _ := s.register("Bob", "bob@example.com", "Student")

	w := s.do(http.MethodPost, "/api/courses", owner, map[string]string{
		"title": "Intro", "description": "...", "duration": "4 weeks",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	courseID := decodeID(t, w)

	t.Run("student cannot create a course", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/courses", student, map[string]string{
			"title": "X", "description": "Y", "duration": "Z",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "PERM_001", errorCode(t, w))
	})

	t.Run("teacher cannot enroll", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/courses/"+courseID+"/enroll", owner, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("other teacher cannot add an assignment", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/"+courseID, other, map[string]string{
			"title": "Week 1", "description": "Say hello", "dueDate": "2030-01-15",
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "PERM_002", errorCode(t, w))
	})

	t.Run("ownership is checked before fields", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/"+courseID, other, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = s.do(http.MethodPost, "/api/assignments/"+courseID, other, map[string]interface{}{"dueDate": 5})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown course is reported before a mistyped body", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/"+uuid.NewString(), owner, map[string]interface{}{"dueDate": 5})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("owner with a mistyped body", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/"+courseID, owner, map[string]interface{}{"dueDate": 5})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed course id on the roster is not found", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/courses/not-a-uuid/students", owner, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	w = s.do(http.MethodPost, "/api/assignments/"+courseID, owner, map[string]string{
		"title": "Week 1", "description": "Say hello", "dueDate": "2030-01-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assignmentID := decodeID(t, w)

	w = s.do(http.MethodPost, "/api/assignments/submit/"+assignmentID, student, map[string]string{"content": "hello"})
	require.Equal(t, http.StatusCreated, w.Code)
	submissionID := decodeID(t, w)

	t.Run("other teacher cannot grade", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/grade/"+submissionID, other, map[string]interface{}{"grade": 50})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("other teacher with a string grade is still forbidden", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/grade/"+submissionID, other, map[string]interface{}{"grade": "85"})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "PERM_002", errorCode(t, w))
	})

	t.Run("owner with a string grade", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/grade/"+submissionID, owner, map[string]interface{}{"grade": "85"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("grade with three decimals", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/grade/"+submissionID, owner, map[string]interface{}{"grade": 85.555})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("malformed assignment id on submissions is not found", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/assignments/not-a-uuid/submissions", owner, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("grade out of range", func(t *testing.T) {
		w := s.do(http.MethodPost, "/api/assignments/grade/"+submissionID, owner, map[string]interface{}{"grade": 101})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/assignments/me/grades", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRegisterAndLoginErrors(t *testing.T) {
	s := newTestServer(t)
	s.register("Alice", "alice@example.com", "Teacher")

	tests := []struct {
		name     string
		path     string
		body     map[string]string
		expected int
	}{
		{
			name:     "duplicate email differs only in case",
			path:     "/api/auth/register",
			body:     map[string]string{"name": "A", "email": "ALICE@example.com", "password": "x", "role": "Teacher"},
			expected: http.StatusConflict,
		},
		{
			name:     "unknown role",
			path:     "/api/auth/register",
			body:     map[string]string{"name": "A", "email": "a@example.com", "password": "x", "role": "Admin"},
			expected: http.StatusBadRequest,
		},
		{
			name:     "password longer than 72 bytes",
			path:     "/api/auth/register",
			body:     map[string]string{"name": "D", "email": "dave@example.com", "password": strings.Repeat("x", 80), "role": "Student"},
			expected: http.StatusCreated,
		},
		{
			name:     "wrong password",
			path:     "/api/auth/login",
			body:     map[string]string{"email": "alice@example.com", "password": "nope"},
			expected: http.StatusUnauthorized,
		},
		{
			name:     "login succeeds",
			path:     "/api/auth/login",
			body:     map[string]string{"email": "alice@example.com", "password": "Passw0rd!"},
			expected: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, tt.expected, w.Code, w.Body.String())
		})
	}
}

func TestEnrollUnknownCourse(t *testing.T) {
	s := newTestServer(t)
	student, _ := s.register("Bob", "bob@example.com", "Student")

	w := s.do(http.MethodPost, "/api/courses/00000000-0000-0000-0000-000000000001/enroll", student, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPost, "/api/courses/not-a-uuid/enroll", student, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
