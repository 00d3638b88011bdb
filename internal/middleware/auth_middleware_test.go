package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newProtectedRouter(jwtSvc *auth.JWTService) *gin.Engine {
	m := NewAuthMiddleware(jwtSvc)
	r := gin.New()
	r.POST("/courses", m.JWTAuth(), m.RoleRequired(appAuth.OpCreateCourse), func(c *gin.Context) {
		identity, _ := CurrentIdentity(c)
		c.JSON(http.StatusOK, gin.H{"id": identity.ID})
	})
	return r
}

func TestJWTAuthAndRoleRequired(t *testing.T) {
	jwtSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", TokenExp: time.Hour})
	otherSvc := auth.NewJWTService(auth.JWTConfig{SecretKey: "other", TokenExp: time.Hour})
	router := newProtectedRouter(jwtSvc)

	teacherID := uuid.New()
	teacherToken, err := jwtSvc.Issue(auth.Identity{ID: teacherID, Role: models.RoleTeacher, Name: "T"})
	require.NoError(t, err)
	studentToken, err := jwtSvc.Issue(auth.Identity{ID: uuid.New(), Role: models.RoleStudent, Name: "S"})
	require.NoError(t, err)
	forgedToken, err := otherSvc.Issue(auth.Identity{ID: teacherID, Role: models.RoleTeacher, Name: "T"})
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   dto.ErrorCode
	}{
		{"missing header", "", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized, dto.ErrorCodeUnauthorized},
		{"garbage token", "Bearer not.a.jwt", http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"wrong signature", "Bearer " + forgedToken, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
		{"wrong role", "Bearer " + studentToken, http.StatusForbidden, dto.ErrorCodeWrongRole},
		{"teacher", "Bearer " + teacherToken, http.StatusOK, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/courses", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				assert.Contains(t, w.Body.String(), teacherID.String())
				return
			}
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}
