package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

func TestAuthorize(t *testing.T) {
	tests := []struct {
		op      Operation
		role    models.Role
		allowed bool
	}{
		{OpCreateCourse, models.RoleTeacher, true},
		{OpCreateCourse, models.RoleStudent, false},
		{OpEnroll, models.RoleStudent, true},
		{OpEnroll, models.RoleTeacher, false},
		{OpListMyEnrollments, models.RoleStudent, true},
		{OpListCourseStudents, models.RoleStudent, false},
		{OpCreateAssignment, models.RoleTeacher, true},
		{OpSubmit, models.RoleStudent, true},
		{OpSubmit, models.RoleTeacher, false},
		{OpListSubmissions, models.RoleTeacher, true},
		{OpGradeSubmission, models.RoleTeacher, true},
		{OpGradeSubmission, models.RoleStudent, false},
		{OpListMyGrades, models.RoleStudent, true},
		{OpListMyGrades, models.RoleTeacher, false},
		{OpCreateCourse, models.Role("Admin"), false},
		{Operation("course.delete"), models.RoleTeacher, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.op)+"/"+string(tt.role), func(t *testing.T) {
			err := Authorize(tt.op, tt.role)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
			assert.Equal(t, apperrors.KindWrongRole, apperrors.KindOf(err))
		})
	}
}

func TestEveryOperationHasARole(t *testing.T) {
	ops := []Operation{
		OpCreateCourse, OpEnroll, OpListMyEnrollments, OpListCourseStudents,
		OpCreateAssignment, OpSubmit, OpListSubmissions, OpGradeSubmission, OpListMyGrades,
	}
	for _, op := range ops {
		role, ok := RequiredRole(op)
		assert.True(t, ok, op)
		assert.True(t, role.Valid(), op)
	}
}
