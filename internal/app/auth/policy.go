package auth

import (
	"fmt"

	"github.com/yigit/lms/internal/app/models"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// Operation names a role-gated action.
type Operation string

const (
	OpCreateCourse       Operation = "course.create"
	OpEnroll             Operation = "course.enroll"
	OpListMyEnrollments  Operation = "course.my_enrollments"
	OpListCourseStudents Operation = "course.students"
	OpCreateAssignment   Operation = "assignment.create"
	OpSubmit             Operation = "assignment.submit"
	OpListSubmissions    Operation = "assignment.submissions"
	OpGradeSubmission    Operation = "submission.grade"
	OpListMyGrades       Operation = "submission.my_grades"
)

var requiredRoles = map[Operation]models.Role{
	OpCreateCourse:       models.RoleTeacher,
	OpEnroll:             models.RoleStudent,
	OpListMyEnrollments:  models.RoleStudent,
	OpListCourseStudents: models.RoleTeacher,
	OpCreateAssignment:   models.RoleTeacher,
	OpSubmit:             models.RoleStudent,
	OpListSubmissions:    models.RoleTeacher,
	OpGradeSubmission:    models.RoleTeacher,
	OpListMyGrades:       models.RoleStudent,
}

// RequiredRole returns the role op is restricted to.
func RequiredRole(op Operation) (models.Role, bool) {
	role, ok := requiredRoles[op]
	return role, ok
}

// Authorize reports whether a caller with role may perform op. It does not
// touch storage; ownership is checked separately by AuthorizationService.
// Unknown operations are denied.
func Authorize(op Operation, role models.Role) error {
	required, ok := RequiredRole(op)
	if !ok {
		return apperrors.NewForbiddenError(apperrors.KindWrongRole, fmt.Sprintf("operation %q is not permitted", op))
	}
	if role != required {
		return apperrors.NewForbiddenError(apperrors.KindWrongRole, fmt.Sprintf("only %s accounts may perform this action", required))
	}
	return nil
}
