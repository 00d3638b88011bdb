package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorWrapsSentinel(t *testing.T) {
	err := fmt.Errorf("enroll: %w", ErrAlreadyEnrolled)

	assert.ErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrResourceNotFound)
	assert.Equal(t, "already enrolled", Message(err, "fallback"))
}

func TestForbiddenKinds(t *testing.T) {
	wrongRole := NewForbiddenError(KindWrongRole, "students only")
	notOwner := fmt.Errorf("grade: %w", NewForbiddenError(KindNotOwner, "not your course"))

	assert.ErrorIs(t, wrongRole, ErrPermissionDenied)
	assert.ErrorIs(t, notOwner, ErrPermissionDenied)
	assert.Equal(t, KindWrongRole, KindOf(wrongRole))
	assert.Equal(t, KindNotOwner, KindOf(notOwner))
	assert.Equal(t, ForbiddenKind(""), KindOf(ErrCourseNotFound))
}

func TestMessageFallback(t *testing.T) {
	assert.Equal(t, "fallback", Message(errors.New("boom"), "fallback"))
	assert.Equal(t, "validation failed", (&CustomError{Err: ErrValidationFailed}).Error())
}
