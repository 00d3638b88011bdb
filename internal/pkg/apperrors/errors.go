package apperrors

import "errors"

// Sentinel errors. Every error that crosses the service boundary wraps one of
// these; anything else is reported to clients as an internal error.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")

	ErrPermissionDenied = errors.New("permission denied")

	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")
)

// Domain flavoured aliases, so callers can still match on the broad class.
var (
	ErrUserNotFound       = NewNotFoundError("user not found")
	ErrCourseNotFound     = NewNotFoundError("course not found")
	ErrAssignmentNotFound = NewNotFoundError("assignment not found")
	ErrSubmissionNotFound = NewNotFoundError("submission not found")

	ErrEmailAlreadyExists = NewConflictError("email already in use")
	ErrAlreadyEnrolled    = NewConflictError("already enrolled")
	ErrAlreadySubmitted   = NewConflictError("already submitted")
)

// ForbiddenKind tells a wrong-role rejection apart from an ownership one.
type ForbiddenKind string

const (
	KindWrongRole ForbiddenKind = "WRONG_ROLE"
	KindNotOwner  ForbiddenKind = "NOT_OWNER"
)

// CustomError carries a client-safe message on top of a sentinel.
type CustomError struct {
	Err     error
	Message string
	Code    string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

func NewValidationError(message string) *CustomError {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

func NewNotFoundError(message string) *CustomError {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

func NewConflictError(message string) *CustomError {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission error tagged with its kind.
func NewForbiddenError(kind ForbiddenKind, message string) *CustomError {
	return &CustomError{Err: ErrPermissionDenied, Message: message, Code: string(kind)}
}

// KindOf returns the forbidden kind of err, or "" if err is not a permission error.
func KindOf(err error) ForbiddenKind {
	var ce *CustomError
	if errors.As(err, &ce) && errors.Is(ce.Err, ErrPermissionDenied) {
		return ForbiddenKind(ce.Code)
	}
	return ""
}

// Message returns the client-safe message attached to err, or fallback.
func Message(err error, fallback string) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback
}
