package dto

// Assignment and submission requests carry no binding rules. Their fields
// are checked by the services, after existence and ownership.

// CreateAssignmentRequest represents an assignment creation request.
// DueDate accepts RFC 3339 or YYYY-MM-DD.
type CreateAssignmentRequest struct {
	Title       string `json:"title" example:"Week 1"`
	Description string `json:"description" example:"Read chapter one"`
	DueDate     string `json:"dueDate" example:"2030-01-15"`
}

// SubmitRequest represents a student's submission
type SubmitRequest struct {
	Content string `json:"content" example:"hello"`
}

// GradeRequest represents a grading request. A nil Feedback keeps the
// feedback already stored.
type GradeRequest struct {
	Grade    *float64 `json:"grade" example:"85"`
	Feedback *string  `json:"feedback,omitempty" example:"Well done"`
}
