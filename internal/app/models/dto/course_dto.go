package dto

// CreateCourseRequest represents a course creation request
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required" example:"Intro"`
	Description string `json:"description" binding:"required" example:"An introduction"`
	Duration    string `json:"duration" binding:"required" example:"4 weeks"`
}
