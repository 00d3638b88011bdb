package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/lms/internal/app/services"
	"github.com/yigit/lms/internal/middleware"
	"github.com/yigit/lms/internal/pkg/apperrors"
)

// AssignmentController handles assignment, submission and grading endpoints
type AssignmentController struct {
	assignmentService services.AssignmentService
	submissionService services.SubmissionService
	logger            zerolog.Logger
}

// NewAssignmentController creates a new AssignmentController
func NewAssignmentController(assignmentService services.AssignmentService, submissionService services.SubmissionService, logger zerolog.Logger) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		submissionService: submissionService,
		logger:            logger,
	}
}

// CreateAssignment adds an assignment to a course owned by the caller
// @Summary Create an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param courseId path string true "Course ID"
// @Param request body dto.CreateAssignmentRequest true "Assignment"
// @Success 201 {object} models.Assignment
// @Failure 400 {object} dto.ErrorResponse "Missing field or bad due date"
// @Failure 403 {object} dto.ErrorResponse "Not the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /assignments/{courseId} [post]
func (c *AssignmentController) CreateAssignment(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	courseID, ok := middleware.ParseUUIDParam(ctx, "courseId")
	if !ok {
		return
	}

	body, ok := middleware.ReadRawBody(ctx)
	if !ok {
		return
	}

	assignment, err := c.assignmentService.Create(ctx.Request.Context(), identity.ID, courseID, body)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, assignment)
}

// Submit records the calling student's answer
// @Summary Submit an assignment
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Param request body dto.SubmitRequest true "Submission"
// @Success 201 {object} models.Submission
// @Failure 400 {object} dto.ErrorResponse "Missing content"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Failure 409 {object} dto.ErrorResponse "Already submitted"
// @Router /assignments/submit/{assignmentId} [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	assignmentID, ok := middleware.ParseUUIDParam(ctx, "assignmentId")
	if !ok {
		return
	}

	body, ok := middleware.ReadRawBody(ctx)
	if !ok {
		return
	}

	submission, err := c.submissionService.Submit(ctx.Request.Context(), identity.ID, assignmentID, body)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, submission)
}

// ListSubmissions lists an assignment's submissions for its owning teacher
// @Summary List submissions
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Param assignmentId path string true "Assignment ID"
// @Success 200 {array} models.Submission
// @Failure 403 {object} dto.ErrorResponse "Not the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Assignment not found"
// @Router /assignments/{assignmentId}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	assignmentID, ok := middleware.ParseUUIDParamOrNotFound(ctx, "assignmentId", apperrors.ErrAssignmentNotFound)
	if !ok {
		return
	}

	submissions, err := c.assignmentService.ListSubmissions(ctx.Request.Context(), identity.ID, assignmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submissions)
}

// Grade grades a submission
// @Summary Grade a submission
// @Description Sets the grade (0-100). Feedback is replaced only when provided.
// @Tags assignments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param submissionId path string true "Submission ID"
// @Param request body dto.GradeRequest true "Grade"
// @Success 200 {object} models.Submission
// @Failure 400 {object} dto.ErrorResponse "Missing or out of range grade"
// @Failure 403 {object} dto.ErrorResponse "Not the owning teacher"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /assignments/grade/{submissionId} [post]
func (c *AssignmentController) Grade(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}
	submissionID, ok := middleware.ParseUUIDParam(ctx, "submissionId")
	if !ok {
		return
	}

	body, ok := middleware.ReadRawBody(ctx)
	if !ok {
		return
	}

	submission, err := c.submissionService.Grade(ctx.Request.Context(), identity.ID, submissionID, body)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, submission)
}

// MyGrades lists the calling student's graded submissions
// @Summary List my grades
// @Tags assignments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.GradeEntry
// @Failure 403 {object} dto.ErrorResponse "Caller is not a Student"
// @Router /assignments/me/grades [get]
func (c *AssignmentController) MyGrades(ctx *gin.Context) {
	identity, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	grades, err := c.submissionService.ListGradesForStudent(ctx.Request.Context(), identity.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, grades)
}
