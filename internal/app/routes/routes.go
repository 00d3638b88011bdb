package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appAuth "github.com/yigit/lms/internal/app/auth"
	"github.com/yigit/lms/internal/app/controllers"
	"github.com/yigit/lms/internal/app/models/dto"
	"github.com/yigit/lms/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	assignmentController *controllers.AssignmentController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{OK: true})
	})

	api := router.Group("/api")

	// --- Public Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
	}

	// requires returns the JWT check followed by the role gate for op
	requires := func(op appAuth.Operation) []gin.HandlerFunc {
		return []gin.HandlerFunc{authMiddleware.JWTAuth(), authMiddleware.RoleRequired(op)}
	}

	// --- Course routes ---
	courses := api.Group("/courses")
	{
		courses.GET("", courseController.ListCourses)
		courses.POST("", append(requires(appAuth.OpCreateCourse), courseController.CreateCourse)...)
		courses.GET("/me/enrollments", append(requires(appAuth.OpListMyEnrollments), courseController.MyEnrollments)...)
		courses.POST("/:id/enroll", append(requires(appAuth.OpEnroll), courseController.Enroll)...)
		courses.GET("/:id/students", append(requires(appAuth.OpListCourseStudents), courseController.ListStudents)...)
	}

	// --- Assignment and submission routes ---
	assignments := api.Group("/assignments")
	{
		assignments.POST("/:courseId", append(requires(appAuth.OpCreateAssignment), assignmentController.CreateAssignment)...)
		assignments.POST("/submit/:assignmentId", append(requires(appAuth.OpSubmit), assignmentController.Submit)...)
		assignments.POST("/grade/:submissionId", append(requires(appAuth.OpGradeSubmission), assignmentController.Grade)...)
		assignments.GET("/me/grades", append(requires(appAuth.OpListMyGrades), assignmentController.MyGrades)...)
		assignments.GET("/:assignmentId/submissions", append(requires(appAuth.OpListSubmissions), assignmentController.ListSubmissions)...)
	}
}
