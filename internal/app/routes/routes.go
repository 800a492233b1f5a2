package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/villageedu/api/internal/app/controllers"
	"github.com/villageedu/api/internal/app/models/dto"
	"github.com/villageedu/api/internal/middleware"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	contactController *controllers.ContactController,
	analyticsController *controllers.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// --- Student accounts ---
	student := api.Group("/student")
	{
		student.POST("/register", authController.RegisterStudent)
		student.POST("/login", authController.LoginStudent)
		student.GET("/me", authMiddleware.StudentAuth(), authController.StudentProfile)
	}

	// --- Admin accounts and analytics ---
	admin := api.Group("/admin")
	{
		admin.POST("/register", authController.RegisterAdmin)
		admin.POST("/login", authController.LoginAdmin)

		adminProtected := admin.Group("")
		adminProtected.Use(authMiddleware.AdminAuth())
		{
			adminProtected.GET("/analytics", analyticsController.Overview)
			adminProtected.GET("/analytics/course/:courseId", analyticsController.CourseAnalytics)
			adminProtected.GET("/analytics/category/:category", analyticsController.CategoryAnalytics)
			adminProtected.GET("/dashboard/summary", analyticsController.DashboardSummary)
		}
	}

	// --- Course catalog: public reads, admin writes ---
	course := api.Group("/course")
	{
		course.GET("", courseController.GetCourses)
		course.GET("/:id", courseController.GetCourse)

		courseAdmin := course.Group("")
		courseAdmin.Use(authMiddleware.AdminAuth())
		{
			courseAdmin.POST("", courseController.CreateCourse)
			courseAdmin.PUT("/:id", courseController.UpdateCourse)
			courseAdmin.DELETE("/:id", courseController.DeleteCourse)
		}
	}

	// --- Enrollment ---
	enroll := api.Group("/enroll")
	enroll.Use(authMiddleware.StudentAuth())
	{
		enroll.POST("", enrollmentController.Enroll)
		enroll.GET("/my-courses", enrollmentController.MyCourses)
	}

	// --- Contact form: public submission, admin tooling ---
	contact := api.Group("/contact")
	{
		contact.POST("", contactController.SubmitContact)

		contactAdmin := contact.Group("")
		contactAdmin.Use(authMiddleware.AdminAuth())
		{
			contactAdmin.GET("/contacts", contactController.ListContacts)
			contactAdmin.GET("/contacts/search", contactController.SearchContacts)
			contactAdmin.GET("/contacts/:id", contactController.GetContact)
			contactAdmin.DELETE("/contacts/:id", contactController.DeleteContact)

			contactAdmin.GET("/analysis/dashboard", contactController.Dashboard)
			contactAdmin.GET("/analysis/category", contactController.CategoryAnalysis)
			contactAdmin.GET("/analysis/category/:category", contactController.CategoryReport)
			contactAdmin.GET("/analysis/category/:category/export", contactController.ExportCategoryReport)
		}
	}
}

// SetupHealth registers the liveness endpoint. A nil db skips the database check.
func SetupHealth(router *gin.Engine, db Pinger) {
	router.GET("/api/health", func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.Ping(ctx); err != nil {
				detail := dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "Database unavailable")
				c.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(detail))
				return
			}
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"status": "ok"}, ""))
	})
}
