package routes

import (
	"net/http"

	"permit-management-api/controllers"
	"permit-management-api/middleware"
	"permit-management-api/models"

	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the API surface under /api/v1.
func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api/v1")

	// Public endpoints
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	api.POST("/auth/login", controllers.Login)
	api.POST("/auth/request-otp", controllers.RequestOTP)
	api.POST("/auth/verify-otp", controllers.VerifyOTP)
	api.GET("/permit-types", controllers.GetPermitTypes)
	api.GET("/mmdas", controllers.GetMMDAs)
	api.GET("/mmdas/:id/departments", controllers.GetMMDADepartments)

	// Authenticated endpoints
	auth := api.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/auth/logout", controllers.Logout)
		auth.GET("/auth/me", controllers.GetProfile)
		auth.POST("/auth/onboarding", controllers.CompleteOnboarding)

		auth.POST("/applications", controllers.SubmitApplication)
		auth.GET("/applications", controllers.GetMyApplications)
		auth.GET("/applications/:id", controllers.GetApplication)
		auth.GET("/applications/:id/history", controllers.GetStatusHistory)
		auth.POST("/applications/:id/inspections", controllers.RequestInspection)

		auth.GET("/inspections", controllers.GetUserInspections)
		auth.GET("/inspections/:id", controllers.GetInspection)
	}

	// Review workflow, staff only
	reviewer := api.Group("/review")
	reviewer.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleReviewOfficer, models.RoleAdmin))
	{
		reviewer.GET("/queue", controllers.GetReviewerQueue)
		reviewer.GET("/metrics", controllers.GetReviewerMetrics)
		reviewer.GET("/mmdas/:id/committees", controllers.GetMMDACommittees)
		reviewer.GET("/applications/:id", controllers.GetApplicationForReviewer)
		reviewer.POST("/applications/:id/start", controllers.StartReview)
		reviewer.POST("/applications/:id/decision", controllers.SubmitDecision)
		reviewer.POST("/applications/:id/steps/complete", controllers.CompleteReviewStep)
		reviewer.POST("/applications/:id/steps/flag", controllers.FlagReviewStep)
		reviewer.GET("/applications/:id/progress", controllers.GetReviewProgress)
		reviewer.POST("/applications/:id/inspections/schedule", controllers.ScheduleInspection)
	}

	// Inspection workload, officers only
	inspector := api.Group("/inspections")
	inspector.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleInspectionOfficer, models.RoleAdmin))
	{
		inspector.POST("/:id/complete", controllers.CompleteInspection)
		inspector.POST("/:id/photos", controllers.UploadInspectionPhoto)
		inspector.DELETE("/:id/photos/:photoID", controllers.DeleteInspectionPhoto)
	}

	violations := api.Group("/violations")
	violations.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleInspectionOfficer, models.RoleAdmin))
	{
		violations.GET("", controllers.GetInspectorViolations)
	}
}
