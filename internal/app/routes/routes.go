package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campushq/onboarding-api/internal/app/controllers"
	"github.com/campushq/onboarding-api/internal/app/models/dto"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	onboardingController *controllers.StudentOnboardingController,
	dropdownController *controllers.DropdownController,
) {
	onboarding := router.Group("/student-onboarding")
	{
		onboarding.GET("/", onboardingController.List)
		onboarding.POST("/create/", onboardingController.Create)
		onboarding.GET("/:id/", onboardingController.Retrieve)
		// The update endpoint accepts both verbs; either way only the
		// supplied fields are merged into the record.
		onboarding.PUT("/:id/update/", onboardingController.Update)
		onboarding.PATCH("/:id/update/", onboardingController.Update)
	}

	router.GET("/dropdown-options/", dropdownController.Options)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Keep a stable 404 shape for unknown routes as well.
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found")))
	})
}
