package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/controllers"
	"github.com/toolshedhq/toolshed/middleware"
)

// initAPIRoutes initializes the routes available to any signed-in
// staff member (volunteers and admins)
func initAPIRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/login", controllers.Login)
	router.POST("/logout", controllers.Logout)

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/me", controllers.Me)

		// Categories
		protected.GET("/categories", controllers.ListCategories)

		// Tools
		protected.GET("/tools", controllers.ListTools)
		protected.GET("/tools/search", controllers.SearchTools)
		protected.GET("/tools/:id", controllers.GetTool)
		protected.POST("/tools", controllers.CreateTool)
		protected.PUT("/tools/:id", controllers.UpdateTool)

		// Damage reports
		protected.GET("/tools/:id/damage-reports", controllers.ListDamageReports)
		protected.POST("/tools/:id/damage-reports", controllers.CreateDamageReport)

		// Patrons
		protected.GET("/patrons", controllers.ListPatrons)
		protected.GET("/patrons/search", controllers.SearchPatrons)
		protected.GET("/patrons/:id", controllers.GetPatron)
		protected.POST("/patrons", controllers.CreatePatron)
		protected.PUT("/patrons/:id", controllers.UpdatePatron)

		// Checkouts
		protected.POST("/checkouts", controllers.CreateCheckout)
		protected.GET("/checkouts", controllers.ListCheckouts)
		protected.GET("/checkouts/:id/receipt", controllers.DownloadCheckoutReceipt)
		protected.POST("/checkins", controllers.CheckinTool)

		// File uploads
		protected.POST("/files", controllers.UploadFiles)
		protected.GET("/files/:id", controllers.ServeFile)
	}
}
