package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/controllers"
	"github.com/toolshedhq/toolshed/middleware"
)

// initAdminRoutes initializes all admin-only routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		// Dashboard
		admin.GET("/dashboard", controllers.AdminDashboard)

		// Staff management
		admin.POST("/users", controllers.CreateStaffUser)
		admin.GET("/users", controllers.ListStaffUsers)
		admin.PATCH("/users/:id/active", controllers.SetStaffActive)

		// Category management
		admin.POST("/categories", controllers.CreateCategory)
		admin.PUT("/categories/:id", controllers.UpdateCategory)
		admin.DELETE("/categories/:id", controllers.DeleteCategory)

		// Tool retirement and removal
		admin.DELETE("/tools/:id", controllers.DeleteTool)

		// File removal
		admin.DELETE("/files/:id", controllers.DeleteFileRecord)

		// Damage report resolution
		admin.PATCH("/damage-reports/:id/resolve", controllers.ResolveDamageReport)

		// Reports
		admin.GET("/reports/overdue/excel", controllers.DownloadOverdueReportExcel)
		admin.POST("/reports/overdue/notices", controllers.SendOverdueNotices)
	}
}
