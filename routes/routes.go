package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	// Middleware must be registered before any route
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// API version group
	api := router.Group("/v1")
	{
		// Initialize staff routes (login plus volunteer-level API)
		initAPIRoutes(api)

		// Initialize admin routes
		initAdminRoutes(api)
	}

	return router
}
