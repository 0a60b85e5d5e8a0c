package main

import (
	"log"
	"time"

	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/controllers"
	"github.com/toolshedhq/toolshed/routes"
	"github.com/toolshedhq/toolshed/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Create default admin account
	if err := controllers.CreateDefaultAdmin(); err != nil {
		utils.LogError("Failed to create default admin: %v", err)
		log.Fatal("Failed to create default admin:", err)
	}

	// Create default category if none exists
	if err := controllers.CreateDefaultCategory(); err != nil {
		utils.LogError("Failed to create default category: %v", err)
		log.Fatal("Failed to create default category:", err)
	}

	// Evict expired sessions in the background
	stopCleanup := utils.Sessions.StartCleanup(time.Hour)
	defer close(stopCleanup)

	// Set up router with middleware and all routes
	router := routes.SetupRouter()

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
