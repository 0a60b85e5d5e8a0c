package controllers

import (
	"os"

	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"golang.org/x/crypto/bcrypt"
)

// CreateDefaultAdmin creates the initial admin account from ADMIN_EMAIL
// and ADMIN_PASSWORD if it does not exist yet
func CreateDefaultAdmin() error {
	utils.LogInfo("CreateDefaultAdmin called")

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping default admin")
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("Failed to hash admin password: %v", err)
		return err
	}

	admin := models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         os.Getenv("ADMIN_NAME"),
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}

	if err := config.DB.FirstOrCreate(&admin, models.User{Email: admin.Email}).Error; err != nil {
		utils.LogError("Failed to create default admin: %v", err)
		return err
	}
	utils.LogInfo("Default admin ready: %s", admin.Email)
	return nil
}

// CreateDefaultCategory creates a root category if none exists
func CreateDefaultCategory() error {
	var count int64
	if err := config.DB.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count == 0 {
		utils.LogInfo("No categories found, creating default category")
		defaultCategory := models.Category{
			Name: "General",
		}
		return config.DB.Create(&defaultCategory).Error
	}

	return nil
}
