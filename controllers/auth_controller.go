package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"golang.org/x/crypto/bcrypt"
)

// LoginRequest represents the staff login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// Login handles staff authentication and opens a session
func Login(c *gin.Context) {
	utils.LogInfo("Login called")

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Processing login request for email: %s", req.Email)

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.LogError("User not found for email: %s", req.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.LogError("Invalid password for user: %s", user.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !user.Active {
		utils.LogError("Deactivated user attempted login: %s", user.Email)
		utils.Forbidden(c, "Account is deactivated")
		return
	}

	token, err := utils.Sessions.Create(user.ID)
	if err != nil {
		utils.LogError("Failed to create session for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create session", nil)
		return
	}

	// Update last login, best effort
	user.LastLoginAt = time.Now()
	if err := config.DB.Save(&user).Error; err != nil {
		utils.LogError("Failed to update last login for user %d: %v", user.ID, err)
	}

	history := models.LoginHistory{
		UserID:    user.ID,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
	if err := config.DB.Create(&history).Error; err != nil {
		utils.LogError("Failed to record login history for user %d: %v", user.ID, err)
	}

	maxAge := int(utils.SessionExpiry / time.Second)
	c.SetCookie(utils.SessionCookieName, token, maxAge, "/", "", false, true)

	utils.LogInfo("Login successful: %s", user.Email)
	utils.Success(c, "Login successful", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// Logout deletes the current session
func Logout(c *gin.Context) {
	utils.LogInfo("Logout called")

	token, err := c.Cookie(utils.SessionCookieName)
	if err == nil && token != "" {
		utils.Sessions.Delete(token)
	}
	c.SetCookie(utils.SessionCookieName, "", -1, "/", "", false, true)

	utils.Success(c, "Logged out successfully", nil)
}

// Me returns the authenticated user
func Me(c *gin.Context) {
	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}
	user, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.InternalServerError(c, "Invalid user type", nil)
		return
	}

	utils.Success(c, "Current user", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
