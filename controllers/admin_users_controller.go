package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"golang.org/x/crypto/bcrypt"
)

// StaffUserRequest represents the staff account creation request
type StaffUserRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone"`
	MailingStreet  string `json:"mailing_street"`
	MailingCity    string `json:"mailing_city"`
	MailingState   string `json:"mailing_state"`
	MailingZipcode string `json:"mailing_zipcode"`
	Role           string `json:"role"`
	TrainingDate   string `json:"training_date"`
}

// CreateStaffUser creates a volunteer or admin account (admin only)
func CreateStaffUser(c *gin.Context) {
	utils.LogInfo("CreateStaffUser called")

	adminVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}
	admin, ok := adminVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.InternalServerError(c, "Invalid user type", nil)
		return
	}

	var req StaffUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	role := strings.ToUpper(strings.TrimSpace(req.Role))
	if role == "" {
		role = models.RoleVolunteer
	}
	if role != models.RoleAdmin && role != models.RoleVolunteer {
		utils.LogError("Invalid role: %s", req.Role)
		utils.BadRequest(c, "Invalid input", gin.H{"role": "Role must be ADMIN or VOLUNTEER"})
		return
	}

	var existing models.User
	if err := config.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		utils.LogError("User with email %s already exists", req.Email)
		utils.Conflict(c, "A user with this email already exists", gin.H{"field": "email"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.LogError("Failed to hash password: %v", err)
		utils.InternalServerError(c, "Failed to create user", nil)
		return
	}

	trainedBy := admin.ID
	user := models.User{
		Email:          strings.TrimSpace(req.Email),
		PasswordHash:   string(hash),
		Name:           strings.TrimSpace(req.Name),
		Phone:          strings.TrimSpace(req.Phone),
		MailingStreet:  strings.TrimSpace(req.MailingStreet),
		MailingCity:    strings.TrimSpace(req.MailingCity),
		MailingState:   strings.TrimSpace(req.MailingState),
		MailingZipcode: strings.TrimSpace(req.MailingZipcode),
		Role:           role,
		Active:         true,
		TrainedByID:    &trainedBy,
	}
	if req.TrainingDate != "" {
		if t, err := time.Parse("2006-01-02", req.TrainingDate); err == nil {
			user.TrainingDate = &t
		}
	}

	if err := config.DB.Create(&user).Error; err != nil {
		utils.LogError("Failed to create user: %v", err)
		utils.InternalServerError(c, "Failed to create user", nil)
		return
	}

	utils.LogInfo("Staff user created: %s (%s)", user.Email, user.Role)
	utils.Created(c, "User created successfully", gin.H{
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}

// ListStaffUsers returns all staff accounts (admin only)
func ListStaffUsers(c *gin.Context) {
	utils.LogInfo("ListStaffUsers called")

	var users []models.User
	if err := config.DB.Order("name asc").Find(&users).Error; err != nil {
		utils.LogError("Failed to load users: %v", err)
		utils.InternalServerError(c, "Failed to load users", nil)
		return
	}

	list := make([]gin.H, 0, len(users))
	for _, u := range users {
		list = append(list, gin.H{
			"id":            u.ID,
			"email":         u.Email,
			"name":          u.Name,
			"role":          u.Role,
			"active":        u.Active,
			"last_login_at": u.LastLoginAt,
		})
	}

	utils.Success(c, "Users retrieved successfully", gin.H{"users": list})
}

// SetStaffActiveRequest toggles a staff account
type SetStaffActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SetStaffActive activates or deactivates a staff account (admin
// only). Deactivation takes effect on the user's next request, when
// the auth gate evicts their session.
func SetStaffActive(c *gin.Context) {
	utils.LogInfo("SetStaffActive called")

	var user models.User
	if err := config.DB.First(&user, c.Param("id")).Error; err != nil {
		utils.LogError("User not found: %v", err)
		utils.NotFound(c, "User not found")
		return
	}

	var req SetStaffActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if err := config.DB.Model(&user).Update("active", *req.Active).Error; err != nil {
		utils.LogError("Failed to update user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}

	utils.LogInfo("User %d active set to %v", user.ID, *req.Active)
	utils.Success(c, "User updated successfully", gin.H{
		"user": gin.H{"id": user.ID, "active": *req.Active},
	})
}
