package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// PatronRequest represents the patron creation/update request
type PatronRequest struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	MailingStreet  string `json:"mailing_street"`
	MailingCity    string `json:"mailing_city"`
	MailingState   string `json:"mailing_state"`
	MailingZipcode string `json:"mailing_zipcode"`
}

func (r *PatronRequest) validationInput() utils.PatronInput {
	return utils.PatronInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		Email:          r.Email,
		Phone:          r.Phone,
		MailingStreet:  r.MailingStreet,
		MailingCity:    r.MailingCity,
		MailingState:   r.MailingState,
		MailingZipcode: r.MailingZipcode,
	}
}

// ListPatrons returns patrons ordered by name, paginated
func ListPatrons(c *gin.Context) {
	utils.LogInfo("ListPatrons called")

	pagination := utils.NewPagination(c)

	var total int64
	if err := config.DB.Model(&models.Patron{}).Count(&total).Error; err != nil {
		utils.LogError("Failed to count patrons: %v", err)
		utils.InternalServerError(c, "Failed to load patrons", nil)
		return
	}
	pagination.SetTotal(total)

	var patrons []models.Patron
	err := config.DB.Order("last_name asc, first_name asc").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&patrons).Error
	if err != nil {
		utils.LogError("Failed to load patrons: %v", err)
		utils.InternalServerError(c, "Failed to load patrons", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Patrons retrieved successfully", patrons, pagination)
}

// SearchPatrons searches patrons by first and/or last name
func SearchPatrons(c *gin.Context) {
	utils.LogInfo("SearchPatrons called")

	firstName := strings.TrimSpace(c.Query("first_name"))
	lastName := strings.TrimSpace(c.Query("last_name"))
	if firstName == "" && lastName == "" {
		utils.Success(c, "Patrons retrieved successfully", gin.H{"patrons": []models.Patron{}})
		return
	}

	query := config.DB.Model(&models.Patron{})
	if firstName != "" {
		query = query.Where("first_name LIKE ?", "%"+firstName+"%")
	}
	if lastName != "" {
		query = query.Where("last_name LIKE ?", "%"+lastName+"%")
	}

	var patrons []models.Patron
	if err := query.Order("last_name asc, first_name asc").Limit(50).Find(&patrons).Error; err != nil {
		utils.LogError("Failed to search patrons: %v", err)
		utils.InternalServerError(c, "Failed to search patrons", nil)
		return
	}

	utils.Success(c, "Patrons retrieved successfully", gin.H{"patrons": patrons})
}

// GetPatron returns a patron with their checkout history
func GetPatron(c *gin.Context) {
	utils.LogInfo("GetPatron called")

	var patron models.Patron
	err := config.DB.Preload("Checkouts").
		Preload("Checkouts.Tool").
		First(&patron, c.Param("id")).Error
	if err != nil {
		utils.LogError("Patron not found: %v", err)
		utils.NotFound(c, "Patron not found")
		return
	}

	utils.Success(c, "Patron retrieved successfully", gin.H{"patron": patron})
}

// CreatePatron handles patron registration
func CreatePatron(c *gin.Context) {
	utils.LogInfo("CreatePatron called")

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

	var req PatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if errs := utils.ValidatePatron(req.validationInput()); len(errs) > 0 {
		utils.LogError("Patron validation failed: %v", errs)
		utils.BadRequest(c, "Invalid input", errs)
		return
	}

	createdBy := user.ID
	patron := models.Patron{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		MailingStreet:  strings.TrimSpace(req.MailingStreet),
		MailingCity:    strings.TrimSpace(req.MailingCity),
		MailingState:   strings.TrimSpace(req.MailingState),
		MailingZipcode: strings.TrimSpace(req.MailingZipcode),
		CreatedByID:    &createdBy,
	}
	if err := config.DB.Create(&patron).Error; err != nil {
		utils.LogError("Failed to create patron: %v", err)
		utils.InternalServerError(c, "Failed to create patron", nil)
		return
	}

	utils.LogInfo("Patron created successfully: %s", patron.FullName())
	utils.Created(c, "Patron created successfully", gin.H{"patron": patron})
}

// UpdatePatron handles patron updates. The overdue count is not
// editable here; it only moves through check-in.
func UpdatePatron(c *gin.Context) {
	utils.LogInfo("UpdatePatron called")

	var patron models.Patron
	if err := config.DB.First(&patron, c.Param("id")).Error; err != nil {
		utils.LogError("Patron not found: %v", err)
		utils.NotFound(c, "Patron not found")
		return
	}

	var req PatronRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if errs := utils.ValidatePatron(req.validationInput()); len(errs) > 0 {
		utils.LogError("Patron validation failed: %v", errs)
		utils.BadRequest(c, "Invalid input", errs)
		return
	}

	updates := map[string]interface{}{
		"first_name":      strings.TrimSpace(req.FirstName),
		"last_name":       strings.TrimSpace(req.LastName),
		"email":           strings.TrimSpace(req.Email),
		"phone":           strings.TrimSpace(req.Phone),
		"mailing_street":  strings.TrimSpace(req.MailingStreet),
		"mailing_city":    strings.TrimSpace(req.MailingCity),
		"mailing_state":   strings.TrimSpace(req.MailingState),
		"mailing_zipcode": strings.TrimSpace(req.MailingZipcode),
	}
	if err := config.DB.Model(&patron).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update patron: %v", err)
		utils.InternalServerError(c, "Failed to update patron", nil)
		return
	}

	utils.LogInfo("Patron updated successfully: %s", patron.FullName())
	utils.Success(c, "Patron updated successfully", gin.H{"patron": patron})
}
