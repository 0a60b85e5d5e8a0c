package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"gorm.io/gorm"
)

// CheckinRequest represents a check-in request
type CheckinRequest struct {
	CheckoutID uint `json:"checkout_id" binding:"required"`
}

// CheckinTool returns a checked-out tool. The checkout row and the
// patron's overdue counter move in one transaction, so concurrent
// check-ins can neither double-return a checkout nor miscount overdue
// returns. WasOverdue latches: once true it stays true.
func CheckinTool(c *gin.Context) {
	utils.LogInfo("CheckinTool called")

	userVal, exists := c.Get("user")
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}
	volunteer, ok := userVal.(models.User)
	if !ok {
		utils.LogError("Invalid user type in context")
		utils.InternalServerError(c, "Invalid user type", nil)
		return
	}

	var req CheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkin request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var checkout models.Checkout
	err := config.DB.Preload("Tool").Preload("Patron").First(&checkout, req.CheckoutID).Error
	if err != nil {
		utils.LogError("Checkout %d not found: %v", req.CheckoutID, err)
		utils.NotFound(c, "Checkout not found")
		return
	}

	if checkout.Status == models.StatusReturned {
		utils.LogError("Checkout %d already returned", checkout.ID)
		utils.BadRequest(c, "This item has already been checked in", nil)
		return
	}

	now := time.Now()
	isOverdue := now.After(checkout.DueDate)

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to process check-in", nil)
		return
	}

	// Guard on status so a concurrent check-in of the same checkout
	// updates nothing here
	result := tx.Model(&models.Checkout{}).
		Where("id = ? AND status = ?", checkout.ID, models.StatusCheckedOut).
		Updates(map[string]interface{}{
			"checkin_date":         now,
			"checkin_volunteer_id": volunteer.ID,
			"status":               models.StatusReturned,
			"was_overdue":          isOverdue || checkout.WasOverdue,
		})
	if result.Error != nil {
		tx.Rollback()
		utils.LogError("Failed to update checkout %d: %v", checkout.ID, result.Error)
		utils.InternalServerError(c, "Failed to process check-in", nil)
		return
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		utils.LogError("Checkout %d was returned concurrently", checkout.ID)
		utils.BadRequest(c, "This item has already been checked in", nil)
		return
	}

	if isOverdue {
		err := tx.Model(&models.Patron{}).
			Where("id = ?", checkout.PatronID).
			Update("overdue_count", gorm.Expr("overdue_count + 1")).Error
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to increment overdue count for patron %d: %v", checkout.PatronID, err)
			utils.InternalServerError(c, "Failed to process check-in", nil)
			return
		}
		utils.LogDebug("Incremented overdue count for patron %d", checkout.PatronID)
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit check-in: %v", err)
		utils.InternalServerError(c, "Failed to process check-in", nil)
		return
	}

	// Overdue notice is best effort and must not fail the check-in
	if isOverdue && checkout.Patron.Email != "" {
		err := utils.SendOverdueNotice(
			checkout.Patron.Email,
			checkout.Patron.FullName(),
			checkout.Tool.Name,
			checkout.DueDate.Format("2006-01-02"),
		)
		if err != nil {
			utils.LogError("Failed to send overdue notice to %s: %v", checkout.Patron.Email, err)
		}
	}

	utils.LogInfo("Checked in checkout %d (overdue: %v)", checkout.ID, isOverdue)
	utils.Success(c, fmt.Sprintf("Successfully checked in %s", checkout.Tool.Name), gin.H{
		"checkout_id": checkout.ID,
		"was_overdue": isOverdue || checkout.WasOverdue,
	})
}
