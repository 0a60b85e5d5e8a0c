package controllers

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// CheckoutRequest represents a batch checkout request
type CheckoutRequest struct {
	PatronID uint   `json:"patron_id" binding:"required"`
	ToolIDs  []uint `json:"tool_ids" binding:"required,min=1"`
	DueDate  string `json:"due_date" binding:"required"`
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// CreateCheckout checks out a batch of tools to a patron. All rows are
// created inside one serializable transaction with availability
// re-checked under that isolation, so a multi-tool request either
// succeeds completely or not at all - two concurrent requests for the
// last unit of a tool cannot both commit.
func CreateCheckout(c *gin.Context) {
	utils.LogInfo("CreateCheckout called")

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

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		utils.LogError("Invalid due date %q: %v", req.DueDate, err)
		utils.BadRequest(c, "Invalid input", gin.H{"due_date": "Due date must be YYYY-MM-DD"})
		return
	}

	now := time.Now()
	if !dueDate.After(now) {
		utils.LogError("Due date %s is not in the future", req.DueDate)
		utils.BadRequest(c, "Invalid input", gin.H{"due_date": "Due date must be in the future"})
		return
	}
	checkoutPeriod := int(math.Ceil(dueDate.Sub(now).Hours() / 24))

	var patron models.Patron
	if err := config.DB.First(&patron, req.PatronID).Error; err != nil {
		utils.LogError("Patron %d not found: %v", req.PatronID, err)
		utils.NotFound(c, "Patron not found")
		return
	}

	var tools []models.Tool
	if err := config.DB.Where("id IN ?", req.ToolIDs).Find(&tools).Error; err != nil {
		utils.LogError("Failed to load tools: %v", err)
		utils.InternalServerError(c, "Failed to process checkout", nil)
		return
	}
	if len(tools) != len(req.ToolIDs) {
		utils.LogError("Requested %d tools, found %d", len(req.ToolIDs), len(tools))
		utils.NotFound(c, "One or more tools not found")
		return
	}
	utils.LogDebug("Checking out %d tools to patron %d", len(tools), patron.ID)

	tx := config.DB.Begin(&sql.TxOptions{Isolation: sql.LevelSerializable})
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to process checkout", nil)
		return
	}

	var checkoutIDs []uint
	for _, tool := range tools {
		count, err := activeCheckoutCount(tx, tool.ID)
		if err != nil {
			tx.Rollback()
			utils.LogError("Failed to count active checkouts for tool %d: %v", tool.ID, err)
			utils.InternalServerError(c, "Failed to process checkout", nil)
			return
		}

		available := tool.Quantity - int(count)
		if available <= 0 {
			tx.Rollback()
			utils.LogError("Tool %q has no available units", tool.Name)
			utils.BadRequest(c, fmt.Sprintf("Tool %q is not available for checkout", tool.Name), gin.H{
				"tool_id": tool.ID,
			})
			return
		}

		checkout := models.Checkout{
			ToolID:         tool.ID,
			PatronID:       patron.ID,
			VolunteerID:    volunteer.ID,
			CheckoutDate:   now,
			DueDate:        dueDate,
			CheckoutPeriod: checkoutPeriod,
			Status:         models.StatusCheckedOut,
		}
		if err := tx.Create(&checkout).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to create checkout for tool %d: %v", tool.ID, err)
			utils.InternalServerError(c, "Failed to process checkout", nil)
			return
		}
		checkoutIDs = append(checkoutIDs, checkout.ID)
	}

	if err := tx.Commit().Error; err != nil {
		// A serialization failure means a concurrent checkout won the
		// race; the whole batch rolls back
		utils.LogError("Failed to commit checkout batch: %v", err)
		utils.Conflict(c, "Checkout conflicted with a concurrent request, please retry", nil)
		return
	}

	utils.LogInfo("Checked out %d tools to patron %d", len(checkoutIDs), patron.ID)
	utils.Created(c, fmt.Sprintf("Successfully checked out %d tool(s)", len(checkoutIDs)), gin.H{
		"checkouts": checkoutIDs,
		"count":     len(checkoutIDs),
	})
}

// ListCheckouts returns the checkout ledger, optionally filtered by
// status or overdue-only, newest first
func ListCheckouts(c *gin.Context) {
	utils.LogInfo("ListCheckouts called")

	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Checkout{}).
		Preload("Tool").
		Preload("Patron").
		Preload("Volunteer")

	if status := c.Query("status"); status != "" {
		if status != models.StatusCheckedOut && status != models.StatusReturned {
			utils.BadRequest(c, "Invalid status filter", gin.H{"status": "Status must be CHECKED_OUT or RETURNED"})
			return
		}
		query = query.Where("status = ?", status)
	}
	if c.Query("overdue") == "true" {
		query = query.Where("status = ? AND due_date < ?", models.StatusCheckedOut, time.Now())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count checkouts: %v", err)
		utils.InternalServerError(c, "Failed to load checkouts", nil)
		return
	}
	pagination.SetTotal(total)

	var checkouts []models.Checkout
	err := query.Order("checkout_date desc").
		Limit(pagination.Limit).
		Offset(pagination.Offset).
		Find(&checkouts).Error
	if err != nil {
		utils.LogError("Failed to load checkouts: %v", err)
		utils.InternalServerError(c, "Failed to load checkouts", nil)
		return
	}

	utils.SendPaginatedResponse(c, "Checkouts retrieved successfully", checkouts, pagination)
}
