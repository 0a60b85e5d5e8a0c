package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// ToolRequest represents the tool creation/update request
type ToolRequest struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CategoryID      uint   `json:"category_id"`
	Quantity        int    `json:"quantity"`
	Donor           string `json:"donor"`
	ConditionStatus string `json:"condition_status"`
}

func validateToolRequest(req *ToolRequest) map[string]string {
	errors := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		errors["name"] = "Tool name is required"
	}
	if req.CategoryID == 0 {
		errors["category_id"] = "Please select a category"
	}
	if req.Quantity < 1 {
		errors["quantity"] = "Quantity must be at least 1"
	}
	return errors
}

// toolResponse shapes a tool with its available count
func toolResponse(tool models.Tool, available int) gin.H {
	return gin.H{
		"id":               tool.ID,
		"name":             tool.Name,
		"description":      tool.Description,
		"category_id":      tool.CategoryID,
		"category":         tool.Category.Name,
		"quantity":         tool.Quantity,
		"donor":            tool.Donor,
		"condition_status": tool.ConditionStatus,
		"available_count":  available,
	}
}

// ListTools returns tools with availability, optionally filtered by
// name, newest first within a page
func ListTools(c *gin.Context) {
	utils.LogInfo("ListTools called")

	pagination := utils.NewPagination(c)
	search := strings.TrimSpace(c.Query("search"))

	query := config.DB.Model(&models.Tool{}).Preload("Category")
	if search != "" {
		query = query.Where("tools.name LIKE ?", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count tools: %v", err)
		utils.InternalServerError(c, "Failed to load tools", nil)
		return
	}
	pagination.SetTotal(total)

	var tools []models.Tool
	if err := query.Order("name asc").Limit(pagination.Limit).Offset(pagination.Offset).Find(&tools).Error; err != nil {
		utils.LogError("Failed to load tools: %v", err)
		utils.InternalServerError(c, "Failed to load tools", nil)
		return
	}

	counts, err := activeCheckoutCounts(config.DB)
	if err != nil {
		utils.LogError("Failed to load checkout counts: %v", err)
		utils.InternalServerError(c, "Failed to load tools", nil)
		return
	}

	list := make([]gin.H, 0, len(tools))
	for _, tool := range tools {
		list = append(list, toolResponse(tool, tool.Quantity-counts[tool.ID]))
	}

	utils.SendPaginatedResponse(c, "Tools retrieved successfully", list, pagination)
}

// SearchTools returns tools matching a name query with availability,
// capped for performance
func SearchTools(c *gin.Context) {
	utils.LogInfo("SearchTools called")

	search := strings.TrimSpace(c.Query("search"))
	if search == "" {
		utils.Success(c, "Tools retrieved successfully", gin.H{"tools": []gin.H{}})
		return
	}

	var tools []models.Tool
	err := config.DB.Preload("Category").
		Where("name LIKE ?", "%"+search+"%").
		Order("name asc").
		Limit(50).
		Find(&tools).Error
	if err != nil {
		utils.LogError("Failed to search tools: %v", err)
		utils.InternalServerError(c, "Failed to search tools", nil)
		return
	}

	counts, err := activeCheckoutCounts(config.DB)
	if err != nil {
		utils.LogError("Failed to load checkout counts: %v", err)
		utils.InternalServerError(c, "Failed to search tools", nil)
		return
	}

	list := make([]gin.H, 0, len(tools))
	for _, tool := range tools {
		list = append(list, toolResponse(tool, tool.Quantity-counts[tool.ID]))
	}

	utils.Success(c, "Tools retrieved successfully", gin.H{"tools": list})
}

// GetTool returns a tool with its category, files, and damage reports
func GetTool(c *gin.Context) {
	utils.LogInfo("GetTool called")

	var tool models.Tool
	err := config.DB.Preload("Category").
		Preload("Files").
		Preload("DamageReports").
		Preload("DamageReports.Reporter").
		First(&tool, c.Param("id")).Error
	if err != nil {
		utils.LogError("Tool not found: %v", err)
		utils.NotFound(c, "Tool not found")
		return
	}

	count, err := activeCheckoutCount(config.DB, tool.ID)
	if err != nil {
		utils.LogError("Failed to count active checkouts: %v", err)
		utils.InternalServerError(c, "Failed to load tool", nil)
		return
	}

	utils.Success(c, "Tool retrieved successfully", gin.H{
		"tool":            tool,
		"available_count": tool.Quantity - int(count),
	})
}

// CreateTool handles tool creation
func CreateTool(c *gin.Context) {
	utils.LogInfo("CreateTool called")

	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if errs := validateToolRequest(&req); len(errs) > 0 {
		utils.LogError("Tool validation failed: %v", errs)
		utils.BadRequest(c, "Invalid input", errs)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category %d not found: %v", req.CategoryID, err)
		utils.BadRequest(c, "Invalid input", gin.H{"category_id": "Category not found"})
		return
	}

	// Unknown condition values fall back to GOOD
	condition := req.ConditionStatus
	if !models.ValidConditionStatus(condition) {
		condition = models.ConditionGood
	}

	tool := models.Tool{
		Name:            strings.TrimSpace(req.Name),
		Description:     strings.TrimSpace(req.Description),
		CategoryID:      req.CategoryID,
		Quantity:        req.Quantity,
		Donor:           strings.TrimSpace(req.Donor),
		ConditionStatus: condition,
	}
	if err := config.DB.Create(&tool).Error; err != nil {
		utils.LogError("Failed to create tool: %v", err)
		utils.InternalServerError(c, "Failed to create tool", nil)
		return
	}

	utils.LogInfo("Tool created successfully: %s", tool.Name)
	utils.Created(c, "Tool created successfully", gin.H{"tool": tool})
}

// UpdateTool handles tool updates
func UpdateTool(c *gin.Context) {
	utils.LogInfo("UpdateTool called")

	var tool models.Tool
	if err := config.DB.First(&tool, c.Param("id")).Error; err != nil {
		utils.LogError("Tool not found: %v", err)
		utils.NotFound(c, "Tool not found")
		return
	}

	var req ToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	if errs := validateToolRequest(&req); len(errs) > 0 {
		utils.LogError("Tool validation failed: %v", errs)
		utils.BadRequest(c, "Invalid input", errs)
		return
	}

	if !models.ValidConditionStatus(req.ConditionStatus) {
		utils.LogError("Invalid condition status: %s", req.ConditionStatus)
		utils.BadRequest(c, "Invalid input", gin.H{"condition_status": "Condition must be GOOD, DAMAGED, or RETIRED"})
		return
	}

	var category models.Category
	if err := config.DB.First(&category, req.CategoryID).Error; err != nil {
		utils.LogError("Category %d not found: %v", req.CategoryID, err)
		utils.BadRequest(c, "Invalid input", gin.H{"category_id": "Category not found"})
		return
	}

	updates := map[string]interface{}{
		"name":             strings.TrimSpace(req.Name),
		"description":      strings.TrimSpace(req.Description),
		"category_id":      req.CategoryID,
		"quantity":         req.Quantity,
		"donor":            strings.TrimSpace(req.Donor),
		"condition_status": req.ConditionStatus,
	}
	if err := config.DB.Model(&tool).Updates(updates).Error; err != nil {
		utils.LogError("Failed to update tool: %v", err)
		utils.InternalServerError(c, "Failed to update tool", nil)
		return
	}

	utils.LogInfo("Tool updated successfully: %s", tool.Name)
	utils.Success(c, "Tool updated successfully", gin.H{"tool": tool})
}

// DeleteTool handles tool deletion (admin only). This is destructive
// and irreversible: dependent checkouts, damage reports, and files
// (records and disk content) are removed with the tool.
func DeleteTool(c *gin.Context) {
	utils.LogInfo("DeleteTool called")

	var tool models.Tool
	if err := config.DB.Preload("Files").First(&tool, c.Param("id")).Error; err != nil {
		utils.LogError("Tool not found: %v", err)
		utils.NotFound(c, "Tool not found")
		return
	}
	utils.LogDebug("Found tool: %s with %d files", tool.Name, len(tool.Files))

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to delete tool", nil)
		return
	}

	if err := tx.Where("tool_id = ?", tool.ID).Delete(&models.Checkout{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete checkouts: %v", err)
		utils.InternalServerError(c, "Failed to delete tool", nil)
		return
	}
	if err := tx.Where("tool_id = ?", tool.ID).Delete(&models.DamageReport{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete damage reports: %v", err)
		utils.InternalServerError(c, "Failed to delete tool", nil)
		return
	}
	if err := tx.Where("tool_id = ?", tool.ID).Delete(&models.File{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete file records: %v", err)
		utils.InternalServerError(c, "Failed to delete tool", nil)
		return
	}
	if err := tx.Delete(&tool).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete tool: %v", err)
		utils.InternalServerError(c, "Failed to delete tool", nil)
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to delete tool", nil)
		return
	}

	// Disk cleanup happens after commit; a leftover file is better than
	// a dangling database record
	for _, file := range tool.Files {
		if err := utils.DeleteFile(file.FilePath); err != nil {
			utils.LogError("Failed to remove file %s: %v", file.FilePath, err)
		}
	}

	utils.LogInfo("Tool deleted successfully: %s", tool.Name)
	utils.Success(c, "Tool deleted successfully", nil)
}
