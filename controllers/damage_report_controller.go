package controllers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// DamageReportRequest represents the damage report creation request
type DamageReportRequest struct {
	Description string `json:"description" binding:"required"`
}

// CreateDamageReport files a damage report against a tool and marks
// the tool DAMAGED.
func CreateDamageReport(c *gin.Context) {
	utils.LogInfo("CreateDamageReport called")

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

	var tool models.Tool
	if err := config.DB.First(&tool, c.Param("id")).Error; err != nil {
		utils.LogError("Tool not found: %v", err)
		utils.NotFound(c, "Tool not found")
		return
	}

	var req DamageReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid input: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		utils.LogError("Empty damage description")
		utils.BadRequest(c, "Invalid input", gin.H{"description": "Description is required"})
		return
	}

	report := models.DamageReport{
		ToolID:      tool.ID,
		ReporterID:  user.ID,
		Description: description,
		ReportedAt:  time.Now(),
	}

	tx := config.DB.Begin()
	if err := tx.Create(&report).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create damage report: %v", err)
		utils.InternalServerError(c, "Failed to create damage report", nil)
		return
	}
	if tool.ConditionStatus == models.ConditionGood {
		if err := tx.Model(&tool).Update("condition_status", models.ConditionDamaged).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update tool condition: %v", err)
			utils.InternalServerError(c, "Failed to create damage report", nil)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit damage report: %v", err)
		utils.InternalServerError(c, "Failed to create damage report", nil)
		return
	}

	utils.LogInfo("Damage report %d created for tool %d by user %d", report.ID, tool.ID, user.ID)
	utils.Created(c, "Damage report created successfully", gin.H{
		"damage_report": gin.H{
			"id":          report.ID,
			"tool_id":     report.ToolID,
			"description": report.Description,
			"reported_at": report.ReportedAt,
			"resolved":    report.Resolved,
		},
	})
}

// ListDamageReports returns damage reports for a tool, newest first
func ListDamageReports(c *gin.Context) {
	utils.LogInfo("ListDamageReports called")

	var tool models.Tool
	if err := config.DB.First(&tool, c.Param("id")).Error; err != nil {
		utils.LogError("Tool not found: %v", err)
		utils.NotFound(c, "Tool not found")
		return
	}

	var reports []models.DamageReport
	if err := config.DB.Preload("Files").
		Where("tool_id = ?", tool.ID).
		Order("reported_at desc").
		Find(&reports).Error; err != nil {
		utils.LogError("Failed to load damage reports: %v", err)
		utils.InternalServerError(c, "Failed to load damage reports", nil)
		return
	}

	utils.Success(c, "Damage reports retrieved successfully", gin.H{
		"damage_reports": reports,
	})
}

// ResolveDamageReport marks a damage report resolved (admin only). If
// the tool has no other unresolved reports its condition returns to
// GOOD.
func ResolveDamageReport(c *gin.Context) {
	utils.LogInfo("ResolveDamageReport called")

	var report models.DamageReport
	if err := config.DB.First(&report, c.Param("id")).Error; err != nil {
		utils.LogError("Damage report not found: %v", err)
		utils.NotFound(c, "Damage report not found")
		return
	}
	if report.Resolved {
		utils.LogInfo("Damage report %d already resolved", report.ID)
		utils.Success(c, "Damage report already resolved", gin.H{
			"damage_report": gin.H{"id": report.ID, "resolved": true},
		})
		return
	}

	tx := config.DB.Begin()
	if err := tx.Model(&report).Update("resolved", true).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to resolve damage report %d: %v", report.ID, err)
		utils.InternalServerError(c, "Failed to resolve damage report", nil)
		return
	}

	var remaining int64
	if err := tx.Model(&models.DamageReport{}).
		Where("tool_id = ? AND resolved = ? AND id <> ?", report.ToolID, false, report.ID).
		Count(&remaining).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to count unresolved reports: %v", err)
		utils.InternalServerError(c, "Failed to resolve damage report", nil)
		return
	}
	if remaining == 0 {
		if err := tx.Model(&models.Tool{}).
			Where("id = ? AND condition_status = ?", report.ToolID, models.ConditionDamaged).
			Update("condition_status", models.ConditionGood).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to restore tool condition: %v", err)
			utils.InternalServerError(c, "Failed to resolve damage report", nil)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit resolution: %v", err)
		utils.InternalServerError(c, "Failed to resolve damage report", nil)
		return
	}

	utils.LogInfo("Damage report %d resolved", report.ID)
	utils.Success(c, "Damage report resolved successfully", gin.H{
		"damage_report": gin.H{"id": report.ID, "resolved": true},
	})
}
