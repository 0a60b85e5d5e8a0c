package controllers

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// AdminDashboard returns headline counts for the admin landing page
func AdminDashboard(c *gin.Context) {
	utils.LogInfo("AdminDashboard called")

	var toolCount, patronCount, activeCheckouts, overdueCheckouts int64
	now := time.Now()

	if err := config.DB.Model(&models.Tool{}).Count(&toolCount).Error; err != nil {
		utils.LogError("Failed to count tools: %v", err)
		utils.InternalServerError(c, "Failed to load dashboard", nil)
		return
	}
	if err := config.DB.Model(&models.Patron{}).Count(&patronCount).Error; err != nil {
		utils.LogError("Failed to count patrons: %v", err)
		utils.InternalServerError(c, "Failed to load dashboard", nil)
		return
	}
	if err := config.DB.Model(&models.Checkout{}).
		Where("status = ?", models.StatusCheckedOut).
		Count(&activeCheckouts).Error; err != nil {
		utils.LogError("Failed to count active checkouts: %v", err)
		utils.InternalServerError(c, "Failed to load dashboard", nil)
		return
	}
	if err := config.DB.Model(&models.Checkout{}).
		Where("status = ? AND due_date < ?", models.StatusCheckedOut, now).
		Count(&overdueCheckouts).Error; err != nil {
		utils.LogError("Failed to count overdue checkouts: %v", err)
		utils.InternalServerError(c, "Failed to load dashboard", nil)
		return
	}

	utils.Success(c, "Dashboard retrieved successfully", gin.H{
		"tools":             toolCount,
		"patrons":           patronCount,
		"active_checkouts":  activeCheckouts,
		"overdue_checkouts": overdueCheckouts,
	})
}

// Admin: Download overdue checkouts as Excel
func DownloadOverdueReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadOverdueReportExcel called")

	now := time.Now()
	var checkouts []models.Checkout
	query := config.DB.Where("status = ? AND due_date < ?", models.StatusCheckedOut, now).
		Preload("Tool").
		Preload("Patron").
		Preload("Volunteer").
		Order("due_date ASC")
	if err := query.Find(&checkouts).Error; err != nil {
		utils.LogError("Failed to fetch overdue checkouts: %v", err)
		utils.InternalServerError(c, "Failed to fetch overdue checkouts", err.Error())
		return
	}
	utils.LogDebug("Retrieved %d overdue checkouts for Excel report", len(checkouts))

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Overdue Report")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("TOOLSHED - Overdue Checkouts")
	titleRow = sheet.AddRow()
	titleRow.AddCell().SetString("Generated: " + now.Format("2006-01-02 15:04"))
	sheet.AddRow() // spacing

	headers := []string{"Checkout ID", "Tool", "Patron", "Patron Email", "Patron Phone", "Checked Out", "Due", "Days Overdue", "Volunteer"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, co := range checkouts {
		daysOverdue := int(now.Sub(co.DueDate).Hours() / 24)
		row := sheet.AddRow()
		row.AddCell().SetInt(int(co.ID))
		row.AddCell().SetString(co.Tool.Name)
		row.AddCell().SetString(co.Patron.FullName())
		row.AddCell().SetString(co.Patron.Email)
		row.AddCell().SetString(co.Patron.Phone)
		row.AddCell().SetString(co.CheckoutDate.Format("2006-01-02"))
		row.AddCell().SetString(co.DueDate.Format("2006-01-02"))
		row.AddCell().SetInt(daysOverdue)
		row.AddCell().SetString(co.Volunteer.Name)
	}

	sheet.AddRow() // spacing
	summaryRow := sheet.AddRow()
	summaryRow.AddCell().SetString("Total Overdue")
	summaryRow.AddCell().SetInt(len(checkouts))

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=overdue_report_%s.xlsx", now.Format("2006-01-02")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated overdue Excel report with %d rows", len(checkouts))
}

// SendOverdueNotices emails an overdue notice to every patron with at
// least one overdue checkout (admin only). Patrons without an email
// address are skipped.
func SendOverdueNotices(c *gin.Context) {
	utils.LogInfo("SendOverdueNotices called")

	now := time.Now()
	var checkouts []models.Checkout
	if err := config.DB.Where("status = ? AND due_date < ?", models.StatusCheckedOut, now).
		Preload("Tool").
		Preload("Patron").
		Find(&checkouts).Error; err != nil {
		utils.LogError("Failed to fetch overdue checkouts: %v", err)
		utils.InternalServerError(c, "Failed to fetch overdue checkouts", nil)
		return
	}

	sent := 0
	skipped := 0
	for _, co := range checkouts {
		if co.Patron.Email == "" {
			skipped++
			continue
		}
		if err := utils.SendOverdueNotice(co.Patron.Email, co.Patron.FullName(), co.Tool.Name, co.DueDate.Format("2006-01-02")); err != nil {
			utils.LogError("Failed to send overdue notice for checkout %d: %v", co.ID, err)
			skipped++
			continue
		}
		sent++
	}

	utils.LogInfo("Overdue notices sent: %d, skipped: %d", sent, skipped)
	utils.Success(c, "Overdue notices processed", gin.H{
		"sent":    sent,
		"skipped": skipped,
	})
}
