package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/toolshedhq/toolshed/config"
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
)

// DownloadCheckoutReceipt generates and returns a PDF receipt for a
// checkout
func DownloadCheckoutReceipt(c *gin.Context) {
	utils.LogInfo("DownloadCheckoutReceipt called")

	checkoutID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.LogError("Invalid checkout ID format: %v", err)
		utils.BadRequest(c, "Invalid checkout ID", nil)
		return
	}

	var checkout models.Checkout
	err = config.DB.Preload("Tool").
		Preload("Patron").
		Preload("Volunteer").
		First(&checkout, checkoutID).Error
	if err != nil {
		utils.LogError("Checkout not found for receipt - ID: %d", checkoutID)
		utils.NotFound(c, "Checkout not found")
		return
	}
	utils.LogDebug("Generating receipt for checkout ID: %d", checkoutID)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Library header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "ToolShed Community Tool Library")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Borrow. Build. Bring it back.")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "CHECKOUT RECEIPT")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(60, 8, "Checkout ID: "+strconv.Itoa(int(checkout.ID)))
	pdf.Cell(70, 8, "Date: "+checkout.CheckoutDate.Format("2006-01-02"))
	pdf.Ln(8)
	pdf.Cell(60, 8, "Patron: "+checkout.Patron.FullName())
	pdf.Cell(70, 8, "Checked out by: "+checkout.Volunteer.Name)
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(80, 8, "Tool")
	pdf.Cell(40, 8, "Due Date")
	pdf.Cell(40, 8, "Period")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(80, 8, checkout.Tool.Name)
	pdf.Cell(40, 8, checkout.DueDate.Format("2006-01-02"))
	pdf.Cell(40, 8, fmt.Sprintf("%d days", checkout.CheckoutPeriod))
	pdf.Ln(16)

	pdf.SetFont("Arial", "I", 10)
	pdf.MultiCell(0, 6, "Please return tools clean and on time. Late returns are recorded and repeated overdue returns may limit future borrowing.", "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.LogError("Failed to generate receipt PDF: %v", err)
		utils.InternalServerError(c, "Failed to generate receipt", nil)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=checkout-%d.pdf", checkout.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
	utils.LogInfo("Receipt generated for checkout %d", checkout.ID)
}
