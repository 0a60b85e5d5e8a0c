package controllers

import (
	"github.com/toolshedhq/toolshed/models"
	"github.com/toolshedhq/toolshed/utils"
	"gorm.io/gorm"
)

// toolAvailabilities loads every tool with its available count
// (quantity minus active checkouts)
func toolAvailabilities(db *gorm.DB) ([]utils.ToolAvailability, error) {
	var tools []models.Tool
	if err := db.Find(&tools).Error; err != nil {
		return nil, err
	}

	counts, err := activeCheckoutCounts(db)
	if err != nil {
		return nil, err
	}

	result := make([]utils.ToolAvailability, 0, len(tools))
	for _, tool := range tools {
		result = append(result, utils.ToolAvailability{
			ToolID:     tool.ID,
			CategoryID: tool.CategoryID,
			Available:  tool.Quantity - counts[tool.ID],
		})
	}
	return result, nil
}

// activeCheckoutCounts returns the number of CHECKED_OUT checkouts per
// tool id
func activeCheckoutCounts(db *gorm.DB) (map[uint]int, error) {
	type row struct {
		ToolID uint
		Count  int
	}
	var rows []row
	err := db.Model(&models.Checkout{}).
		Select("tool_id, count(*) as count").
		Where("status = ?", models.StatusCheckedOut).
		Group("tool_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.ToolID] = r.Count
	}
	return counts, nil
}

// activeCheckoutCount returns the number of CHECKED_OUT checkouts for
// one tool, using the supplied (possibly transactional) handle
func activeCheckoutCount(db *gorm.DB, toolID uint) (int64, error) {
	var count int64
	err := db.Model(&models.Checkout{}).
		Where("tool_id = ? AND status = ?", toolID, models.StatusCheckedOut).
		Count(&count).Error
	return count, err
}
