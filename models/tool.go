package models

import (
	"gorm.io/gorm"
)

// Condition status values for a tool
const (
	ConditionGood    = "GOOD"
	ConditionDamaged = "DAMAGED"
	ConditionRetired = "RETIRED"
)

// ValidConditionStatus reports whether s is a known condition status
func ValidConditionStatus(s string) bool {
	switch s {
	case ConditionGood, ConditionDamaged, ConditionRetired:
		return true
	}
	return false
}

// Tool represents a lendable tool. Every tool belongs to exactly one
// category and Quantity is the total number of units owned.
type Tool struct {
	gorm.Model
	Name            string   `gorm:"not null" json:"name"`
	Description     string   `json:"description"`
	CategoryID      uint     `gorm:"not null;index" json:"category_id"`
	Category        Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Quantity        int      `gorm:"not null;default:1" json:"quantity"`
	Donor           string   `json:"donor"`
	ConditionStatus string   `gorm:"not null;default:'GOOD'" json:"condition_status"`

	Checkouts     []Checkout     `json:"checkouts,omitempty" gorm:"foreignKey:ToolID"`
	Files         []File         `json:"files,omitempty" gorm:"foreignKey:ToolID"`
	DamageReports []DamageReport `json:"damage_reports,omitempty" gorm:"foreignKey:ToolID"`
}
