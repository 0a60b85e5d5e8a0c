package models

import (
	"time"

	"gorm.io/gorm"
)

// DamageReport records damage observed on a tool, usually at check-in
type DamageReport struct {
	gorm.Model
	ToolID      uint      `gorm:"not null;index" json:"tool_id"`
	Tool        Tool      `json:"tool,omitempty" gorm:"foreignKey:ToolID"`
	ReporterID  uint      `gorm:"not null" json:"reporter_id"`
	Reporter    User      `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	Description string    `gorm:"not null" json:"description"`
	ReportedAt  time.Time `gorm:"not null" json:"reported_at"`
	Resolved    bool      `gorm:"default:false" json:"resolved"`

	Files []File `json:"files,omitempty" gorm:"foreignKey:DamageReportID"`
}
