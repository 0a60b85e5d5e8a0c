package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Entity types a file can be attached to
const (
	EntityTool         = "TOOL"
	EntityPatron       = "PATRON"
	EntityVolunteer    = "VOLUNTEER"
	EntityDamageReport = "DAMAGE_REPORT"
)

// File represents an uploaded file attached to exactly one entity.
// EntityType tags which of the foreign keys is populated.
type File struct {
	gorm.Model
	EntityType     string `gorm:"not null;index" json:"entity_type"`
	ToolID         *uint  `gorm:"index" json:"tool_id,omitempty"`
	PatronID       *uint  `gorm:"index" json:"patron_id,omitempty"`
	VolunteerID    *uint  `gorm:"index" json:"volunteer_id,omitempty"`
	DamageReportID *uint  `gorm:"index" json:"damage_report_id,omitempty"`
	FileName       string `gorm:"not null" json:"file_name"`
	FilePath       string `gorm:"not null" json:"file_path"`
	FileType       string `gorm:"not null" json:"file_type"`
	Label          string `json:"label"`
	UploadedByID   uint   `gorm:"not null" json:"uploaded_by_id"`
	UploadedBy     User   `json:"uploaded_by,omitempty" gorm:"foreignKey:UploadedByID"`
}

// AttachTarget is the entity a file gets attached to. Each variant
// carries its own strongly typed foreign key; Apply sets the matching
// column on the File record.
type AttachTarget interface {
	Apply(f *File)
	EntityID() uint
}

// ToolTarget attaches a file to a tool
type ToolTarget struct {
	ToolID uint
}

func (t ToolTarget) Apply(f *File) {
	f.EntityType = EntityTool
	f.ToolID = &t.ToolID
}

func (t ToolTarget) EntityID() uint { return t.ToolID }

// PatronTarget attaches a file to a patron
type PatronTarget struct {
	PatronID uint
}

func (t PatronTarget) Apply(f *File) {
	f.EntityType = EntityPatron
	f.PatronID = &t.PatronID
}

func (t PatronTarget) EntityID() uint { return t.PatronID }

// VolunteerTarget attaches a file to a staff user
type VolunteerTarget struct {
	UserID uint
}

func (t VolunteerTarget) Apply(f *File) {
	f.EntityType = EntityVolunteer
	f.VolunteerID = &t.UserID
}

func (t VolunteerTarget) EntityID() uint { return t.UserID }

// DamageReportTarget attaches a file to a damage report
type DamageReportTarget struct {
	DamageReportID uint
}

func (t DamageReportTarget) Apply(f *File) {
	f.EntityType = EntityDamageReport
	f.DamageReportID = &t.DamageReportID
}

func (t DamageReportTarget) EntityID() uint { return t.DamageReportID }

// ParseAttachTarget resolves an entity type string and id into the
// matching AttachTarget variant
func ParseAttachTarget(entityType string, id uint) (AttachTarget, error) {
	switch entityType {
	case EntityTool:
		return ToolTarget{ToolID: id}, nil
	case EntityPatron:
		return PatronTarget{PatronID: id}, nil
	case EntityVolunteer:
		return VolunteerTarget{UserID: id}, nil
	case EntityDamageReport:
		return DamageReportTarget{DamageReportID: id}, nil
	default:
		return nil, fmt.Errorf("unknown entity type: %s", entityType)
	}
}
