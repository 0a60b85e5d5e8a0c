package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Category represents a node in the tool category tree. Name is unique
// within its parent scope; the parent chain must never form a cycle.
type Category struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null;index:idx_categories_name_parent,unique,where:deleted_at IS NULL"`
	ParentID  *uint          `json:"parent_id" gorm:"index:idx_categories_name_parent,unique,where:deleted_at IS NULL"`
	Parent    *Category      `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children  []Category     `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Tools     []Tool         `json:"tools,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// BeforeCreate hook to standardize category names
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}

// BeforeSave hook to ensure name is always in proper format
func (c *Category) BeforeSave(tx *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
