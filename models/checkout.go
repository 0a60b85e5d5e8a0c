package models

import (
	"time"

	"gorm.io/gorm"
)

// Checkout status values. A checkout only ever moves from CHECKED_OUT
// to RETURNED, never back.
const (
	StatusCheckedOut = "CHECKED_OUT"
	StatusReturned   = "RETURNED"
)

// Checkout represents the loan of one tool unit to one patron.
// WasOverdue latches to true when check-in happens after the due date
// and is never reset.
type Checkout struct {
	gorm.Model
	ToolID             uint       `gorm:"not null;index" json:"tool_id"`
	Tool               Tool       `json:"tool,omitempty" gorm:"foreignKey:ToolID"`
	PatronID           uint       `gorm:"not null;index" json:"patron_id"`
	Patron             Patron     `json:"patron,omitempty" gorm:"foreignKey:PatronID"`
	VolunteerID        uint       `gorm:"not null" json:"volunteer_id"`
	Volunteer          User       `json:"volunteer,omitempty" gorm:"foreignKey:VolunteerID"`
	CheckoutDate       time.Time  `gorm:"not null" json:"checkout_date"`
	DueDate            time.Time  `gorm:"not null" json:"due_date"`
	CheckoutPeriod     int        `gorm:"not null" json:"checkout_period"`
	CheckinDate        *time.Time `json:"checkin_date"`
	CheckinVolunteerID *uint      `json:"checkin_volunteer_id"`
	CheckinVolunteer   *User      `json:"checkin_volunteer,omitempty" gorm:"foreignKey:CheckinVolunteerID"`
	Status             string     `gorm:"not null;default:'CHECKED_OUT';index" json:"status"`
	WasOverdue         bool       `gorm:"default:false" json:"was_overdue"`
}

// IsOverdue reports whether an active checkout is past its due date
func (co *Checkout) IsOverdue(now time.Time) bool {
	return co.Status == StatusCheckedOut && now.After(co.DueDate)
}
