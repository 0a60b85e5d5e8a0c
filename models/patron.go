package models

import (
	"strings"

	"gorm.io/gorm"
)

// Patron represents a library member who borrows tools (not staff)
type Patron struct {
	gorm.Model
	FirstName      string `gorm:"not null" json:"first_name"`
	LastName       string `gorm:"not null" json:"last_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	MailingStreet  string `gorm:"not null" json:"mailing_street"`
	MailingCity    string `gorm:"not null" json:"mailing_city"`
	MailingState   string `gorm:"not null" json:"mailing_state"`
	MailingZipcode string `gorm:"not null" json:"mailing_zipcode"`
	OverdueCount   int    `gorm:"default:0" json:"overdue_count"`
	CreatedByID    *uint  `json:"created_by_id"`

	Checkouts []Checkout `json:"checkouts,omitempty" gorm:"foreignKey:PatronID"`
}

// FullName returns "First Last" for display and receipts
func (p *Patron) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// BeforeSave hook to normalize whitespace in patron fields
func (p *Patron) BeforeSave(tx *gorm.DB) error {
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.TrimSpace(p.LastName)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)
	return nil
}
