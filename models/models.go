package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff roles
const (
	RoleAdmin     = "ADMIN"
	RoleVolunteer = "VOLUNTEER"
)

// User represents a staff member (volunteer or admin) in the system
type User struct {
	gorm.Model
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash   string     `json:"-"`
	Name           string     `gorm:"not null" json:"name"`
	Phone          string     `json:"phone"`
	MailingStreet  string     `json:"mailing_street"`
	MailingCity    string     `json:"mailing_city"`
	MailingState   string     `json:"mailing_state"`
	MailingZipcode string     `json:"mailing_zipcode"`
	Role           string     `gorm:"not null;default:'VOLUNTEER'" json:"role"`
	Active         bool       `gorm:"default:true" json:"active"`
	TrainingDate   *time.Time `json:"training_date"`
	TrainedByID    *uint      `json:"trained_by_id"`
	TrainedBy      *User      `gorm:"foreignKey:TrainedByID" json:"trained_by,omitempty"`
	LastLoginAt    time.Time  `json:"last_login_at"`
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// LoginHistory records a successful staff login
type LoginHistory struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	User      User      `json:"user,omitempty" gorm:"foreignKey:UserID"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}
