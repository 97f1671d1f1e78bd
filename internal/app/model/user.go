package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is a customer or staff account. Administrative capability is not
// stored here; see AdminGrant.
//
// Authority that comes from the address, such as admin access or chat
// membership, only applies once EmailVerified is set by a verification code
// or a completed password reset.
type User struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	Email           string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string         `gorm:"not null" json:"-"`
	Name            string         `gorm:"not null" json:"name"`
	Phone           string         `gorm:"type:varchar(50)" json:"phone"`
	EmailVerified   bool           `gorm:"not null;default:false" json:"email_verified"`
	EmailVerifiedAt *time.Time     `json:"email_verified_at,omitempty"`
	TokenVersion    int            `gorm:"not null;default:0" json:"-"` // bumped when the password changes
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = NormalizeEmail(u.Email)
	return nil
}

// NormalizeEmail is the canonical form used for every email comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
