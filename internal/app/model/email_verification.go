package model

import (
	"time"
)

// EmailVerification is a pending one-time code. Only the SHA-256 of the
// code is stored; at most one row per address is live at a time.
type EmailVerification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	CodeHash  string    `gorm:"size:64;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Attempts  int       `gorm:"not null;default:0" json:"attempts"`
	CreatedAt time.Time `json:"created_at"`
}

func (EmailVerification) TableName() string {
	return "email_verifications"
}

// Usable reports whether the code may still be tried.
func (v *EmailVerification) Usable(now time.Time, maxAttempts int) bool {
	return now.Before(v.ExpiresAt) && v.Attempts < maxAttempts
}
