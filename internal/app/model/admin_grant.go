package model

import (
	"time"

	"gorm.io/gorm"
)

// AdminGrant gives an email address administrative capability in addition
// to the configured allow-list.
type AdminGrant struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	GrantedBy string    `gorm:"type:varchar(255)" json:"granted_by"`
	CreatedAt time.Time `json:"created_at"`
}

func (AdminGrant) TableName() string {
	return "admin_grants"
}

func (g *AdminGrant) BeforeSave(_ *gorm.DB) error {
	g.Email = NormalizeEmail(g.Email)
	return nil
}
