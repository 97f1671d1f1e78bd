package model

import (
	"time"
)

type ShopRequestStatus string

const (
	ShopRequestPending  ShopRequestStatus = "pending"
	ShopRequestApproved ShopRequestStatus = "approved"
	ShopRequestRejected ShopRequestStatus = "rejected"
)

func (s ShopRequestStatus) IsValid() bool {
	switch s {
	case ShopRequestPending, ShopRequestApproved, ShopRequestRejected:
		return true
	}
	return false
}

// DefaultRejectionReason is recorded when a reviewer rejects without a reason.
const DefaultRejectionReason = "Information could not be verified."

// ShopRequest is an owner's application to be listed. Approved and rejected
// are terminal.
type ShopRequest struct {
	ID              uint              `gorm:"primarykey" json:"id"`
	ShopName        string            `gorm:"not null" json:"shop_name"`
	OwnerName       string            `gorm:"not null" json:"owner_name"`
	ContactDetails  string            `gorm:"not null" json:"contact_details"`
	Address         string            `gorm:"type:text;not null" json:"address"`
	GoogleMapsLink  string            `gorm:"type:text;not null" json:"google_maps_link"`
	Status          ShopRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectionReason *string           `gorm:"type:text" json:"rejection_reason"`
	ShopID          *uint             `gorm:"index" json:"shop_id,omitempty"` // set on approval
	Shop            *Shop             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"shop,omitempty"`
	ReviewedBy      string            `gorm:"type:varchar(255)" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

func (ShopRequest) TableName() string {
	return "shop_requests"
}

func (r *ShopRequest) IsPending() bool {
	return r.Status == ShopRequestPending
}
