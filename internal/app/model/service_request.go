package model

import (
	"time"
)

type ServiceRequestStatus string

const (
	ServiceRequestPending   ServiceRequestStatus = "pending"
	ServiceRequestOngoing   ServiceRequestStatus = "on going"
	ServiceRequestCompleted ServiceRequestStatus = "completed"
)

// ServiceRequestStatuses in display order.
var ServiceRequestStatuses = []ServiceRequestStatus{
	ServiceRequestPending,
	ServiceRequestOngoing,
	ServiceRequestCompleted,
}

func (s ServiceRequestStatus) IsValid() bool {
	for _, status := range ServiceRequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ServiceRequest is a customer lead addressed to one shop. Rows are hard
// deleted together with their chat thread.
type ServiceRequest struct {
	ID            uint                 `gorm:"primarykey" json:"id"`
	ShopID        uint                 `gorm:"not null;index" json:"shop_id"`
	Shop          *Shop                `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"shop,omitempty"`
	CustomerName  string               `gorm:"not null" json:"customer_name"`
	CustomerPhone string               `gorm:"type:varchar(50);not null" json:"customer_phone"`
	CustomerEmail *string              `gorm:"type:varchar(255);index" json:"customer_email"`
	VehicleInfo   *string              `json:"vehicle_info"`
	ServiceType   *string              `gorm:"type:varchar(100)" json:"service_type"`
	Message       *string              `gorm:"type:text" json:"message"`
	Status        ServiceRequestStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt     time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`

	Messages []ChatMessage `gorm:"foreignKey:RequestID;constraint:OnDelete:CASCADE" json:"-"`
}

func (ServiceRequest) TableName() string {
	return "service_requests"
}
