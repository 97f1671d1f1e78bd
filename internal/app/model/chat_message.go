package model

import (
	"time"
)

type SenderRole string

const (
	SenderAdmin    SenderRole = "admin"
	SenderCustomer SenderRole = "customer"
)

// ChatMessage is one append-only entry in a service request thread.
type ChatMessage struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	RequestID   uint       `gorm:"not null;index:idx_thread,priority:1" json:"request_id"`
	SenderRole  SenderRole `gorm:"type:varchar(20);not null" json:"sender_role"`
	SenderEmail string     `gorm:"type:varchar(255);not null" json:"sender_email"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time  `gorm:"index:idx_thread,priority:2" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "service_request_messages"
}
