package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrInvalidRating      = errors.New("rating must be between 0 and 5")
	ErrInvalidReviewCount = errors.New("review count must not be negative")
	ErrPartialCoordinates = errors.New("latitude and longitude must be set together")
)

// Shop is a listed auto-repair business.
type Shop struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null;index" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	Services     string    `gorm:"type:text;not null;default:''" json:"services"` // comma separated, free text
	Address      string    `gorm:"type:text" json:"address"`
	Barangay     string    `gorm:"type:varchar(100)" json:"barangay"`
	City         string    `gorm:"type:varchar(100);index;not null" json:"city"`
	Province     string    `gorm:"type:varchar(100);not null" json:"province"`
	Latitude     *float64  `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude    *float64  `gorm:"type:decimal(11,8)" json:"longitude"`
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`
	OpeningHours string    `gorm:"type:varchar(100)" json:"opening_hours"`
	ImageURL     string    `gorm:"type:text" json:"image_url"`
	Rating       float64   `gorm:"type:decimal(2,1);not null;default:0;index" json:"rating"`
	ReviewCount  int       `gorm:"not null;default:0" json:"review_count"`
	IsVerified   bool      `gorm:"not null;default:false;index" json:"is_verified"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Shop) TableName() string {
	return "shops"
}

// HasCoordinates reports whether the shop can be placed on a map.
func (s *Shop) HasCoordinates() bool {
	return s.Latitude != nil && s.Longitude != nil
}

// Validate checks the rating bounds and the coordinate pairing.
func (s *Shop) Validate() error {
	if s.Rating < 0 || s.Rating > 5 {
		return ErrInvalidRating
	}
	if s.ReviewCount < 0 {
		return ErrInvalidReviewCount
	}
	if (s.Latitude == nil) != (s.Longitude == nil) {
		return ErrPartialCoordinates
	}
	return nil
}

func (s *Shop) BeforeSave(_ *gorm.DB) error {
	return s.Validate()
}
