package service

import (
	"context"
	"errors"

	"github.com/autonear/autonear-backend/pkg/logger"
	"github.com/autonear/autonear-backend/pkg/util"
)

var ErrInvalidCoordinates = errors.New("latitude must be within [-90, 90] and longitude within [-180, 180]")

const (
	UnknownLocationLabel  = "Unknown Location"
	SelectedLocationLabel = "Selected Location"
)

type LocationLabel struct {
	Label    string `json:"label"`
	City     string `json:"city"`
	Locality string `json:"locality"`
	Resolved bool   `json:"resolved"`
}

// Geocoder is satisfied by util.ReverseGeocoder.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (*util.Place, error)
}

type GeocodeService interface {
	Describe(ctx context.Context, lat, lng float64) (*LocationLabel, error)
}

type geocodeService struct {
	geocoder Geocoder
}

func NewGeocodeService(geocoder Geocoder) GeocodeService {
	return &geocodeService{geocoder: geocoder}
}

// Describe never fails because of the upstream service; it falls back to a
// placeholder label instead.
func (s *geocodeService) Describe(ctx context.Context, lat, lng float64) (*LocationLabel, error) {
	if !(util.Point{Lat: lat, Lng: lng}).Valid() {
		return nil, ErrInvalidCoordinates
	}

	place, err := s.geocoder.Reverse(ctx, lat, lng)
	if err != nil {
		logger.Warn("Reverse geocoding failed, using placeholder", logger.Fields{
			"lat":   lat,
			"lng":   lng,
			"error": err.Error(),
		})
		return &LocationLabel{Label: SelectedLocationLabel}, nil
	}

	label := place.Label()
	if label == "" {
		label = UnknownLocationLabel
	}
	return &LocationLabel{
		Label:    label,
		City:     place.City,
		Locality: place.Locality,
		Resolved: true,
	}, nil
}
