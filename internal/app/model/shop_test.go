package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestShopValidate(t *testing.T) {
	tests := []struct {
		name    string
		shop    Shop
		wantErr error
	}{
		{name: "No coordinates", shop: Shop{Name: "A", Rating: 4.5}},
		{name: "Both coordinates", shop: Shop{Name: "A", Latitude: ptr(8.48), Longitude: ptr(124.65)}},
		{name: "Latitude only", shop: Shop{Name: "A", Latitude: ptr(8.48)}, wantErr: ErrPartialCoordinates},
		{name: "Longitude only", shop: Shop{Name: "A", Longitude: ptr(124.65)}, wantErr: ErrPartialCoordinates},
		{name: "Rating above five", shop: Shop{Name: "A", Rating: 5.1}, wantErr: ErrInvalidRating},
		{name: "Negative rating", shop: Shop{Name: "A", Rating: -1}, wantErr: ErrInvalidRating},
		{name: "Negative review count", shop: Shop{Name: "A", ReviewCount: -3}, wantErr: ErrInvalidReviewCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.shop.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusValidity(t *testing.T) {
	assert.True(t, ServiceRequestOngoing.IsValid())
	assert.False(t, ServiceRequestStatus("ongoing").IsValid())
	assert.True(t, ShopRequestRejected.IsValid())
	assert.False(t, ShopRequestStatus("archived").IsValid())
}

func TestProvinceOf(t *testing.T) {
	assert.Equal(t, "Metro Manila", ProvinceOf("Makati"))
	assert.Equal(t, "Misamis Oriental", ProvinceOf("Cagayan de Oro"))
	assert.Equal(t, "", ProvinceOf("Atlantis"))
}
