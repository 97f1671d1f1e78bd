package util

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReverseGeocoder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "8.4845", r.URL.Query().Get("latitude"))
		assert.Equal(t, "124.6531", r.URL.Query().Get("longitude"))
		assert.Equal(t, "en", r.URL.Query().Get("localityLanguage"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"locality":"Barangay 27","city":"Cagayan de Oro","principalSubdivision":"Northern Mindanao"}`))
	}))
	defer srv.Close()

	g := NewReverseGeocoder(srv.URL, time.Second)
	place, err := g.Reverse(context.Background(), 8.4845, 124.6531)
	require.NoError(t, err)
	assert.Equal(t, "Barangay 27", place.Label())
	assert.Equal(t, "Cagayan de Oro", place.City)
}

func TestReverseGeocoderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewReverseGeocoder(srv.URL, time.Second).Reverse(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrGeocodeFailed)

	_, err = NewReverseGeocoder("http://127.0.0.1:1", 200*time.Millisecond).Reverse(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrGeocodeFailed)
}

func TestPlaceLabel(t *testing.T) {
	assert.Equal(t, "Makati", (&Place{City: "Makati", PrincipalSubdivision: "Metro Manila"}).Label())
	assert.Equal(t, "Metro Manila", (&Place{PrincipalSubdivision: "Metro Manila"}).Label())
	assert.Equal(t, "", (&Place{}).Label())
}
