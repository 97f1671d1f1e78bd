package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

var ErrGeocodeFailed = errors.New("reverse geocoding failed")

// Place is the subset of a BigDataCloud reverse-geocode response we use.
type Place struct {
	Locality             string `json:"locality"`
	City                 string `json:"city"`
	PrincipalSubdivision string `json:"principalSubdivision"`
	CountryName          string `json:"countryName"`
}

// Label picks the most specific populated name.
func (p *Place) Label() string {
	for _, name := range []string{p.Locality, p.City, p.PrincipalSubdivision} {
		if name != "" {
			return name
		}
	}
	return ""
}

// ReverseGeocoder calls the BigDataCloud client endpoint, which needs no key.
type ReverseGeocoder struct {
	baseURL string
	client  *http.Client
}

func NewReverseGeocoder(baseURL string, timeout time.Duration) *ReverseGeocoder {
	return &ReverseGeocoder{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (g *ReverseGeocoder) Reverse(ctx context.Context, lat, lng float64) (*Place, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", g.baseURL, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGeocodeFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrGeocodeFailed, resp.StatusCode, string(body))
	}

	var place Place
	if err := json.NewDecoder(resp.Body).Decode(&place); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrGeocodeFailed, err)
	}
	return &place, nil
}
