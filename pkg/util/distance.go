package util

import (
	"math"
)

const earthRadiusKm = 6371.0

// CalculateDistance returns the great-circle distance in kilometers between
// two points given in degrees, using the haversine formula.
func CalculateDistance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := degToRad(lat1)
	phi2 := degToRad(lat2)
	dPhi := degToRad(lat2 - lat1)
	dLambda := degToRad(lng2 - lng1)

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Point is a coordinate pair in degrees.
type Point struct {
	Lat float64
	Lng float64
}

// Valid reports whether p is a finite position on the globe.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// DistanceTo is CalculateDistance between p and q.
func (p Point) DistanceTo(q Point) float64 {
	return CalculateDistance(p.Lat, p.Lng, q.Lat, q.Lng)
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
