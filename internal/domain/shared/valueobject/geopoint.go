package valueobject

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// GeoPoint is a value object representing a geographic coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// NewGeoPoint creates a validated GeoPoint
func NewGeoPoint(lat, lon float64) (GeoPoint, error) {
	p := GeoPoint{Latitude: lat, Longitude: lon}
	if err := p.Validate(); err != nil {
		return GeoPoint{}, err
	}
	return p, nil
}

// Validate checks the coordinates are within valid ranges
func (p GeoPoint) Validate() error {
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", p.Longitude)
	}
	return nil
}

// IsZero returns true for the zero coordinate pair
func (p GeoPoint) IsZero() bool {
	return p.Latitude == 0 && p.Longitude == 0
}

// DistanceKm returns the haversine great-circle distance to another point in
// kilometers. Identical points yield exactly 0.
func (p GeoPoint) DistanceKm(other GeoPoint) float64 {
	if p == other {
		return 0
	}

	lat1 := degToRad(p.Latitude)
	lat2 := degToRad(other.Latitude)
	dLat := degToRad(other.Latitude - p.Latitude)
	dLon := degToRad(other.Longitude - p.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)

	// Clamp guards against floating-point drift pushing a marginally above 1
	// for near-antipodal points.
	a = math.Min(a, 1)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// String returns a "lat,lon" representation
func (p GeoPoint) String() string {
	return fmt.Sprintf("%g,%g", p.Latitude, p.Longitude)
}
