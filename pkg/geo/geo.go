// Package geo provides great-circle distance math for the store
// proximity search.
package geo

import (
	"math"

	pkgerrors "github.com/geocart/geocart-backend/pkg/errors"
)

// EarthRadiusKm is the mean radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Validate rejects coordinates outside the WGS84 range and NaN/Inf
// values, which JSON decoding cannot produce but query parsing can.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || c.Lat < -90 || c.Lat > 90 {
		return pkgerrors.New(pkgerrors.CodeValidation, "latitude must be between -90 and 90").
			WithDetails(map[string]any{"field": "lat"})
	}
	if math.IsNaN(c.Lon) || math.IsInf(c.Lon, 0) || c.Lon < -180 || c.Lon > 180 {
		return pkgerrors.New(pkgerrors.CodeValidation, "longitude must be between -180 and 180").
			WithDetails(map[string]any{"field": "lon"})
	}
	return nil
}

// DistanceKm returns the haversine distance between two coordinates in
// kilometers. Identical points yield exactly zero.
func DistanceKm(a, b Coordinate) float64 {
	if a == b {
		return 0
	}

	latA := radians(a.Lat)
	latB := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLon := radians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat + math.Cos(latA)*math.Cos(latB)*sinLon*sinLon
	// Clamp guards against floating point drift pushing h past 1 for
	// near-antipodal points.
	if h > 1 {
		h = 1
	}

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
