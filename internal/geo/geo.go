package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/mmcloughlin/geohash"
)

// HashPrecision gives cells of roughly 150m, enough to group alerts per town.
const HashPrecision = 7

// Valid reports whether lat/lng are finite and inside the WGS-84 range.
func Valid(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return false
	}
	return s2.LatLngFromDegrees(lat, lng).IsValid()
}

func Hash(lat, lng float64) string {
	return geohash.EncodeWithPrecision(lat, lng, HashPrecision)
}

// DistanceKm is the great-circle distance between two points.
func DistanceKm(lat1, lng1, lat2, lng2 float64) float64 {
	const earthRadiusKm = 6371.0088
	a := s2.LatLngFromDegrees(lat1, lng1)
	b := s2.LatLngFromDegrees(lat2, lng2)
	return a.Distance(b).Radians() * earthRadiusKm
}
