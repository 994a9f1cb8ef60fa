// Package geo holds the distance math used to compare geocoder answers.
package geo

import (
	"math"

	"github.com/UnknownOlympus/geocmp/internal/models"
)

// metersPerDegree converts degrees of arc to meters: minutes per degree,
// statute miles per nautical mile, kilometers per mile, meters per kilometer.
const metersPerDegree = 60 * 1.1515 * 1.609344 * 1000

// Distance returns the approximate great-circle distance in meters between a and b,
// using the spherical law of cosines.
//
// The result is always finite and non-negative: the cosine of the central angle
// is clamped to [-1, 1] so rounding near identical or antipodal points cannot
// push math.Acos out of its domain.
func Distance(a, b models.Coordinates) float64 {
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)
	theta := toRadians(a.Longitude - b.Longitude)

	cosAngle := math.Sin(lat1)*math.Sin(lat2) + math.Cos(lat1)*math.Cos(lat2)*math.Cos(theta)
	cosAngle = math.Max(-1, math.Min(1, cosAngle))

	return toDegrees(math.Acos(cosAngle)) * metersPerDegree
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func toDegrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
