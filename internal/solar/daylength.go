package solar

import (
	"math"

	"github.com/golang/geo/s1"
)

// HoursPerDay is the upper bound of day length (polar day).
const HoursPerDay = 24.0

// CosHourAngle returns cos(H0) = -tan(lat) tan(decl) for a sunrise on a flat
// horizon. The value lies outside [-1, 1] during polar day (< -1) and polar
// night (> 1).
func CosHourAngle(lat, decl s1.Angle) float64 {
	return -math.Tan(lat.Radians()) * math.Tan(decl.Radians())
}

// HourAngle returns the sunrise hour angle H0. The cosine is clamped to
// [-1, 1] so that polar night yields 0 and polar day yields pi.
func HourAngle(lat, decl s1.Angle) s1.Angle {
	cosH := CosHourAngle(lat, decl)

	if cosH > 1 {
		cosH = 1
	} else if cosH < -1 {
		cosH = -1
	}

	return s1.Angle(math.Acos(cosH)) * s1.Radian
}

// DayLength returns the hours between sunrise and sunset for the given
// day of year and latitude. No refraction or elevation correction is applied.
// The result is always in [0, 24]; callers validate day and latitude.
func DayLength(day int, lat s1.Angle) float64 {
	h := HourAngle(lat, Declination(day))
	return HoursPerDay * h.Radians() / math.Pi
}

// PolarCondition reports whether the Sun stays below (night) or above (day)
// the horizon for the whole day.
func PolarCondition(day int, lat s1.Angle) (polarNight, polarDay bool) {
	cosH := CosHourAngle(lat, Declination(day))
	return cosH >= 1, cosH <= -1
}
