package solar

import (
	"math"

	"github.com/golang/geo/s1"
)

// Coefficients of the day-of-year declination model. The seasonal angle is a
// revolution angle of the Earth around the Sun with the orbit's eccentricity
// folded in; 0.39795 is sin of the obliquity of the ecliptic.
const (
	angleOffset  = 0.2163108
	eccentricity = 0.9671396
	dailyRate    = 0.00860
	aphelionDay  = 186
	sinObliquity = 0.39795
)

// SeasonalAngle returns the Earth's revolution angle for a 1-based day of year.
func SeasonalAngle(day int) s1.Angle {
	theta := angleOffset + 2*math.Atan(eccentricity*math.Tan(dailyRate*float64(day-aphelionDay)))
	return s1.Angle(theta) * s1.Radian
}

// Declination returns the Sun's declination for a 1-based day of year.
//
// The model is the CBM day-length approximation:
//
//	theta = 0.2163108 + 2 atan(0.9671396 tan(0.00860 (day - 186)))
//	decl  = asin(0.39795 cos(theta))
func Declination(day int) s1.Angle {
	return s1.Angle(math.Asin(sinObliquity*math.Cos(SeasonalAngle(day).Radians()))) * s1.Radian
}
