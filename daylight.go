// Package daylight computes the length of daylight (time between sunrise and
// sunset) for any latitude over a non-leap calendar year, and derives the
// views a chart or report needs: weekly samples, monthly averages and the
// two solstice extrema.
//
// The model is an idealized flat-horizon, standard-atmosphere approximation:
// no atmospheric refraction, no elevation or topography, no time zones. See
// Disclaimer.
//
// Everything in this package is a pure function of its inputs; nothing is
// cached unless a Builder with a cache is used, and that never changes results.
package daylight

import (
	"errors"
	"fmt"
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"github.com/thurmanmarka/daylight/internal/calendar"
	"github.com/thurmanmarka/daylight/internal/solar"
)

// Disclaimer describes the limits of the day-length model for consumers.
const Disclaimer = "Based on astronomical calculations. Daylight hours = time between sunrise and sunset. " +
	"All times are theoretical values without accounting for topography or atmospheric effects."

// DaysInYear is the number of days in the (non-leap) calendar used throughout.
const DaysInYear = calendar.DaysInYear

var (
	// ErrLatitudeOutOfRange is returned for latitudes outside [-90, 90] (or NaN).
	ErrLatitudeOutOfRange = errors.New("latitude out of range [-90, 90]")

	// ErrDayOutOfRange is returned for days of year outside [1, 365].
	ErrDayOutOfRange = errors.New("day of year out of range [1, 365]")
)

// DaylightSample is the day length of one calendar day at one latitude.
type DaylightSample struct {
	DayOfYear int     `json:"dayOfYear"`
	Label     string  `json:"date"`            // "Mon D"
	Hours     float64 `json:"hours"`           // rounded to 2 decimals
	Exact     float64 `json:"-"`               // full precision
	Formatted string  `json:"formattedLength"` // "Hh Mm" of Exact
}

// DayLength returns the hours of daylight on the given day of year at the
// given latitude (degrees, north positive). During polar night it returns
// exactly 0 and during polar day exactly 24.
func DayLength(day int, lat float64) (float64, error) {
	if err := checkDay(day); err != nil {
		return 0, err
	}
	if err := checkLatitude(lat); err != nil {
		return 0, err
	}
	return solar.DayLength(day, latitudeAngle(lat)), nil
}

// PolarCondition reports whether the Sun stays below the horizon all day
// (polar night) or above it all day (polar day).
func PolarCondition(day int, lat float64) (polarNight, polarDay bool, err error) {
	if err := checkDay(day); err != nil {
		return false, false, err
	}
	if err := checkLatitude(lat); err != nil {
		return false, false, err
	}
	polarNight, polarDay = solar.PolarCondition(day, latitudeAngle(lat))
	return polarNight, polarDay, nil
}

// Declination returns the Sun's declination in degrees on the given day of year.
func Declination(day int) (float64, error) {
	if err := checkDay(day); err != nil {
		return 0, err
	}
	return solar.Declination(day).Degrees(), nil
}

// Label converts a day of year into "Mon D", e.g. Label(32) == "Feb 1".
func Label(day int) (string, error) {
	label, ok := calendar.Label(day)
	if !ok {
		return "", fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	return label, nil
}

// FormatDuration renders fractional hours as "Hh Mm", with minutes rounded to
// the nearest whole minute. A rounding that reaches 60 minutes carries into
// the hour, so 11.999 renders as "12h 0m". 11.99 is 11h 59.4m and renders
// as "11h 59m" without carrying. Negative values get a leading "-";
// NaN and infinities render as "n/a".
func FormatDuration(hours float64) string {
	if math.IsNaN(hours) || math.IsInf(hours, 0) {
		return "n/a"
	}

	sign := ""
	if hours < 0 {
		sign = "-"
		hours = -hours
	}

	h := math.Floor(hours)
	m := math.Round((hours - h) * 60)
	if m >= 60 {
		h++
		m = 0
	}

	if h == 0 && m == 0 {
		sign = ""
	}

	return fmt.Sprintf("%s%dh %dm", sign, int64(h), int64(m))
}

func checkDay(day int) error {
	if day < 1 || day > DaysInYear {
		return fmt.Errorf("%w: %d", ErrDayOutOfRange, day)
	}
	return nil
}

func checkLatitude(lat float64) error {
	if !s2.LatLngFromDegrees(lat, 0).IsValid() {
		return fmt.Errorf("%w: %v", ErrLatitudeOutOfRange, lat)
	}
	return nil
}

func latitudeAngle(lat float64) s1.Angle {
	return s1.Angle(lat) * s1.Degree
}

// round2 rounds to 2 decimal places, the precision used for display figures.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
