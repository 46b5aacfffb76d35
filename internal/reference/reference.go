// Package reference computes day lengths from an independent sunrise/sunset
// implementation, used to measure how far the idealized model drifts.
package reference

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/daylight/internal/calendar"
)

// SunriseSunset returns the UTC rise and set for a day of the non-leap
// calendar in year. ok is false for an invalid day or when the sun does not
// cross the horizon.
func SunriseSunset(lat, lon float64, year, day int) (rise, set time.Time, ok bool) {
	month, dom, valid := calendar.MonthDay(day)
	if !valid {
		return time.Time{}, time.Time{}, false
	}
	rise, set = sunrise.SunriseSunset(lat, lon, year, time.Month(month+1), dom)
	if rise.IsZero() || set.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	return rise, set, true
}

// GoSunrise returns the hours between sunrise and sunset as reported by
// go-sunrise, which includes atmospheric refraction and the solar disc.
func GoSunrise(lat, lon float64, year, day int) (hours float64, ok bool) {
	rise, set, ok := SunriseSunset(lat, lon, year, day)
	if !ok {
		return 0, false
	}
	return set.Sub(rise).Hours(), true
}
