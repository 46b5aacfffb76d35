package solver

import "math"

// SeriesFunc returns the value of a sampled series at index i.
type SeriesFunc func(i int) float64

// EventType describes whether we are looking for the lowest or highest value.
type EventType int

const (
	// Minimum selects the smallest value (e.g. the winter solstice).
	Minimum EventType = iota
	// Maximum selects the largest value (e.g. the summer solstice).
	Maximum
)

// Result holds the output of an extremum search.
type Result struct {
	Index int     // first index at which the extremum occurs
	Value float64 // the extremum
	OK    bool    // false if the range was empty or held only NaN
}

// Extrema holds both extremes found in one pass.
type Extrema struct {
	Min Result
	Max Result
}

// FindExtrema scans [first, last] once, tracking the running minimum and
// maximum of f. Comparisons are strict, so when a value recurs the earliest
// index wins. NaN samples are skipped.
func FindExtrema(f SeriesFunc, first, last int) Extrema {
	var ext Extrema
	if first > last {
		return ext
	}

	for i := first; i <= last; i++ {
		v := f(i)
		if math.IsNaN(v) {
			continue
		}

		if !ext.Min.OK || improves(v, ext.Min.Value, Minimum) {
			ext.Min = Result{Index: i, Value: v, OK: true}
		}
		if !ext.Max.OK || improves(v, ext.Max.Value, Maximum) {
			ext.Max = Result{Index: i, Value: v, OK: true}
		}
	}

	return ext
}

func improves(candidate, current float64, eventType EventType) bool {
	switch eventType {
	case Minimum:
		return candidate < current
	case Maximum:
		return candidate > current
	default:
		return false
	}
}
