package daylight

import (
	"errors"
	"fmt"
	"strings"
)

// Granularity selects the sampling resolution of an aligned table.
type Granularity string

const (
	// Weekly samples days 1, 8, 15 and 22 of each month (48 points).
	Weekly Granularity = "weekly"
	// Monthly averages each month's weekly samples (12 points).
	Monthly Granularity = "monthly"
)

var (
	// ErrUnknownGranularity is returned for anything but Weekly or Monthly.
	ErrUnknownGranularity = errors.New("unknown granularity")

	// ErrAlignment is returned when locations expose different sample counts.
	ErrAlignment = errors.New("series cannot be aligned")

	// ErrNoLocations is returned when there is nothing to align.
	ErrNoLocations = errors.New("no locations")
)

// ParseGranularity parses "weekly" or "monthly" (case-insensitive).
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(strings.ToLower(strings.TrimSpace(s))); g {
	case Weekly, Monthly:
		return g, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
}

// Point is one labelled value of a series at a given granularity.
type Point struct {
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// Points projects the location's weekly samples or monthly averages.
func (d LocationYearData) Points(g Granularity) ([]Point, error) {
	switch g {
	case Weekly:
		points := make([]Point, len(d.Weekly))
		for i, s := range d.Weekly {
			points[i] = Point{Label: s.Label, Hours: s.Hours}
		}
		return points, nil
	case Monthly:
		points := make([]Point, len(d.Monthly))
		for i, m := range d.Monthly {
			points[i] = Point{Label: m.Label, Hours: m.AverageHours}
		}
		return points, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownGranularity, string(g))
	}
}

// AlignedRow is one x-axis position of a multi-location chart: the shared
// label and one value per location, in the order the locations were given.
type AlignedRow struct {
	Label  string    `json:"date"`
	Values []float64 `json:"values"`
}

// Align combines several locations into one table keyed by sample index.
// Labels come from the first location. Every location must expose the same
// number of samples for g; otherwise ErrAlignment is returned and no rows
// are produced.
func Align(locations []LocationYearData, g Granularity) ([]AlignedRow, error) {
	if len(locations) == 0 {
		return nil, ErrNoLocations
	}

	series := make([][]Point, len(locations))
	for i, loc := range locations {
		points, err := loc.Points(g)
		if err != nil {
			return nil, err
		}
		if i > 0 && len(points) != len(series[0]) {
			return nil, fmt.Errorf("%w: %s has %d %s samples, %s has %d",
				ErrAlignment, locationName(loc), len(points), g, locationName(locations[0]), len(series[0]))
		}
		series[i] = points
	}

	rows := make([]AlignedRow, len(series[0]))
	for idx := range rows {
		values := make([]float64, len(series))
		for i := range series {
			values[i] = series[i][idx].Hours
		}
		rows[idx] = AlignedRow{
			Label:  series[0][idx].Label,
			Values: values,
		}
	}

	return rows, nil
}

// Columns returns the display name of each location, in order. Unnamed
// locations are labelled with their latitude.
func Columns(locations []LocationYearData) []string {
	cols := make([]string, len(locations))
	for i, loc := range locations {
		cols[i] = locationName(loc)
	}
	return cols
}

func locationName(loc LocationYearData) string {
	return Location{Name: loc.Name, Latitude: loc.Latitude}.label()
}
