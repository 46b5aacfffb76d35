package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strings"
	"time"

	"github.com/thurmanmarka/daylight"
	"github.com/thurmanmarka/daylight/internal/calendar"
	"github.com/thurmanmarka/daylight/internal/reference"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) avg() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

// refDay is one reference day length keyed by day of the non-leap year.
type refDay struct {
	date  string
	day   int
	hours float64
}

// readReference parses rows of the form
//
//	date,rise,set
//	2025-01-01,07:32,17:12
//
// where date is YYYY-MM-DD and rise/set are local HH:MM or HH:MM:SS. Only the
// difference between rise and set matters, so the time zone is irrelevant.
// Feb 29 has no slot in the model's calendar and is skipped.
func readReference(r io.Reader) (days []refDay, skipped int, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // allow variable, we validate

	records, err := cr.ReadAll()
	if err != nil {
		return nil, 0, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, 0, errors.New("empty CSV file")
	}

	// If first row looks like a header, skip it.
	startIdx := 0
	if len(records[0]) >= 1 && strings.EqualFold(strings.TrimSpace(records[0][0]), "date") {
		startIdx = 1
	}

	for i := startIdx; i < len(records); i++ {
		row := records[i]
		if len(row) < 3 {
			log.Printf("row %d: expected at least 3 columns (date,rise,set), got %d, skipping", i+1, len(row))
			skipped++
			continue
		}
		dateStr := strings.TrimSpace(row[0])

		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Printf("row %d: invalid date %q: %v, skipping", i+1, dateStr, err)
			skipped++
			continue
		}
		day, ok := calendar.DayOfYear(int(date.Month())-1, date.Day())
		if !ok {
			log.Printf("row %d: %s has no day in a 365-day year, skipping", i+1, dateStr)
			skipped++
			continue
		}

		rise, err := parseClock(strings.TrimSpace(row[1]))
		if err != nil {
			log.Printf("row %d: invalid rise time %q: %v, skipping", i+1, row[1], err)
			skipped++
			continue
		}
		set, err := parseClock(strings.TrimSpace(row[2]))
		if err != nil {
			log.Printf("row %d: invalid set time %q: %v, skipping", i+1, row[2], err)
			skipped++
			continue
		}

		length := set - rise
		if length < 0 {
			// Sunset after local midnight.
			length += 24 * time.Hour
		}
		days = append(days, refDay{date: dateStr, day: day, hours: length.Hours()})
	}
	return days, skipped, nil
}

// parseClock returns the offset of an HH:MM or HH:MM:SS clock time from midnight.
func parseClock(hhmm string) (time.Duration, error) {
	layout := "15:04"
	if strings.Count(hhmm, ":") == 2 {
		layout = "15:04:05"
	}
	parsed, err := time.Parse(layout, hhmm)
	if err != nil {
		return 0, err
	}
	return time.Duration(parsed.Hour())*time.Hour +
		time.Duration(parsed.Minute())*time.Minute +
		time.Duration(parsed.Second())*time.Second, nil
}

// sunriseReference builds a full year of reference days from go-sunrise.
// Days on which the sun never crosses the horizon are counted as skipped.
func sunriseReference(lat, lon float64, year int) (days []refDay, skipped int) {
	for day := 1; day <= daylight.DaysInYear; day++ {
		hours, ok := reference.GoSunrise(lat, lon, year, day)
		if !ok {
			skipped++
			continue
		}
		label, _ := daylight.Label(day)
		days = append(days, refDay{date: label, day: day, hours: hours})
	}
	return days, skipped
}

type profile struct {
	abs    stats
	signed stats
	worst  refDay
}

// compare accumulates |model-ref| and model-ref in minutes for each day.
// When out is non-nil a per-row record is written.
func compare(lat float64, days []refDay, out *csv.Writer, verbose bool) (profile, error) {
	var p profile
	for _, d := range days {
		model, err := daylight.DayLength(d.day, lat)
		if err != nil {
			return p, err
		}
		signed := (model - d.hours) * 60
		abs := math.Abs(signed)

		if p.abs.count == 0 || abs > p.abs.max {
			p.worst = d
		}
		p.abs.add(abs)
		p.signed.add(signed)

		if verbose {
			fmt.Printf("%s (day %d): err=%.2f min (model=%s ref=%s)\n",
				d.date, d.day, signed, daylight.FormatDuration(model), daylight.FormatDuration(d.hours))
		}

		if out != nil {
			rec := []string{
				d.date,
				fmt.Sprintf("%d", d.day),
				fmt.Sprintf("%.6f", model),
				fmt.Sprintf("%.6f", d.hours),
				fmt.Sprintf("%.6f", abs),
				fmt.Sprintf("%.6f", signed),
			}
			if err := out.Write(rec); err != nil {
				return p, fmt.Errorf("write outcsv: %w", err)
			}
		}
	}
	return p, nil
}

var outHeader = []string{"date", "day", "model_hours", "ref_hours", "abs_err_min", "signed_err_min"}
