package daylight

import (
	"github.com/thurmanmarka/daylight/internal/calendar"
	"github.com/thurmanmarka/daylight/internal/solar"
	"github.com/thurmanmarka/daylight/internal/solver"
)

// WeeklyDays are the days of month sampled for the weekly view.
var WeeklyDays = [4]int{1, 8, 15, 22}

// MonthlySample is the average day length of one calendar month.
//
// AverageHours is the mean of the month's weekly samples (days 1, 8, 15 and
// 22), not of every day in the month.
type MonthlySample struct {
	Month        int     `json:"month"` // 1..12
	Label        string  `json:"label"` // "Jan".."Dec"
	AverageHours float64 `json:"avgHours"`
	Samples      int     `json:"samples"` // weekly samples averaged
}

// SolsticeRecord is the day of minimum (winter) or maximum (summer) daylight.
type SolsticeRecord struct {
	DayOfYear int     `json:"dayOfYear"`
	Label     string  `json:"date"`
	Hours     float64 `json:"hours"`           // rounded to 2 decimals
	Formatted string  `json:"formattedLength"` // "Hh Mm" of the unrounded value
}

// LocationYearData is the full-year result for one latitude.
type LocationYearData struct {
	Name     string           `json:"name,omitempty"`
	Latitude float64          `json:"latitude"`
	Daily    []DaylightSample `json:"daily,omitempty"`
	Weekly   []DaylightSample `json:"weekly"`
	Monthly  []MonthlySample  `json:"monthly"`
	Winter   SolsticeRecord   `json:"winterSolstice"`
	Summer   SolsticeRecord   `json:"summerSolstice"`
}

// Difference returns summer minus winter daylight and its "Hh Mm" rendering.
// It uses the solstice hours already rounded to 2 decimals.
func (d LocationYearData) Difference() (float64, string) {
	diff := round2(d.Summer.Hours - d.Winter.Hours)
	return diff, FormatDuration(d.Summer.Hours - d.Winter.Hours)
}

// BuildYear computes the daily series, weekly samples, monthly averages and
// solstices for a latitude in degrees.
func BuildYear(lat float64) (LocationYearData, error) {
	return BuildNamed("", lat)
}

// BuildNamed is BuildYear with a display name attached to the result.
func BuildNamed(name string, lat float64) (LocationYearData, error) {
	if err := checkLatitude(lat); err != nil {
		return LocationYearData{}, err
	}

	latAngle := latitudeAngle(lat)

	daily := make([]DaylightSample, 0, DaysInYear)
	for day := 1; day <= DaysInYear; day++ {
		daily = append(daily, newSample(day, solar.DayLength(day, latAngle)))
	}

	ext := solver.FindExtrema(func(i int) float64 { return daily[i].Exact }, 0, len(daily)-1)

	weekly := weeklySamples(daily)

	return LocationYearData{
		Name:     name,
		Latitude: lat,
		Daily:    daily,
		Weekly:   weekly,
		Monthly:  monthlyAverages(weekly),
		Winter:   solstice(daily[ext.Min.Index]),
		Summer:   solstice(daily[ext.Max.Index]),
	}, nil
}

func newSample(day int, hours float64) DaylightSample {
	label, _ := calendar.Label(day)
	return DaylightSample{
		DayOfYear: day,
		Label:     label,
		Hours:     round2(hours),
		Exact:     hours,
		Formatted: FormatDuration(hours),
	}
}

func solstice(s DaylightSample) SolsticeRecord {
	return SolsticeRecord{
		DayOfYear: s.DayOfYear,
		Label:     s.Label,
		Hours:     s.Hours,
		Formatted: s.Formatted,
	}
}

// weeklySamples picks days 1, 8, 15 and 22 of every month out of a complete
// daily series, skipping any day past the end of its month.
func weeklySamples(daily []DaylightSample) []DaylightSample {
	weekly := make([]DaylightSample, 0, 12*len(WeeklyDays))

	start := 1
	for month := 0; month < 12; month++ {
		for _, dom := range WeeklyDays {
			if dom > calendar.MonthLengths[month] {
				continue
			}
			weekly = append(weekly, daily[start+dom-2])
		}
		start += calendar.MonthLengths[month]
	}

	return weekly
}

// monthlyAverages averages the weekly samples of each month.
func monthlyAverages(weekly []DaylightSample) []MonthlySample {
	var (
		sums   [12]float64
		counts [12]int
	)

	for _, s := range weekly {
		month, _, ok := calendar.MonthDay(s.DayOfYear)
		if !ok {
			continue
		}
		sums[month] += s.Exact
		counts[month]++
	}

	monthly := make([]MonthlySample, 0, 12)
	for month := 0; month < 12; month++ {
		var avg float64
		if counts[month] > 0 {
			avg = round2(sums[month] / float64(counts[month]))
		}
		monthly = append(monthly, MonthlySample{
			Month:        month + 1,
			Label:        calendar.MonthNames[month],
			AverageHours: avg,
			Samples:      counts[month],
		})
	}

	return monthly
}
