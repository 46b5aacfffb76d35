package calendar

import "fmt"

// DaysInYear is the length of the fixed (non-leap) calendar year.
const DaysInYear = 365

// MonthLengths holds the number of days in each month of a non-leap year.
var MonthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// MonthNames holds the three-letter month abbreviations, January first.
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// MonthDay converts a 1-based day of year into a 0-based month index and a
// 1-based day of month. ok is false when day is outside [1, DaysInYear].
func MonthDay(day int) (month, dayOfMonth int, ok bool) {
	if day < 1 || day > DaysInYear {
		return 0, 0, false
	}

	dayOfMonth = day
	for dayOfMonth > MonthLengths[month] {
		dayOfMonth -= MonthLengths[month]
		month++
	}
	return month, dayOfMonth, true
}

// DayOfYear returns the 1-based day of year for a 0-based month index and a
// 1-based day of month.
func DayOfYear(month, dayOfMonth int) (int, bool) {
	if month < 0 || month > 11 || dayOfMonth < 1 || dayOfMonth > MonthLengths[month] {
		return 0, false
	}
	return MonthStart(month) + dayOfMonth - 1, true
}

// MonthStart returns the day of year of the first day of the given 0-based month.
func MonthStart(month int) int {
	start := 1
	for m := 0; m < month; m++ {
		start += MonthLengths[m]
	}
	return start
}

// Label formats a day of year as "Mon D", e.g. "Jan 1" or "Dec 31".
func Label(day int) (string, bool) {
	month, dom, ok := MonthDay(day)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s %d", MonthNames[month], dom), true
}
