package calendar

import "testing"

func TestLabel(t *testing.T) {
	tests := []struct {
		day  int
		want string
	}{
		{1, "Jan 1"},
		{31, "Jan 31"},
		{32, "Feb 1"},
		{59, "Feb 28"},
		{60, "Mar 1"},
		{172, "Jun 21"},
		{356, "Dec 22"},
		{365, "Dec 31"},
	}

	for _, tt := range tests {
		got, ok := Label(tt.day)
		if !ok {
			t.Fatalf("Label(%d) not ok", tt.day)
		}
		if got != tt.want {
			t.Errorf("Label(%d) = %q, want %q", tt.day, got, tt.want)
		}
	}
}

func TestLabelOutOfRange(t *testing.T) {
	for _, day := range []int{-1, 0, 366, 1000} {
		if got, ok := Label(day); ok {
			t.Errorf("Label(%d) = %q, want failure", day, got)
		}
	}
}

func TestDayOfYearRoundTrip(t *testing.T) {
	for day := 1; day <= DaysInYear; day++ {
		month, dom, ok := MonthDay(day)
		if !ok {
			t.Fatalf("MonthDay(%d) not ok", day)
		}
		back, ok := DayOfYear(month, dom)
		if !ok || back != day {
			t.Fatalf("DayOfYear(%d, %d) = %d, %v; want %d", month, dom, back, ok, day)
		}
	}
}

func TestDayOfYearRejectsInvalid(t *testing.T) {
	cases := [][2]int{{-1, 1}, {12, 1}, {1, 29}, {3, 31}, {0, 0}}
	for _, c := range cases {
		if _, ok := DayOfYear(c[0], c[1]); ok {
			t.Errorf("DayOfYear(%d, %d) accepted invalid date", c[0], c[1])
		}
	}
}

func TestMonthStart(t *testing.T) {
	want := [12]int{1, 32, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}
	for m, w := range want {
		if got := MonthStart(m); got != w {
			t.Errorf("MonthStart(%d) = %d, want %d", m, got, w)
		}
	}
}
