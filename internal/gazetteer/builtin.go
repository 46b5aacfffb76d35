package gazetteer

// DefaultPlaces are the places preselected for a three-way comparison.
var DefaultPlaces = []string{"Hamburg", "Munich", "Rome"}

var builtinPlaces = map[string]float64{
	// Europe
	"Amsterdam":  52.37,
	"Athens":     37.98,
	"Barcelona":  41.38,
	"Berlin":     52.52,
	"Bern":       46.95,
	"Brussels":   50.85,
	"Dublin":     53.35,
	"Frankfurt":  50.11,
	"Hamburg":    53.55,
	"Helsinki":   60.17,
	"Copenhagen": 55.68,
	"Cologne":    50.94,
	"Lisbon":     38.72,
	"London":     51.51,
	"Madrid":     40.42,
	"Milan":      45.46,
	"Munich":     48.14,
	"Oslo":       59.91,
	"Paris":      48.86,
	"Prague":     50.08,
	"Reykjavik":  64.13,
	"Rome":       41.90,
	"Stockholm":  59.33,
	"Vienna":     48.21,
	"Zurich":     47.37,

	// North America
	"Anchorage":   61.22,
	"Chicago":     41.88,
	"Los Angeles": 34.05,
	"Miami":       25.76,
	"New York":    40.71,
	"Toronto":     43.65,
	"Vancouver":   49.28,

	// Asia & Oceania
	"Bangkok":   13.75,
	"Hong Kong": 22.28,
	"Mumbai":    19.08,
	"Singapore": 1.35,
	"Sydney":    -33.87,
	"Tokyo":     35.69,

	// Africa & South America
	"Cape Town":      -33.93,
	"Cairo":          30.04,
	"Rio de Janeiro": -22.91,
	"Buenos Aires":   -34.61,

	// Extreme latitudes
	"North Pole": 90.00,
	"Equator":    0.00,
	"South Pole": -90.00,
}

// Builtin returns the bundled table of cities and reference latitudes.
func Builtin() *Table {
	t, err := NewTable(builtinPlaces)
	if err != nil {
		// The bundled table is static and valid.
		panic(err)
	}
	return t
}
