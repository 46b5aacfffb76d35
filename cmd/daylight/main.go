package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/thurmanmarka/daylight"
	"github.com/thurmanmarka/daylight/internal/gazetteer"
)

func main() {
	log.SetFlags(0)

	// No args or a leading flag runs the single-location year view.
	// Otherwise the first arg is a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runYear(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "compare":
		runCompare(os.Args[2:])
	case "places":
		runPlaces(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `daylight – day length over the year

Usage:
  daylight [flags]             # solstices and series for one location (default mode)
  daylight compare [flags]     # aligned table for up to %d locations
  daylight places [flags]      # list the gazetteer

Default mode flags:
  -lat float
        latitude in degrees (north positive)
  -place string
        place name from the gazetteer (overrides -lat)
  -granularity string
        weekly or monthly (default "weekly")
  -daily
        include all 365 days
  -json
        output result as JSON
  -gazetteer string
        YAML file with extra places

For compare mode:
  daylight compare -h
`, daylight.MaxLocations)
}

// ---------------------
// Year (default) mode
// ---------------------

func runYear(args []string) {
	fs := flag.NewFlagSet("daylight", flag.ExitOnError)

	lat := fs.Float64("lat", 0, "latitude in degrees (north positive)")
	place := fs.String("place", "", "place name from the gazetteer (overrides -lat)")
	granS := fs.String("granularity", string(daylight.Weekly), "series granularity: weekly or monthly")
	daily := fs.Bool("daily", false, "include all 365 days")
	jsonOut := fs.Bool("json", false, "output result as JSON")
	gazFile := fs.String("gazetteer", "", "YAML file with extra places")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daylight [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	g, err := daylight.ParseGranularity(*granS)
	if err != nil {
		log.Fatalf("invalid -granularity: %v", err)
	}

	loc := daylight.Location{Latitude: *lat}
	if *place != "" {
		places := loadPlaces(*gazFile)
		resolved, err := resolve(places, *place)
		if err != nil {
			log.Fatalf("%v", err)
		}
		loc = resolved
	} else if *lat == 0 {
		log.Println("warning: lat=0 (equator). Use -lat or -place to set a real location.")
	}

	year, err := daylight.BuildNamed(loc.Name, loc.Latitude)
	if err != nil {
		log.Fatalf("error building year: %v", err)
	}
	if !*daily {
		year.Daily = nil
	}

	if *jsonOut {
		printJSON(os.Stdout, year)
		return
	}
	if err := printYear(os.Stdout, year, g); err != nil {
		log.Fatalf("%v", err)
	}
}

// ---------------------
// Compare subcommand
// ---------------------

func runCompare(args []string) {
	fs := flag.NewFlagSet("compare", flag.ExitOnError)

	placesS := fs.String("places", strings.Join(gazetteer.DefaultPlaces, ","), "comma-separated place names")
	latsS := fs.String("lats", "", "comma-separated extra latitudes")
	granS := fs.String("granularity", string(daylight.Weekly), "weekly or monthly")
	jsonOut := fs.Bool("json", false, "output result as JSON")
	gazFile := fs.String("gazetteer", "", "YAML file with extra places")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: daylight compare [flags]

Flags:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	g, err := daylight.ParseGranularity(*granS)
	if err != nil {
		log.Fatalf("invalid -granularity: %v", err)
	}

	places := loadPlaces(*gazFile)
	locations, err := parseLocations(places, *placesS, *latsS)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cmp, err := daylight.Compare(context.Background(), locations, g)
	if err != nil {
		log.Fatalf("error comparing locations: %v", err)
	}

	if *jsonOut {
		printJSON(os.Stdout, cmp)
		return
	}
	printComparison(os.Stdout, cmp)
}

// ---------------------
// Places subcommand
// ---------------------

func runPlaces(args []string) {
	fs := flag.NewFlagSet("places", flag.ExitOnError)
	gazFile := fs.String("gazetteer", "", "YAML file with extra places")
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	places := loadPlaces(*gazFile)
	if err := printPlaces(os.Stdout, places); err != nil {
		log.Fatalf("%v", err)
	}
}

// ---------------------
// Shared helpers
// ---------------------

func loadPlaces(path string) *gazetteer.Table {
	places := gazetteer.Builtin()
	if path == "" {
		return places
	}
	extra, err := gazetteer.LoadYAML(path)
	if err != nil {
		log.Fatalf("failed to load gazetteer %q: %v", path, err)
	}
	return places.Merge(extra)
}

func resolve(places *gazetteer.Table, name string) (daylight.Location, error) {
	place, err := places.Resolve(context.Background(), name)
	if err != nil {
		return daylight.Location{}, err
	}
	return daylight.Location{Name: place.Name, Latitude: place.Latitude}, nil
}

// parseLocations resolves comma-separated names, then appends bare latitudes.
func parseLocations(places *gazetteer.Table, names, lats string) ([]daylight.Location, error) {
	var out []daylight.Location
	for _, name := range splitList(names) {
		loc, err := resolve(places, name)
		if err != nil {
			return nil, err
		}
		out = append(out, loc)
	}
	for _, s := range splitList(lats) {
		lat, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid latitude %q: %w", s, err)
		}
		out = append(out, daylight.Location{Latitude: lat})
	}
	return out, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printYear(w io.Writer, year daylight.LocationYearData, g daylight.Granularity) error {
	name := year.Name
	if name == "" {
		name = "lat"
	}
	fmt.Fprintf(w, "Daylight for %s (%.4f°)\n\n", name, year.Latitude)
	fmt.Fprintf(w, "Winter solstice: %-7s %s\n", year.Winter.Label, year.Winter.Formatted)
	fmt.Fprintf(w, "Summer solstice: %-7s %s\n", year.Summer.Label, year.Summer.Formatted)
	_, diff := year.Difference()
	fmt.Fprintf(w, "Difference:      %s\n\n", diff)

	points, err := year.Points(g)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, p := range points {
		fmt.Fprintf(tw, "%s\t%.2f\t%s\n", p.Label, p.Hours, daylight.FormatDuration(p.Hours))
	}
	for _, s := range year.Daily {
		fmt.Fprintf(tw, "day %d\t%s\t%.2f\t%s\n", s.DayOfYear, s.Label, s.Hours, s.Formatted)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%s\n", daylight.Disclaimer)
	return nil
}

func printComparison(w io.Writer, cmp daylight.Comparison) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\t%s\t\n", periodHeader(cmp.Granularity), strings.Join(cmp.Columns, "\t"))
	for _, row := range cmp.Rows {
		cells := make([]string, len(row.Values))
		for i, v := range row.Values {
			cells[i] = strconv.FormatFloat(v, 'f', 2, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", row.Label, strings.Join(cells, "\t"))
	}
	tw.Flush()

	fmt.Fprintln(w)
	for _, loc := range cmp.Locations {
		name := loc.Name
		if name == "" {
			name = fmt.Sprintf("%.2f°", loc.Latitude)
		}
		fmt.Fprintf(w, "%s: winter %s %s, summer %s %s, difference %s\n",
			name, loc.Winter.Label, loc.Winter.Formatted, loc.Summer.Label, loc.Summer.Formatted, loc.DifferenceFormatted)
	}
}

func periodHeader(g daylight.Granularity) string {
	if g == daylight.Monthly {
		return "Month"
	}
	return "Week"
}

func printPlaces(w io.Writer, places *gazetteer.Table) error {
	names, err := places.Names(context.Background())
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, name := range names {
		lat, _ := places.Lookup(context.Background(), name)
		fmt.Fprintf(tw, "%s\t%.2f\n", name, lat)
	}
	return tw.Flush()
}

func printJSON(w io.Writer, v any) {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}
