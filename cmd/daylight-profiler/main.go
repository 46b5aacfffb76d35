package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
)

func main() {
	log.SetFlags(0)

	var (
		lat     = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon     = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative); only used with -ref sunrise")
		year    = flag.Int("year", 2025, "year to evaluate with -ref sunrise")
		ref     = flag.String("ref", "csv", "reference source: csv or sunrise (github.com/nathan-osman/go-sunrise)")
		refCSV  = flag.String("refcsv", "", "path to reference ephemeris CSV file (date,rise,set)")
		verbose = flag.Bool("verbose", false, "print per-day errors instead of only summary")
		outCSV  = flag.String("outcsv", "", "optional path to write per-row error CSV")
	)
	flag.Parse()

	var (
		days    []refDay
		skipped int
		source  string
	)
	switch strings.ToLower(*ref) {
	case "csv":
		if *refCSV == "" {
			log.Fatalf("missing -refcsv (path to reference CSV)")
		}
		f, err := os.Open(*refCSV)
		if err != nil {
			log.Fatalf("failed to open refcsv %q: %v", *refCSV, err)
		}
		days, skipped, err = readReference(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to load reference: %v", err)
		}
		source = *refCSV
	case "sunrise":
		if *lat == 0 && *lon == 0 {
			log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
		}
		days, skipped = sunriseReference(*lat, *lon, *year)
		source = fmt.Sprintf("go-sunrise %d (lon %.4f)", *year, *lon)
	default:
		log.Fatalf("unknown -ref %q (use csv or sunrise)", *ref)
	}

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write(outHeader); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	p, err := compare(*lat, days, outWriter, *verbose)
	if err != nil {
		log.Fatalf("profiling failed: %v", err)
	}

	fmt.Println("=== daylight profiler summary ===")
	fmt.Printf("Reference: %s\n", source)
	fmt.Printf("Lat:       %.4f\n", *lat)
	fmt.Printf("Rows:      %d (processed), %d skipped\n", len(days), skipped)

	if p.abs.count == 0 {
		fmt.Println("No valid rows to compute stats.")
		return
	}

	fmt.Println("\nDay length error (minutes):")
	fmt.Printf("  count: %d\n", p.abs.count)
	fmt.Printf("  min:   %.3f\n", p.abs.min)
	fmt.Printf("  max:   %.3f (%s)\n", p.abs.max, p.worst.date)
	fmt.Printf("  avg:   %.3f\n", p.abs.avg())

	fmt.Println("\nDay length signed error (minutes, model - ref):")
	fmt.Printf("  count: %d\n", p.signed.count)
	fmt.Printf("  min:   %.3f\n", p.signed.min)
	fmt.Printf("  max:   %.3f\n", p.signed.max)
	fmt.Printf("  mean:  %.3f\n", p.signed.avg())
}
