package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"spot-lcoe/internal/data"
)

func main() {
	var (
		domain     = flag.String("domain", data.DomainFrance, "ENTSO-E bidding zone EIC code")
		startDate  = flag.String("start", "", "Start date (YYYY-MM-DD, inclusive)")
		endDate    = flag.String("end", "", "End date (YYYY-MM-DD, exclusive)")
		outputPath = flag.String("out", "", "Output CSV path (default: ./data/prices_<start>_<end>.csv)")
	)
	flag.Parse()

	token := os.Getenv("ENTSOE_API_TOKEN")
	if token == "" {
		log.Fatal("ENTSOE_API_TOKEN environment variable is required")
	}

	start, end, err := parseRange(*startDate, *endDate)
	if err != nil {
		log.Fatal(err)
	}

	if *outputPath == "" {
		*outputPath = filepath.Join("data", fmt.Sprintf("prices_%s_%s.csv",
			start.Format("20060102"), end.Format("20060102")))
	}

	client := data.NewEntsoeClient(token, "")

	fmt.Printf("Downloading day-ahead prices for %s (%s to %s)\n",
		*domain, start.Format("2006-01-02"), end.Format("2006-01-02"))

	obs, err := client.QueryDayAheadPrices(*domain, start, end)
	if err != nil {
		log.Fatalf("Failed to download prices: %v", err)
	}
	if len(obs) == 0 {
		log.Fatal("No observations returned for the requested range")
	}

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}
	if err := data.WriteProcessedCSV(*outputPath, obs); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	fmt.Printf("Saved %d observations to %s\n", len(obs), *outputPath)
}

func parseRange(startStr, endStr string) (time.Time, time.Time, error) {
	if startStr == "" || endStr == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("--start and --end are required")
	}
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad start date %q: %w", startStr, err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("bad end date %q: %w", endStr, err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start must be before end")
	}
	return start, end, nil
}
