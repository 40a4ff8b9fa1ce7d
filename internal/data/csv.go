package data

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"spot-lcoe/internal/model"
)

// Market prices are bucketed on the local civil calendar; using UTC would
// misclassify the first/last hour of a month around DST changes.
const marketTimezone = "Europe/Paris"

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// LoadPriceCSV reads a processed hourly price file into observations.
//
// Two header shapes are accepted:
//   - Date, Heure, Prix (aliases: Hour, Prix_EUR_MWh, Price) — the processed
//     export format; Date is YYYY-MM-DD in local time, Heure is 0-23.
//   - Timestamp, Prix_EUR_MWh — the raw download format; timestamps carrying
//     zone info are converted to Europe/Paris before bucketing.
//
// Extra columns (Mois, Jours, pandas index columns) are ignored. Duplicate
// timestamps keep the first row. Malformed rows are an error: a broken input
// file must abort the run rather than produce a partial table.
func LoadPriceCSV(path string) ([]model.PriceObservation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	loc, err := time.LoadLocation(marketTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %s: %w", marketTimezone, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	cols := locateColumns(header)
	if cols.price < 0 {
		return nil, fmt.Errorf("%s: no price column (expected Prix, Prix_EUR_MWh or Price)", path)
	}
	if cols.timestamp < 0 && (cols.date < 0 || cols.hour < 0) {
		return nil, fmt.Errorf("%s: need either a Timestamp column or Date+Heure columns", path)
	}

	var obs []model.PriceObservation
	seen := map[time.Time]bool{}
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line+1, err)
		}
		line++

		price, err := strconv.ParseFloat(strings.TrimSpace(record[cols.price]), 64)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: bad price %q", path, line, record[cols.price])
		}

		var ts time.Time
		if cols.timestamp >= 0 {
			ts, err = parseTimestamp(strings.TrimSpace(record[cols.timestamp]), loc)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", path, line, err)
			}
		} else {
			day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(record[cols.date]), loc)
			if err != nil {
				return nil, fmt.Errorf("%s line %d: bad date %q", path, line, record[cols.date])
			}
			hour, err := strconv.Atoi(strings.TrimSpace(record[cols.hour]))
			if err != nil || hour < 0 || hour > 23 {
				return nil, fmt.Errorf("%s line %d: bad hour %q", path, line, record[cols.hour])
			}
			ts = day.Add(time.Duration(hour) * time.Hour)
		}

		if seen[ts] {
			continue
		}
		seen[ts] = true
		obs = append(obs, model.PriceObservation{Timestamp: ts, Price: price})
	}
	return obs, nil
}

// WriteProcessedCSV writes observations in the processed Date/Heure/Prix
// format consumed by LoadPriceCSV and the analysis commands.
func WriteProcessedCSV(path string, obs []model.PriceObservation) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"Date", "Heure", "Prix"}); err != nil {
		return err
	}
	for _, o := range obs {
		row := []string{
			o.Timestamp.Format("2006-01-02"),
			strconv.Itoa(o.Timestamp.Hour()),
			strconv.FormatFloat(o.Price, 'f', 2, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

type columnIndexes struct {
	date, hour, price, timestamp int
}

func locateColumns(header []string) columnIndexes {
	cols := columnIndexes{date: -1, hour: -1, price: -1, timestamp: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "heure", "hour":
			cols.hour = i
		case "prix", "prix_eur_mwh", "price":
			cols.price = i
		case "timestamp":
			cols.timestamp = i
		}
	}
	return cols
}

func parseTimestamp(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("bad timestamp %q", s)
}
