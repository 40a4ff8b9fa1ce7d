package analysis

import (
	"sort"
	"strconv"
	"time"

	"spot-lcoe/internal/model"
	"spot-lcoe/internal/selection"
)

// MonthlyTable is the canonical year -> month -> selection result structure
// consumed by every report. It always carries all twelve month cells for every
// year it knows about: a month with no observations holds a nil cell rather
// than being absent, so renderers can index the full calendar safely.
type MonthlyTable struct {
	cells map[int]map[time.Month]*selection.Result
}

func NewMonthlyTable() *MonthlyTable {
	return &MonthlyTable{cells: map[int]map[time.Month]*selection.Result{}}
}

func (t *MonthlyTable) ensureYear(year int) {
	if _, ok := t.cells[year]; !ok {
		row := make(map[time.Month]*selection.Result, 12)
		for _, m := range model.MonthOrder {
			row[m] = nil
		}
		t.cells[year] = row
	}
}

func (t *MonthlyTable) set(year int, m time.Month, r *selection.Result) {
	t.ensureYear(year)
	t.cells[year][m] = r
}

// Get returns the selection result for (year, month), or nil when that month
// had no observations or the year is unknown.
func (t *MonthlyTable) Get(year int, m time.Month) *selection.Result {
	row, ok := t.cells[year]
	if !ok {
		return nil
	}
	return row[m]
}

// Years lists the years present, ascending.
func (t *MonthlyTable) Years() []int {
	years := make([]int, 0, len(t.cells))
	for y := range t.cells {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// Hours returns the purchasable hour count for (year, month), or nil for both
// "no data" and "no qualifying hours" — the two cases the original reports
// render identically as an empty cell.
func (t *MonthlyTable) Hours(year int, m time.Month) *int {
	cell := t.Get(year, m)
	if cell == nil || !cell.Qualified() {
		return nil
	}
	h := cell.TotalHours
	return &h
}

// MeanHours averages the qualified hour counts per month across all years.
// Months where every year is absent/unqualified yield nil.
func (t *MonthlyTable) MeanHours() map[time.Month]*float64 {
	out := make(map[time.Month]*float64, 12)
	for _, m := range model.MonthOrder {
		var sum float64
		n := 0
		for _, y := range t.Years() {
			if h := t.Hours(y, m); h != nil {
				sum += float64(*h)
				n++
			}
		}
		if n == 0 {
			out[m] = nil
			continue
		}
		mean := sum / float64(n)
		out[m] = &mean
	}
	return out
}

// Nested renders the table as the year-string -> month-name -> hours-or-null
// mapping exchanged with external consumers (JSON responses, exports).
func (t *MonthlyTable) Nested() map[string]map[string]*int {
	out := make(map[string]map[string]*int, len(t.cells))
	for _, y := range t.Years() {
		row := make(map[string]*int, 12)
		for _, m := range model.MonthOrder {
			row[m.String()] = t.Hours(y, m)
		}
		out[strconv.Itoa(y)] = row
	}
	return out
}

// Aggregate groups observations by (year, month), runs the hour selection per
// group and assembles the monthly table. Group discovery order is irrelevant;
// the table keeps calendar order on its own.
func Aggregate(obs []model.PriceObservation, targetPrice, ppaPrice float64) *MonthlyTable {
	table := NewMonthlyTable()
	for key, prices := range model.GroupByMonth(obs) {
		r := selection.Select(prices, targetPrice, ppaPrice)
		table.set(key.Year, key.Month, &r)
	}
	return table
}
