package model

import (
	"strings"
	"time"
)

// MonthOrder is the calendar rendering order used by every table and CSV
// artifact: rows are years, columns are these twelve months.
var MonthOrder = [12]time.Month{
	time.January, time.February, time.March, time.April,
	time.May, time.June, time.July, time.August,
	time.September, time.October, time.November, time.December,
}

var daysPerMonth = map[time.Month]int{
	time.January:   31,
	time.February:  28, // non-leap by convention, matches the service-ratio model
	time.March:     31,
	time.April:     30,
	time.May:       31,
	time.June:      30,
	time.July:      31,
	time.August:    31,
	time.September: 30,
	time.October:   31,
	time.November:  30,
	time.December:  31,
}

// DaysInMonth returns the non-leap day count for m.
func DaysInMonth(m time.Month) int {
	return daysPerMonth[m]
}

// MonthFromName parses a full English month name ("January", "january").
func MonthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, m := range MonthOrder {
		if strings.ToLower(m.String()) == name {
			return m, true
		}
	}
	return 0, false
}
