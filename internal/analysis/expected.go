package analysis

import (
	"math"
	"time"

	"spot-lcoe/internal/model"
)

// RequiredHours computes the monthly service-level hour targets from per-month
// availability ratios: days_in_month * 24 * ratio, rounded to whole hours.
// The targets do not vary by year (February is always 28 days here).
func RequiredHours(serviceRatios map[time.Month]float64) map[time.Month]float64 {
	out := make(map[time.Month]float64, 12)
	for _, m := range model.MonthOrder {
		out[m] = math.Round(float64(model.DaysInMonth(m)) * 24 * serviceRatios[m])
	}
	return out
}

// ExpectedConsumption converts monthly hour targets into expected energy draw
// in MWh for a plant of the given power.
func ExpectedConsumption(powerMW float64, hours map[time.Month]float64) map[time.Month]float64 {
	out := make(map[time.Month]float64, len(hours))
	for m, h := range hours {
		out[m] = powerMW * h
	}
	return out
}

// ComparePercent expresses actual monthly values as a percentage of the
// expected ones, rounded to two decimals. A nil actual stays nil ("no data");
// a zero expectation with a present actual yields 0.0 rather than an error —
// months deliberately scheduled off are a normal input.
func ComparePercent(actual map[time.Month]*float64, expected map[time.Month]float64) map[time.Month]*float64 {
	out := make(map[time.Month]*float64, len(actual))
	for m, a := range actual {
		if a == nil {
			out[m] = nil
			continue
		}
		var pct float64
		if exp := expected[m]; exp != 0 {
			pct = math.Round(*a/exp*100*100) / 100
		}
		out[m] = &pct
	}
	return out
}
