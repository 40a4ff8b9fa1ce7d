// Package selection implements the budget-constrained greedy hour selection
// used by every analysis in this repository: given the hourly spot prices of
// one calendar month, how many hours can the electrolyser draw power while the
// average purchase price stays within budget?
package selection

import "sort"

// Result is the outcome of Select for one (year, month) price group.
//
// BaseHours == 0 means not even the single cheapest hour fit under the target;
// downstream tables render that as an absent value so "no cheap hours this
// month" stays distinguishable from "no data this month".
type Result struct {
	// BaseHours is the count selected under the primary target price.
	BaseHours int
	// ExtendedHours is the count added in the PPA-ceiling extension phase.
	ExtendedHours int
	// TotalHours = BaseHours + ExtendedHours.
	TotalHours int
	// AvgPrice is the realized average over the final TotalHours selection.
	// Meaningless when TotalHours == 0.
	AvgPrice float64
}

// Qualified reports whether at least one hour fit under the target price.
func (r Result) Qualified() bool {
	return r.BaseHours > 0
}

// Select computes the maximum number of hours that can be purchased from a
// price group while keeping the cumulative average price at or below
// targetPrice, then extends the selection while the average stays strictly
// below ppaPrice.
//
// The procedure is a two-phase greedy scan over the ascending-sorted prices.
// Because the input is sorted, once the running average exceeds a ceiling it
// can never drop back below it, so both phases stop at the first violation.
// Phase 1 accepts while avg <= targetPrice; phase 2 accepts while the new avg
// is strictly < ppaPrice. The strict/non-strict asymmetry is deliberate:
// touching the PPA ceiling exactly means the spot extension no longer beats
// falling back to the PPA.
//
// Select is a pure function: the input slice is not modified, there is no
// shared state, and degenerate inputs (empty group, nothing qualifying) yield
// zero-valued results rather than errors.
func Select(prices []float64, targetPrice, ppaPrice float64) Result {
	if len(prices) == 0 {
		return Result{}
	}

	sorted := make([]float64, len(prices))
	copy(sorted, prices)
	sort.Float64s(sorted)

	var sum float64
	base := 0
	for i, p := range sorted {
		next := sum + p
		if next/float64(i+1) > targetPrice {
			break
		}
		sum = next
		base = i + 1
	}

	if base == 0 {
		return Result{}
	}

	total := base
	for i := base; i < len(sorted); i++ {
		next := sum + sorted[i]
		if next/float64(i+1) >= ppaPrice {
			break
		}
		sum = next
		total = i + 1
	}

	return Result{
		BaseHours:     base,
		ExtendedHours: total - base,
		TotalHours:    total,
		AvgPrice:      sum / float64(total),
	}
}
