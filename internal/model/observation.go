package model

import "time"

// PriceObservation is one hourly day-ahead price point.
//
// Timestamp is local civil time (Europe/Paris for the French market data we
// work with); the data layer normalizes zones before observations are built,
// so year/month bucketing here is safe across DST and month boundaries.
// Prices are in EUR/MWh and may be negative.
type PriceObservation struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price_eur_mwh"`
}

func (o PriceObservation) Year() int {
	return o.Timestamp.Year()
}

func (o PriceObservation) Month() time.Month {
	return o.Timestamp.Month()
}

// MonthKey identifies one (year, month) analysis group.
type MonthKey struct {
	Year  int
	Month time.Month
}

func (o PriceObservation) Key() MonthKey {
	return MonthKey{Year: o.Timestamp.Year(), Month: o.Timestamp.Month()}
}

// GroupByMonth splits observations into per-(year, month) price groups.
// Input order does not matter; the selection algorithm sorts internally.
func GroupByMonth(obs []PriceObservation) map[MonthKey][]float64 {
	out := map[MonthKey][]float64{}
	for _, o := range obs {
		k := o.Key()
		out[k] = append(out[k], o.Price)
	}
	return out
}
