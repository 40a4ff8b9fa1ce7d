package analysis

import "spot-lcoe/internal/model"

// SweepRow is the summary for one candidate target price.
type SweepRow struct {
	TargetPrice float64

	// Annual energy split implied by this target price.
	SpotMWh float64
	PVMWh   float64
	PPAMWh  float64

	// RealizedSpotPrice is the energy-weighted average actually paid for the
	// spot share. LCOE uses it as the spot weight; LCOELegacy uses the target
	// price itself, the figure several older reports blended with. Both are
	// kept so the discrepancy is visible instead of silently reproduced.
	RealizedSpotPrice float64
	LCOE              float64
	LCOELegacy        float64
}

// Sweep runs the hour selection and LCOE blend across a range of candidate
// target prices. Each target gets an independent aggregation; rows come back
// in the order the targets were given.
func Sweep(obs []model.PriceObservation, targets []float64, p PlantParams) []SweepRow {
	out := make([]SweepRow, 0, len(targets))
	for _, target := range targets {
		table := Aggregate(obs, target, p.PPAPrice)
		mix := BuildEnergyMix(table, p)

		var spot, pv, ppa float64
		for _, row := range mix {
			spot += row.SpotMWh
			pv += row.PVMWh
			ppa += row.PPAMWh
		}

		realized := WeightedSpotPrice(table, mix)
		out = append(out, SweepRow{
			TargetPrice:       target,
			SpotMWh:           spot,
			PVMWh:             pv,
			PPAMWh:            ppa,
			RealizedSpotPrice: realized,
			LCOE:              BlendMix(mix, p.PVPrice, realized, p.PPAPrice),
			LCOELegacy:        BlendMix(mix, p.PVPrice, target, p.PPAPrice),
		})
	}
	return out
}
