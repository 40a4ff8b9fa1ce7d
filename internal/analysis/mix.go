package analysis

import (
	"time"

	"spot-lcoe/internal/model"
)

// PlantParams carries the externally configured tunables the analyses need.
// Everything here used to be a module-level constant in earlier script
// versions; it is now passed explicitly.
type PlantParams struct {
	PowerMW             float64
	SpecificConsumption float64 // kWh per Nm3 of H2
	PVPrice             float64 // EUR/MWh
	PPAPrice            float64 // EUR/MWh
	ServiceRatios       map[time.Month]float64
	PVProfileMWh        map[time.Month]float64
}

// EnergyMixMonth decomposes one month of electrolyser consumption into its
// three supply sources.
type EnergyMixMonth struct {
	Month       time.Month
	RequiredMWh float64 // maximum consumption at the month's service ratio
	PVMWh       float64 // on-site photovoltaic yield
	SpotMWh     float64 // cheap spot hours found by the selector
	PPAMWh      float64 // residual covered by the PPA backstop, floored at 0
	// Clipped marks months where PV + Spot alone exceeded the requirement,
	// so the PPA residual was floored and the three sources no longer sum to
	// RequiredMWh.
	Clipped bool
}

// BuildEnergyMix derives the monthly PV/Spot/PPA split from a selection table.
// Spot energy is the mean qualified hour count across years times the plant
// power; months with no qualifying hours contribute zero spot energy.
func BuildEnergyMix(table *MonthlyTable, p PlantParams) []EnergyMixMonth {
	meanHours := table.MeanHours()
	out := make([]EnergyMixMonth, 0, 12)
	for _, m := range model.MonthOrder {
		required := p.PowerMW * 24 * p.ServiceRatios[m] * float64(model.DaysInMonth(m))
		var spot float64
		if h := meanHours[m]; h != nil {
			spot = *h * p.PowerMW
		}
		pv := p.PVProfileMWh[m]

		ppa := required - pv - spot
		clipped := false
		if ppa < 0 {
			ppa = 0
			clipped = true
		}

		out = append(out, EnergyMixMonth{
			Month:       m,
			RequiredMWh: required,
			PVMWh:       pv,
			SpotMWh:     spot,
			PPAMWh:      ppa,
			Clipped:     clipped,
		})
	}
	return out
}

// BlendLCOE computes the energy-weighted average price across the three
// sources, summed over the months present in the PV map. Spot/PPA months
// missing from their maps count as zero energy. Zero total energy returns 0 —
// a deliberate degenerate-case policy, not an error.
func BlendLCOE(pvEnergy, spotEnergy, ppaEnergy map[time.Month]float64, pvPrice, spotPrice, ppaPrice float64) float64 {
	var totalCost, totalEnergy float64
	for m, pv := range pvEnergy {
		spot := spotEnergy[m]
		ppa := ppaEnergy[m]
		totalCost += pv*pvPrice + spot*spotPrice + ppa*ppaPrice
		totalEnergy += pv + spot + ppa
	}
	if totalEnergy == 0 {
		return 0
	}
	return totalCost / totalEnergy
}

// BlendMix is the common path from an energy mix to a blended cost figure.
func BlendMix(mix []EnergyMixMonth, pvPrice, spotPrice, ppaPrice float64) float64 {
	pv := map[time.Month]float64{}
	spot := map[time.Month]float64{}
	ppa := map[time.Month]float64{}
	for _, row := range mix {
		pv[row.Month] = row.PVMWh
		spot[row.Month] = row.SpotMWh
		ppa[row.Month] = row.PPAMWh
	}
	return BlendLCOE(pv, spot, ppa, pvPrice, spotPrice, ppaPrice)
}

// WeightedSpotPrice is the realized average price actually paid for the spot
// share: each month's selection average weighted by that month's spot energy.
// This is the honest spot weight for LCOE blending; the user's target price is
// what some legacy reports used instead. Returns 0 when no spot energy exists.
func WeightedSpotPrice(table *MonthlyTable, mix []EnergyMixMonth) float64 {
	var cost, energy float64
	for _, row := range mix {
		if row.SpotMWh == 0 {
			continue
		}
		avg, ok := meanAvgPrice(table, row.Month)
		if !ok {
			continue
		}
		cost += row.SpotMWh * avg
		energy += row.SpotMWh
	}
	if energy == 0 {
		return 0
	}
	return cost / energy
}

// meanAvgPrice averages the realized selection price for a month across the
// years that had qualifying hours, weighted by each year's hour count.
func meanAvgPrice(table *MonthlyTable, m time.Month) (float64, bool) {
	var cost, hours float64
	for _, y := range table.Years() {
		cell := table.Get(y, m)
		if cell == nil || !cell.Qualified() {
			continue
		}
		cost += cell.AvgPrice * float64(cell.TotalHours)
		hours += float64(cell.TotalHours)
	}
	if hours == 0 {
		return 0, false
	}
	return cost / hours, true
}
