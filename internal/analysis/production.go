package analysis

import (
	"math"
	"time"

	"spot-lcoe/internal/model"
)

const (
	// 4 Nm3 of H2 per Nm3 of CH4 (Sabatier stoichiometry).
	stoichioH2PerCH4 = 4.0
	// CH4 density in kg/Nm3.
	ch4DensityKgNm3 = 0.7168
)

// ProductionFigures summarizes the plant's gas output implied by its power
// rating and monthly availability.
type ProductionFigures struct {
	H2FlowNm3h       float64
	CH4FlowNm3h      float64
	MonthlyCH4Tonnes map[time.Month]float64
	YearlyCH4Tonnes  float64
}

// ComputeProduction derives H2/CH4 flow rates and the monthly methane tonnage
// from plant power (MW), specific consumption (kWh/Nm3 H2) and the per-month
// service ratios.
func ComputeProduction(powerMW, specificConsumption float64, serviceRatios map[time.Month]float64) ProductionFigures {
	h2Flow := math.Round(powerMW * 1000 / specificConsumption)
	ch4Flow := math.Round(h2Flow / stoichioH2PerCH4)

	monthly := make(map[time.Month]float64, 12)
	var yearly float64
	for _, m := range model.MonthOrder {
		kg := ch4Flow * 24 * serviceRatios[m] * float64(model.DaysInMonth(m)) * ch4DensityKgNm3
		monthly[m] = kg / 1000
		yearly += kg / 1000
	}

	return ProductionFigures{
		H2FlowNm3h:       h2Flow,
		CH4FlowNm3h:      ch4Flow,
		MonthlyCH4Tonnes: monthly,
		YearlyCH4Tonnes:  yearly,
	}
}
