package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spot-lcoe/internal/model"
	"spot-lcoe/internal/selection"
)

func selResultAvg(hours int, avg float64) *selection.Result {
	return &selection.Result{BaseHours: hours, TotalHours: hours, AvgPrice: avg}
}

func testParams() PlantParams {
	return PlantParams{
		PowerMW:       5,
		PVPrice:       50,
		PPAPrice:      80,
		ServiceRatios: flatRatios(1.0),
		PVProfileMWh:  map[time.Month]float64{},
	}
}

func TestBuildEnergyMix_ResidualGoesToPPA(t *testing.T) {
	table := NewMonthlyTable()
	table.set(2024, time.January, selResult(100))

	p := testParams()
	p.PVProfileMWh[time.January] = 60

	mix := BuildEnergyMix(table, p)
	require.Len(t, mix, 12)

	jan := mix[0]
	assert.Equal(t, time.January, jan.Month)
	assert.InDelta(t, 5*24*31, jan.RequiredMWh, 1e-9)
	assert.InDelta(t, 500, jan.SpotMWh, 1e-9)
	assert.InDelta(t, 60, jan.PVMWh, 1e-9)
	assert.InDelta(t, 3720-60-500, jan.PPAMWh, 1e-9)
	assert.False(t, jan.Clipped)

	// February had no qualifying spot hours: fully PPA-covered.
	feb := mix[1]
	assert.Zero(t, feb.SpotMWh)
	assert.InDelta(t, feb.RequiredMWh, feb.PPAMWh, 1e-9)
}

func TestBuildEnergyMix_FloorsAndFlagsClipping(t *testing.T) {
	table := NewMonthlyTable()
	table.set(2024, time.June, selResult(720))

	p := testParams()
	p.ServiceRatios[time.June] = 0.5 // required 5*24*0.5*30 = 1800, spot alone 3600
	mix := BuildEnergyMix(table, p)

	jun := mix[5]
	assert.Equal(t, time.June, jun.Month)
	assert.Zero(t, jun.PPAMWh)
	assert.True(t, jun.Clipped)
}

func TestBlendLCOE(t *testing.T) {
	pv := map[time.Month]float64{time.January: 100}
	spot := map[time.Month]float64{time.January: 300}
	ppa := map[time.Month]float64{time.January: 600}

	// (100*50 + 300*20 + 600*80) / 1000 = 59
	got := BlendLCOE(pv, spot, ppa, 50, 20, 80)
	assert.InDelta(t, 59.0, got, 1e-9)
}

func TestBlendLCOE_MissingKeysDefaultToZero(t *testing.T) {
	pv := map[time.Month]float64{time.January: 100, time.February: 100}
	spot := map[time.Month]float64{time.January: 100}
	got := BlendLCOE(pv, spot, map[time.Month]float64{}, 50, 10, 80)
	// (200*50 + 100*10) / 300
	assert.InDelta(t, 11000.0/300, got, 1e-9)
}

func TestBlendLCOE_ZeroEnergy(t *testing.T) {
	got := BlendLCOE(map[time.Month]float64{}, map[time.Month]float64{}, map[time.Month]float64{}, 50, 20, 80)
	assert.Zero(t, got)
}

func TestWeightedSpotPrice(t *testing.T) {
	table := NewMonthlyTable()
	table.set(2024, time.January, selResultAvg(100, 12.0))
	table.set(2024, time.July, selResultAvg(300, 30.0))

	p := testParams()
	mix := BuildEnergyMix(table, p)

	// (500*12 + 1500*30) / 2000 = 25.5
	got := WeightedSpotPrice(table, mix)
	assert.InDelta(t, 25.5, got, 1e-9)
}

func TestSweep(t *testing.T) {
	obs := []model.PriceObservation{
		obsAt(2024, time.January, 1, 0, 5),
		obsAt(2024, time.January, 1, 1, 10),
		obsAt(2024, time.January, 1, 2, 500),
	}
	p := testParams()

	rows := Sweep(obs, []float64{4, 12}, p)
	require.Len(t, rows, 2)

	// Target 4: only the 5 EUR hour fails too (avg 5 > 4) -> no spot energy.
	assert.Zero(t, rows[0].SpotMWh)
	assert.InDelta(t, 80.0, rows[0].LCOE, 1e-9) // pure PPA blend

	// Target 12: two hours at avg 7.5 qualify; extension stops at 500.
	assert.InDelta(t, 10.0, rows[1].SpotMWh, 1e-9)
	assert.InDelta(t, 7.5, rows[1].RealizedSpotPrice, 1e-9)
	assert.Less(t, rows[1].LCOE, rows[0].LCOE)
	assert.NotEqual(t, rows[1].LCOE, rows[1].LCOELegacy)
}
