package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeProduction(t *testing.T) {
	// 4.8 MW at 4.8 kWh/Nm3 gives round numbers: 1000 Nm3/h H2, 250 Nm3/h CH4.
	fig := ComputeProduction(4.8, 4.8, flatRatios(1.0))

	assert.InDelta(t, 1000, fig.H2FlowNm3h, 1e-9)
	assert.InDelta(t, 250, fig.CH4FlowNm3h, 1e-9)

	// January: 250 * 24 * 31 * 0.7168 kg = 133.32 t
	assert.InDelta(t, 250*24*31*0.7168/1000, fig.MonthlyCH4Tonnes[time.January], 1e-6)
	assert.Len(t, fig.MonthlyCH4Tonnes, 12)

	var sum float64
	for _, v := range fig.MonthlyCH4Tonnes {
		sum += v
	}
	assert.InDelta(t, sum, fig.YearlyCH4Tonnes, 1e-6)
}

func TestComputeProduction_RespectsServiceRatios(t *testing.T) {
	ratios := flatRatios(0)
	ratios[time.May] = 0.5
	fig := ComputeProduction(4.8, 4.8, ratios)

	assert.Zero(t, fig.MonthlyCH4Tonnes[time.January])
	assert.InDelta(t, 250*24*0.5*31*0.7168/1000, fig.MonthlyCH4Tonnes[time.May], 1e-6)
	assert.InDelta(t, fig.MonthlyCH4Tonnes[time.May], fig.YearlyCH4Tonnes, 1e-6)
}
