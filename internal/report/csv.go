package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"spot-lcoe/internal/analysis"
	"spot-lcoe/internal/model"
)

// WriteHoursCSV exports the monthly hour table, one row per year and one
// column per month. Absent and unqualified months are written as empty cells.
func WriteHoursCSV(path string, table *analysis.MonthlyTable) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := make([]string, 0, 13)
	header = append(header, "Year")
	for _, m := range model.MonthOrder {
		header = append(header, m.String())
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, y := range table.Years() {
		row := make([]string, 0, 13)
		row = append(row, strconv.Itoa(y))
		for _, m := range model.MonthOrder {
			if h := table.Hours(y, m); h != nil {
				row = append(row, strconv.Itoa(*h))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// BreakdownRow is one month of the cost breakdown: the energy split plus its
// cost at the configured prices.
type BreakdownRow struct {
	Month       string
	RequiredMWh float64
	PVMWh       float64
	SpotMWh     float64
	PPAMWh      float64
	PVCost      float64
	SpotCost    float64
	PPACost     float64
	TotalCost   float64
	Clipped     bool
}

// BuildBreakdown prices an energy mix and appends a yearly total row.
func BuildBreakdown(mix []analysis.EnergyMixMonth, pvPrice, spotPrice, ppaPrice float64) []BreakdownRow {
	rows := make([]BreakdownRow, 0, len(mix)+1)
	var total BreakdownRow
	total.Month = "Total"
	for _, m := range mix {
		row := BreakdownRow{
			Month:       m.Month.String(),
			RequiredMWh: m.RequiredMWh,
			PVMWh:       m.PVMWh,
			SpotMWh:     m.SpotMWh,
			PPAMWh:      m.PPAMWh,
			PVCost:      m.PVMWh * pvPrice,
			SpotCost:    m.SpotMWh * spotPrice,
			PPACost:     m.PPAMWh * ppaPrice,
			Clipped:     m.Clipped,
		}
		row.TotalCost = row.PVCost + row.SpotCost + row.PPACost

		total.RequiredMWh += row.RequiredMWh
		total.PVMWh += row.PVMWh
		total.SpotMWh += row.SpotMWh
		total.PPAMWh += row.PPAMWh
		total.PVCost += row.PVCost
		total.SpotCost += row.SpotCost
		total.PPACost += row.PPACost
		total.TotalCost += row.TotalCost

		rows = append(rows, row)
	}
	rows = append(rows, total)
	return rows
}

// WriteBreakdownCSV exports a cost breakdown produced by BuildBreakdown.
func WriteBreakdownCSV(path string, rows []BreakdownRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"month",
		"required_mwh",
		"pv_mwh",
		"spot_mwh",
		"ppa_mwh",
		"pv_cost_eur",
		"spot_cost_eur",
		"ppa_cost_eur",
		"total_cost_eur",
		"clipped",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			r.Month,
			fmtFloat(r.RequiredMWh),
			fmtFloat(r.PVMWh),
			fmtFloat(r.SpotMWh),
			fmtFloat(r.PPAMWh),
			fmtFloat(r.PVCost),
			fmtFloat(r.SpotCost),
			fmtFloat(r.PPACost),
			fmtFloat(r.TotalCost),
			strconv.FormatBool(r.Clipped),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

// WriteSweepCSV exports the target-price sweep results.
func WriteSweepCSV(path string, rows []analysis.SweepRow) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"target_eur_mwh",
		"spot_mwh",
		"pv_mwh",
		"ppa_mwh",
		"realized_spot_eur_mwh",
		"lcoe_eur_mwh",
		"lcoe_legacy_eur_mwh",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			fmtFloat(r.TargetPrice),
			fmtFloat(r.SpotMWh),
			fmtFloat(r.PVMWh),
			fmtFloat(r.PPAMWh),
			fmtFloat(r.RealizedSpotPrice),
			fmtFloat(r.LCOE),
			fmtFloat(r.LCOELegacy),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
