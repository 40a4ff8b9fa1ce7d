package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"spot-lcoe/internal/analysis"
	"spot-lcoe/internal/config"
	"spot-lcoe/internal/data"
	"spot-lcoe/internal/model"
	"spot-lcoe/internal/report"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "hours":
		cmdHours(os.Args[2:])
	case "lcoe":
		cmdLCOE(os.Args[2:])
	case "sweep":
		cmdSweep(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli hours --data data/prices.csv --config examples/config.yaml [--out results/hours.csv]")
	fmt.Println("  cli lcoe  --data data/prices.csv --config examples/config.yaml [--out results/breakdown.csv]")
	fmt.Println("  cli sweep --data data/prices.csv --config examples/config.yaml --targets 5,10,15,20 [--out results/sweep.csv]")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - hours prints the per-month purchasable hour table and service-level percentages")
	fmt.Println("  - lcoe prints the monthly PV/spot/PPA energy mix and the blended electricity cost")
	fmt.Println("  - sweep reruns the selection for each target price and tabulates the resulting LCOE")
}

func cmdHours(args []string) {
	fs := flag.NewFlagSet("hours", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to hourly price CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional: write the hour table as CSV")
	target := fs.Float64("target", 0, "Optional: override target price (EUR/MWh)")
	ppa := fs.Float64("ppa", 0, "Optional: override PPA price (EUR/MWh)")
	_ = fs.Parse(args)

	cfg, obs := loadInputs(*cfgPath, *dataPath)
	if *target > 0 {
		cfg.Prices.TargetEURMWh = *target
	}
	if *ppa > 0 {
		cfg.Prices.PPAEURMWh = *ppa
	}

	table := analysis.Aggregate(obs, cfg.Prices.TargetEURMWh, cfg.Prices.PPAEURMWh)
	printHoursTable(table)

	mean := table.MeanHours()
	required := analysis.RequiredHours(cfg.MonthlyServiceRatios())
	pct := analysis.ComparePercent(mean, required)

	fmt.Println("")
	fmt.Printf("%-10s %-10s %-10s %-10s\n", "month", "mean", "expected", "pct")
	for _, m := range model.MonthOrder {
		fmt.Printf("%-10s %-10s %-10.0f %-10s\n",
			m.String(), fmtPtr(mean[m], 1), required[m], fmtPct(pct[m]))
	}

	if *outPath != "" {
		writeOut(*outPath, func(p string) error { return report.WriteHoursCSV(p, table) })
	}
}

func cmdLCOE(args []string) {
	fs := flag.NewFlagSet("lcoe", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to hourly price CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "", "Optional: write the cost breakdown as CSV")
	_ = fs.Parse(args)

	cfg, obs := loadInputs(*cfgPath, *dataPath)
	params := cfg.ToPlantParams()

	table := analysis.Aggregate(obs, cfg.Prices.TargetEURMWh, cfg.Prices.PPAEURMWh)
	mix := analysis.BuildEnergyMix(table, params)
	realized := analysis.WeightedSpotPrice(table, mix)

	fmt.Printf("%-10s %-12s %-10s %-10s %-10s\n", "month", "required", "pv", "spot", "ppa")
	for _, row := range mix {
		clip := ""
		if row.Clipped {
			clip = " (clipped)"
		}
		fmt.Printf("%-10s %-12.1f %-10.1f %-10.1f %-10.1f%s\n",
			row.Month.String(), row.RequiredMWh, row.PVMWh, row.SpotMWh, row.PPAMWh, clip)
	}

	fmt.Println("")
	fmt.Printf("Realized spot price: %.2f EUR/MWh\n", realized)
	fmt.Printf("LCOE:                %.2f EUR/MWh\n",
		analysis.BlendMix(mix, params.PVPrice, realized, params.PPAPrice))
	fmt.Printf("LCOE (target-priced): %.2f EUR/MWh\n",
		analysis.BlendMix(mix, params.PVPrice, cfg.Prices.TargetEURMWh, params.PPAPrice))

	prod := analysis.ComputeProduction(params.PowerMW, params.SpecificConsumption, params.ServiceRatios)
	fmt.Println("")
	fmt.Printf("H2 flow:  %.0f Nm3/h\n", prod.H2FlowNm3h)
	fmt.Printf("CH4 flow: %.0f Nm3/h\n", prod.CH4FlowNm3h)
	fmt.Printf("CH4 output: %.1f t/year\n", prod.YearlyCH4Tonnes)

	if *outPath != "" {
		rows := report.BuildBreakdown(mix, params.PVPrice, realized, params.PPAPrice)
		writeOut(*outPath, func(p string) error { return report.WriteBreakdownCSV(p, rows) })
	}
}

func cmdSweep(args []string) {
	fs := flag.NewFlagSet("sweep", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to hourly price CSV")
	cfgPath := fs.String("config", "", "Path to YAML config")
	targets := fs.String("targets", "", "Comma-separated target prices (EUR/MWh)")
	outPath := fs.String("out", "", "Optional: write the sweep as CSV")
	_ = fs.Parse(args)

	if *targets == "" {
		fmt.Println("--targets is required")
		os.Exit(2)
	}
	prices := parseTargets(*targets)

	cfg, obs := loadInputs(*cfgPath, *dataPath)
	rows := analysis.Sweep(obs, prices, cfg.ToPlantParams())

	fmt.Printf("%-10s %-10s %-10s %-10s %-10s %-10s\n",
		"target", "spot", "pv", "ppa", "realized", "lcoe")
	for _, r := range rows {
		fmt.Printf("%-10.1f %-10.1f %-10.1f %-10.1f %-10.2f %-10.2f\n",
			r.TargetPrice, r.SpotMWh, r.PVMWh, r.PPAMWh, r.RealizedSpotPrice, r.LCOE)
	}

	if *outPath != "" {
		writeOut(*outPath, func(p string) error { return report.WriteSweepCSV(p, rows) })
	}
}

func loadInputs(cfgPath, dataPath string) (*config.Config, []model.PriceObservation) {
	if dataPath == "" {
		fmt.Println("--data is required")
		os.Exit(2)
	}

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	obs, err := data.LoadPriceCSV(dataPath)
	if err != nil {
		panic(err)
	}
	return cfg, obs
}

func printHoursTable(table *analysis.MonthlyTable) {
	fmt.Printf("%-6s", "year")
	for _, m := range model.MonthOrder {
		fmt.Printf(" %-4s", m.String()[:3])
	}
	fmt.Println("")
	for _, y := range table.Years() {
		fmt.Printf("%-6d", y)
		for _, m := range model.MonthOrder {
			if h := table.Hours(y, m); h != nil {
				fmt.Printf(" %-4d", *h)
			} else {
				fmt.Printf(" %-4s", "-")
			}
		}
		fmt.Println("")
	}
}

func writeOut(path string, write func(string) error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		panic(err)
	}
	if err := write(path); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %s\n", path)
}

func parseTargets(s string) []float64 {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			fmt.Printf("bad target price %q\n", p)
			os.Exit(2)
		}
		out = append(out, v)
	}
	return out
}

func fmtPtr(v *float64, prec int) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', prec, 64)
}

func fmtPct(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64) + "%"
}
