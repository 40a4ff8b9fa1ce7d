package main

import (
	"flag"
	"fmt"

	"spot-lcoe/internal/analysis"
	"spot-lcoe/internal/config"
	"spot-lcoe/internal/data"
	"spot-lcoe/internal/model"
)

// Demo:
// - Load an hourly price CSV
// - Run the budget-constrained hour selection per month
// - Derive the energy mix and blended cost to show how the pieces fit together
func main() {
	dataPath := flag.String("data", "examples/prices_sample.csv", "Path to hourly price CSV")
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	flag.Parse()

	obs, err := data.LoadPriceCSV(*dataPath)
	if err != nil {
		panic(err)
	}
	if len(obs) == 0 {
		panic("no observations in CSV")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = loaded
	}

	fmt.Printf("Loaded %d observations (%s to %s)\n",
		len(obs),
		obs[0].Timestamp.Format("2006-01-02"),
		obs[len(obs)-1].Timestamp.Format("2006-01-02"))
	fmt.Printf("Target=%.1f EUR/MWh  PPA=%.1f EUR/MWh  PV=%.1f EUR/MWh\n\n",
		cfg.Prices.TargetEURMWh, cfg.Prices.PPAEURMWh, cfg.Prices.PVEURMWh)

	table := analysis.Aggregate(obs, cfg.Prices.TargetEURMWh, cfg.Prices.PPAEURMWh)
	for _, y := range table.Years() {
		for _, m := range model.MonthOrder {
			cell := table.Get(y, m)
			if cell == nil {
				continue
			}
			if !cell.Qualified() {
				fmt.Printf("%d %-10s no qualifying hours\n", y, m.String())
				continue
			}
			fmt.Printf("%d %-10s base=%-4d ext=%-4d total=%-4d avg=%.2f EUR/MWh\n",
				y, m.String(), cell.BaseHours, cell.ExtendedHours, cell.TotalHours, cell.AvgPrice)
		}
	}

	params := cfg.ToPlantParams()
	mix := analysis.BuildEnergyMix(table, params)
	realized := analysis.WeightedSpotPrice(table, mix)

	fmt.Printf("\nRealized spot price=%.2f EUR/MWh\n", realized)
	fmt.Printf("LCOE=%.2f EUR/MWh\n",
		analysis.BlendMix(mix, params.PVPrice, realized, params.PPAPrice))
}
