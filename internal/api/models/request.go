package models

// AnalysisParams carries the price/plant tunables a request may override.
// Pointers distinguish "not provided" (use config defaults) from explicit
// zero values.
type AnalysisParams struct {
	PlantFile           string   `json:"plant_file,omitempty"`
	TargetPriceEURMWh   *float64 `json:"target_price_eur_mwh,omitempty"`
	PPAPriceEURMWh      *float64 `json:"ppa_price_eur_mwh,omitempty"`
	PVPriceEURMWh       *float64 `json:"pv_price_eur_mwh,omitempty"`
	ElectrolyserPowerMW *float64 `json:"electrolyser_power_mw,omitempty"`
}

// HoursRequest asks for the monthly purchasable-hours table for one price
// dataset. DataFile names a CSV inside the server's data directory.
type HoursRequest struct {
	DataFile string         `json:"data_file" binding:"required"`
	Params   AnalysisParams `json:"params,omitempty"`
}

// LCOERequest asks for the energy mix and blended cost for one dataset.
type LCOERequest struct {
	DataFile string         `json:"data_file" binding:"required"`
	Params   AnalysisParams `json:"params,omitempty"`
}

// SweepRequest asks for an LCOE sweep over candidate target prices.
type SweepRequest struct {
	DataFile     string         `json:"data_file" binding:"required"`
	TargetPrices []float64      `json:"target_prices" binding:"required"`
	Params       AnalysisParams `json:"params,omitempty"`
}
