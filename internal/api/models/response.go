package models

// ResolvedParams echoes back the effective parameters a request ran with,
// after config defaults and request overrides were merged.
type ResolvedParams struct {
	PlantName           string  `json:"plant_name,omitempty"`
	ElectrolyserPowerMW float64 `json:"electrolyser_power_mw"`
	TargetPriceEURMWh   float64 `json:"target_price_eur_mwh"`
	PPAPriceEURMWh      float64 `json:"ppa_price_eur_mwh"`
	PVPriceEURMWh       float64 `json:"pv_price_eur_mwh"`
}

// HoursResponse carries the monthly hour table plus the derived summaries.
// Hours is year -> month name -> hours; null means no data or no qualifying
// hours for that month.
type HoursResponse struct {
	Status        string                     `json:"status"`
	Params        ResolvedParams             `json:"params"`
	Hours         map[string]map[string]*int `json:"hours"`
	MeanHours     map[string]*float64        `json:"mean_hours"`
	ServicePct    map[string]*float64        `json:"service_pct"`
	ExpectedHours map[string]float64         `json:"expected_hours"`
}

// EnergyMixRow is one month of the PV/Spot/PPA split.
type EnergyMixRow struct {
	Month       string  `json:"month"`
	RequiredMWh float64 `json:"required_mwh"`
	PVMWh       float64 `json:"pv_mwh"`
	SpotMWh     float64 `json:"spot_mwh"`
	PPAMWh      float64 `json:"ppa_mwh"`
	Clipped     bool    `json:"clipped,omitempty"`
}

// ProductionInfo summarizes the implied gas output.
type ProductionInfo struct {
	H2FlowNm3h      float64 `json:"h2_flow_nm3h"`
	CH4FlowNm3h     float64 `json:"ch4_flow_nm3h"`
	YearlyCH4Tonnes float64 `json:"yearly_ch4_tonnes"`
}

// LCOEResponse carries the energy mix and the blended electricity cost.
type LCOEResponse struct {
	Status            string         `json:"status"`
	Params            ResolvedParams `json:"params"`
	EnergyMix         []EnergyMixRow `json:"energy_mix"`
	RealizedSpotPrice float64        `json:"realized_spot_eur_mwh"`
	LCOE              float64        `json:"lcoe_eur_mwh"`
	LCOELegacy        float64        `json:"lcoe_legacy_eur_mwh"`
	Production        ProductionInfo `json:"production"`
}

// SweepResponse carries one summary row per candidate target price.
type SweepResponse struct {
	Status string         `json:"status"`
	Params ResolvedParams `json:"params"`
	Rows   []SweepRowInfo `json:"rows"`
}

// SweepRowInfo is the wire form of one sweep row.
type SweepRowInfo struct {
	TargetPriceEURMWh float64 `json:"target_price_eur_mwh"`
	SpotMWh           float64 `json:"spot_mwh"`
	PVMWh             float64 `json:"pv_mwh"`
	PPAMWh            float64 `json:"ppa_mwh"`
	RealizedSpotPrice float64 `json:"realized_spot_eur_mwh"`
	LCOE              float64 `json:"lcoe_eur_mwh"`
	LCOELegacy        float64 `json:"lcoe_legacy_eur_mwh"`
}

// PlantInfo describes one plant preset file.
type PlantInfo struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	File  string     `json:"file"`
	Specs PlantSpecs `json:"specs"`
}

// PlantSpecs contains the headline plant parameters.
type PlantSpecs struct {
	ElectrolyserPowerMW float64 `json:"electrolyser_power_mw"`
	SpecificConsumption float64 `json:"specific_consumption_kwh_nm3"`
}

// DatasetInfo describes one price CSV available on the server.
type DatasetInfo struct {
	ID        string `json:"id"`
	File      string `json:"file"`
	SizeBytes int64  `json:"size_bytes"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
