package handlers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"spot-lcoe/internal/analysis"
	"spot-lcoe/internal/api/models"
	"spot-lcoe/internal/config"
	"spot-lcoe/internal/data"
	"spot-lcoe/internal/model"

	"github.com/gin-gonic/gin"
)

// AnalysisHandler runs the hour-selection and LCOE analyses over price CSVs
// stored in the server's data directory.
type AnalysisHandler struct {
	baseConfig *config.Config
	dataDir    string
	plantDir   string
}

// NewAnalysisHandler creates a handler rooted at the configured data and
// plant directories.
func NewAnalysisHandler(base *config.Config) *AnalysisHandler {
	if base == nil {
		base = config.Default()
	}
	return &AnalysisHandler{
		baseConfig: base,
		dataDir:    resolveDir("DATA_DIR", "data"),
		plantDir:   resolveDir("PLANT_DIR", filepath.Join("examples", "plants")),
	}
}

func resolveDir(envVar, fallback string) string {
	dir := os.Getenv(envVar)
	if dir == "" {
		if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, fallback)
		} else {
			dir = fallback
		}
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

// ComputeHours handles POST /api/v1/hours
func (h *AnalysisHandler) ComputeHours(c *gin.Context) {
	var req models.HoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	cfg, err := h.resolveConfig(req.Params)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return
	}
	obs, ok := h.loadObservations(c, req.DataFile)
	if !ok {
		return
	}

	table := analysis.Aggregate(obs, cfg.Prices.TargetEURMWh, cfg.Prices.PPAEURMWh)
	mean := table.MeanHours()
	required := analysis.RequiredHours(cfg.MonthlyServiceRatios())
	pct := analysis.ComparePercent(mean, required)

	c.JSON(http.StatusOK, models.HoursResponse{
		Status:        "completed",
		Params:        resolvedParams(cfg),
		Hours:         table.Nested(),
		MeanHours:     monthFloatPtrMap(mean),
		ServicePct:    monthFloatPtrMap(pct),
		ExpectedHours: monthFloatMap(required),
	})
}

// ComputeLCOE handles POST /api/v1/lcoe
func (h *AnalysisHandler) ComputeLCOE(c *gin.Context) {
	var req models.LCOERequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}

	cfg, err := h.resolveConfig(req.Params)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return
	}
	obs, ok := h.loadObservations(c, req.DataFile)
	if !ok {
		return
	}

	params := cfg.ToPlantParams()
	table := analysis.Aggregate(obs, cfg.Prices.TargetEURMWh, cfg.Prices.PPAEURMWh)
	mix := analysis.BuildEnergyMix(table, params)
	realized := analysis.WeightedSpotPrice(table, mix)
	prod := analysis.ComputeProduction(params.PowerMW, params.SpecificConsumption, params.ServiceRatios)

	c.JSON(http.StatusOK, models.LCOEResponse{
		Status:            "completed",
		Params:            resolvedParams(cfg),
		EnergyMix:         mixRows(mix),
		RealizedSpotPrice: realized,
		LCOE:              analysis.BlendMix(mix, params.PVPrice, realized, params.PPAPrice),
		LCOELegacy:        analysis.BlendMix(mix, params.PVPrice, cfg.Prices.TargetEURMWh, params.PPAPrice),
		Production: models.ProductionInfo{
			H2FlowNm3h:      prod.H2FlowNm3h,
			CH4FlowNm3h:     prod.CH4FlowNm3h,
			YearlyCH4Tonnes: prod.YearlyCH4Tonnes,
		},
	})
}

// RunSweep handles POST /api/v1/sweep
func (h *AnalysisHandler) RunSweep(c *gin.Context) {
	var req models.SweepRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	if len(req.TargetPrices) == 0 {
		badRequest(c, "INVALID_REQUEST", "target_prices must not be empty")
		return
	}

	cfg, err := h.resolveConfig(req.Params)
	if err != nil {
		badRequest(c, "INVALID_CONFIG", err.Error())
		return
	}
	obs, ok := h.loadObservations(c, req.DataFile)
	if !ok {
		return
	}

	rows := analysis.Sweep(obs, req.TargetPrices, cfg.ToPlantParams())
	out := make([]models.SweepRowInfo, len(rows))
	for i, r := range rows {
		out[i] = models.SweepRowInfo{
			TargetPriceEURMWh: r.TargetPrice,
			SpotMWh:           r.SpotMWh,
			PVMWh:             r.PVMWh,
			PPAMWh:            r.PPAMWh,
			RealizedSpotPrice: r.RealizedSpotPrice,
			LCOE:              r.LCOE,
			LCOELegacy:        r.LCOELegacy,
		}
	}

	c.JSON(http.StatusOK, models.SweepResponse{
		Status: "completed",
		Params: resolvedParams(cfg),
		Rows:   out,
	})
}

// resolveConfig starts from the server's base configuration, loads the
// requested plant preset if any, then applies the explicit overrides.
func (h *AnalysisHandler) resolveConfig(p models.AnalysisParams) (*config.Config, error) {
	cfg := *h.baseConfig

	if p.PlantFile != "" {
		// plant_file is just the preset name; files live in the plant
		// directory.
		name := strings.TrimSuffix(filepath.Base(p.PlantFile), ".yaml")
		path := filepath.Join(h.plantDir, name+".yaml")
		loaded, err := config.LoadUnchecked(path)
		if err != nil {
			return nil, fmt.Errorf("plant preset %q: %w", name, err)
		}
		cfg.Plant = config.MergePlant(cfg.Plant, loaded.Plant)
		if len(loaded.ServiceRatios) > 0 {
			cfg.ServiceRatios = loaded.ServiceRatios
		}
		if len(loaded.PVProfileMWh) > 0 {
			cfg.PVProfileMWh = loaded.PVProfileMWh
		}
	}

	if p.TargetPriceEURMWh != nil {
		cfg.Prices.TargetEURMWh = *p.TargetPriceEURMWh
	}
	if p.PPAPriceEURMWh != nil {
		cfg.Prices.PPAEURMWh = *p.PPAPriceEURMWh
	}
	if p.PVPriceEURMWh != nil {
		cfg.Prices.PVEURMWh = *p.PVPriceEURMWh
	}
	if p.ElectrolyserPowerMW != nil {
		cfg.Plant.ElectrolyserPowerMW = *p.ElectrolyserPowerMW
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadObservations resolves the dataset name inside the data directory and
// loads it. On failure it writes the error response and returns ok=false.
func (h *AnalysisHandler) loadObservations(c *gin.Context, dataFile string) ([]model.PriceObservation, bool) {
	name := strings.TrimSuffix(filepath.Base(dataFile), ".csv")
	path := filepath.Join(h.dataDir, name+".csv")

	began := time.Now()
	obs, err := data.LoadPriceCSV(path)
	if err != nil {
		log.Printf("[AnalysisHandler] Failed to load dataset %s: %v", path, err)
		code := "DATA_LOAD_ERROR"
		status := http.StatusBadRequest
		if os.IsNotExist(err) {
			code = "DATASET_NOT_FOUND"
			status = http.StatusNotFound
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    code,
				Message: err.Error(),
			},
		})
		return nil, false
	}
	log.Printf("[AnalysisHandler] Loaded %d observations from %s (duration: %v)",
		len(obs), name, time.Since(began))
	return obs, true
}

func resolvedParams(cfg *config.Config) models.ResolvedParams {
	return models.ResolvedParams{
		PlantName:           cfg.Plant.Name,
		ElectrolyserPowerMW: cfg.Plant.ElectrolyserPowerMW,
		TargetPriceEURMWh:   cfg.Prices.TargetEURMWh,
		PPAPriceEURMWh:      cfg.Prices.PPAEURMWh,
		PVPriceEURMWh:       cfg.Prices.PVEURMWh,
	}
}

func mixRows(mix []analysis.EnergyMixMonth) []models.EnergyMixRow {
	rows := make([]models.EnergyMixRow, len(mix))
	for i, m := range mix {
		rows[i] = models.EnergyMixRow{
			Month:       m.Month.String(),
			RequiredMWh: m.RequiredMWh,
			PVMWh:       m.PVMWh,
			SpotMWh:     m.SpotMWh,
			PPAMWh:      m.PPAMWh,
			Clipped:     m.Clipped,
		}
	}
	return rows
}

func monthFloatPtrMap(in map[time.Month]*float64) map[string]*float64 {
	out := make(map[string]*float64, len(in))
	for m, v := range in {
		out[m.String()] = v
	}
	return out
}

func monthFloatMap(in map[time.Month]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for m, v := range in {
		out[m.String()] = v
	}
	return out
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: msg,
		},
	})
}
