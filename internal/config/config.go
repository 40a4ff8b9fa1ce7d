package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"spot-lcoe/internal/analysis"
	"spot-lcoe/internal/model"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every tunable the
// analyses consume lives here; nothing is a module-level default mutated by
// individual commands.
type Config struct {
	// Optional: load plant parameters from a separate YAML
	// (e.g. examples/plants/*.yaml). Explicit Plant fields override it.
	PlantFile string      `yaml:"plant_file"`
	Plant     PlantConfig `yaml:"plant"`
	Prices    PriceConfig `yaml:"prices"`

	// Per-month availability, keyed by full English month name. Months left
	// out default to DefaultServiceRatio.
	ServiceRatios map[string]float64 `yaml:"service_ratios"`

	// Monthly PV yield in MWh, keyed by full English month name. Months left
	// out default to zero (no on-site generation).
	PVProfileMWh map[string]float64 `yaml:"pv_profile_mwh"`
}

type PlantConfig struct {
	Name                string  `yaml:"name"`
	ElectrolyserPowerMW float64 `yaml:"electrolyser_power_mw"`
	// Specific consumption in kWh per Nm3 of H2.
	SpecificConsumption float64 `yaml:"specific_consumption_kwh_nm3"`
}

type PriceConfig struct {
	TargetEURMWh float64 `yaml:"target_eur_mwh"`
	PPAEURMWh    float64 `yaml:"ppa_eur_mwh"`
	PVEURMWh     float64 `yaml:"pv_eur_mwh"`
}

// Defaults observed across the original analysis runs.
const (
	DefaultTargetPrice  = 15.0
	DefaultPPAPrice     = 80.0
	DefaultPVPrice      = 50.0
	DefaultPowerMW      = 5.0
	DefaultServiceRatio = 0.98
	DefaultSpecificCons = 4.8
)

// Default returns a fully populated configuration with the observed defaults.
func Default() *Config {
	return &Config{
		Plant: PlantConfig{
			ElectrolyserPowerMW: DefaultPowerMW,
			SpecificConsumption: DefaultSpecificCons,
		},
		Prices: PriceConfig{
			TargetEURMWh: DefaultTargetPrice,
			PPAEURMWh:    DefaultPPAPrice,
			PVEURMWh:     DefaultPVPrice,
		},
	}
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate or default it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	// If plant_file is set, load it and merge in any explicit overrides.
	if c.PlantFile != "" {
		plantPath := c.PlantFile
		if !filepath.IsAbs(plantPath) {
			// Prefer interpreting relative paths as relative to the config
			// file directory, falling back to the path as given.
			cand := filepath.Join(filepath.Dir(path), plantPath)
			if _, err := os.Stat(cand); err == nil {
				plantPath = cand
			}
		}
		loaded, err := loadPlantFile(plantPath)
		if err != nil {
			return nil, err
		}
		c.Plant = MergePlant(loaded, c.Plant)
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Plant.ElectrolyserPowerMW == 0 {
		c.Plant.ElectrolyserPowerMW = DefaultPowerMW
	}
	if c.Plant.SpecificConsumption == 0 {
		c.Plant.SpecificConsumption = DefaultSpecificCons
	}
	if c.Prices.TargetEURMWh == 0 {
		c.Prices.TargetEURMWh = DefaultTargetPrice
	}
	if c.Prices.PPAEURMWh == 0 {
		c.Prices.PPAEURMWh = DefaultPPAPrice
	}
	if c.Prices.PVEURMWh == 0 {
		c.Prices.PVEURMWh = DefaultPVPrice
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Plant.ElectrolyserPowerMW <= 0 {
		return errors.New("plant.electrolyser_power_mw must be positive")
	}
	if c.Plant.SpecificConsumption <= 0 {
		return errors.New("plant.specific_consumption_kwh_nm3 must be positive")
	}
	for name, ratio := range c.ServiceRatios {
		if _, ok := model.MonthFromName(name); !ok {
			return fmt.Errorf("service_ratios: unknown month %q", name)
		}
		if ratio < 0 || ratio > 1 {
			return fmt.Errorf("service_ratios.%s: ratio %v outside [0,1]", name, ratio)
		}
	}
	for name, mwh := range c.PVProfileMWh {
		if _, ok := model.MonthFromName(name); !ok {
			return fmt.Errorf("pv_profile_mwh: unknown month %q", name)
		}
		if mwh < 0 {
			return fmt.Errorf("pv_profile_mwh.%s: negative yield %v", name, mwh)
		}
	}
	return nil
}

// MonthlyServiceRatios resolves the named ratio map to month keys, filling
// unlisted months with the default ratio.
func (c *Config) MonthlyServiceRatios() map[time.Month]float64 {
	out := make(map[time.Month]float64, 12)
	for _, m := range model.MonthOrder {
		out[m] = DefaultServiceRatio
	}
	for name, ratio := range c.ServiceRatios {
		if m, ok := model.MonthFromName(name); ok {
			out[m] = ratio
		}
	}
	return out
}

// MonthlyPVProfile resolves the named PV yield map to month keys; unlisted
// months yield zero.
func (c *Config) MonthlyPVProfile() map[time.Month]float64 {
	out := make(map[time.Month]float64, 12)
	for name, mwh := range c.PVProfileMWh {
		if m, ok := model.MonthFromName(name); ok {
			out[m] = mwh
		}
	}
	return out
}

// ToPlantParams converts the configuration into the analysis parameter set.
func (c *Config) ToPlantParams() analysis.PlantParams {
	return analysis.PlantParams{
		PowerMW:             c.Plant.ElectrolyserPowerMW,
		SpecificConsumption: c.Plant.SpecificConsumption,
		PVPrice:             c.Prices.PVEURMWh,
		PPAPrice:            c.Prices.PPAEURMWh,
		ServiceRatios:       c.MonthlyServiceRatios(),
		PVProfileMWh:        c.MonthlyPVProfile(),
	}
}

type plantFileWrapper struct {
	Plant PlantConfig `yaml:"plant"`
}

func loadPlantFile(path string) (PlantConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return PlantConfig{}, err
	}
	var w plantFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return PlantConfig{}, err
	}
	return w.Plant, nil
}

// MergePlant overlays non-zero fields from override onto base. Used when a
// plant file is loaded and the root config carries explicit overrides.
func MergePlant(base, override PlantConfig) PlantConfig {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	if override.ElectrolyserPowerMW != 0 {
		out.ElectrolyserPowerMW = override.ElectrolyserPowerMW
	}
	if override.SpecificConsumption != 0 {
		out.SpecificConsumption = override.SpecificConsumption
	}
	return out
}
