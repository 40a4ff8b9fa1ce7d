package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "plant:\n  name: test\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", c.Plant.Name)
	assert.Equal(t, DefaultTargetPrice, c.Prices.TargetEURMWh)
	assert.Equal(t, DefaultPPAPrice, c.Prices.PPAEURMWh)
	assert.Equal(t, DefaultPowerMW, c.Plant.ElectrolyserPowerMW)

	ratios := c.MonthlyServiceRatios()
	assert.Len(t, ratios, 12)
	assert.Equal(t, DefaultServiceRatio, ratios[time.April])
}

func TestLoad_PlantFileMerge(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meaux.yaml", `
plant:
  name: meaux
  electrolyser_power_mw: 5
  specific_consumption_kwh_nm3: 4.8
`)
	path := writeFile(t, dir, "config.yaml", `
plant_file: meaux.yaml
plant:
  electrolyser_power_mw: 10
prices:
  target_eur_mwh: 20
`)

	c, err := Load(path)
	require.NoError(t, err)
	// Name from the plant file, power overridden by the root config.
	assert.Equal(t, "meaux", c.Plant.Name)
	assert.Equal(t, 10.0, c.Plant.ElectrolyserPowerMW)
	assert.Equal(t, 4.8, c.Plant.SpecificConsumption)
	assert.Equal(t, 20.0, c.Prices.TargetEURMWh)
}

func TestLoad_ServiceRatiosAndPVProfile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
service_ratios:
  august: 0.5
pv_profile_mwh:
  january: 53.46
  july: 191.79
`)

	c, err := Load(path)
	require.NoError(t, err)

	ratios := c.MonthlyServiceRatios()
	assert.Equal(t, 0.5, ratios[time.August])
	assert.Equal(t, DefaultServiceRatio, ratios[time.July])

	pv := c.MonthlyPVProfile()
	assert.Equal(t, 53.46, pv[time.January])
	assert.Zero(t, pv[time.February])
}

func TestLoad_RejectsBadMonthName(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "service_ratios:\n  janvier: 0.9\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "unknown month")
}

func TestLoad_RejectsRatioOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", "service_ratios:\n  may: 1.5\n")
	_, err := Load(path)
	assert.ErrorContains(t, err, "outside [0,1]")
}

func TestMergePlant(t *testing.T) {
	base := PlantConfig{Name: "base", ElectrolyserPowerMW: 5, SpecificConsumption: 4.8}
	out := MergePlant(base, PlantConfig{ElectrolyserPowerMW: 7})
	assert.Equal(t, "base", out.Name)
	assert.Equal(t, 7.0, out.ElectrolyserPowerMW)
	assert.Equal(t, 4.8, out.SpecificConsumption)
}
