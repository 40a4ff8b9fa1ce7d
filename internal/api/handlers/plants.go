package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"spot-lcoe/internal/api/models"
	"spot-lcoe/internal/config"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

// PlantHandler serves the plant preset files.
type PlantHandler struct {
	plantDir string
}

// NewPlantHandler creates a handler over the configured plant directory.
func NewPlantHandler() *PlantHandler {
	dir := resolveDir("PLANT_DIR", filepath.Join("examples", "plants"))
	log.Printf("[PlantHandler] Using plant directory: %s", dir)
	return &PlantHandler{plantDir: dir}
}

// ListPlants handles GET /api/v1/plants
func (h *PlantHandler) ListPlants(c *gin.Context) {
	plants := []models.PlantInfo{}

	entries, err := os.ReadDir(h.plantDir)
	if err != nil {
		log.Printf("[PlantHandler] Failed to read plant directory %s: %v", h.plantDir, err)
		c.JSON(http.StatusOK, gin.H{"plants": plants})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		path := filepath.Join(h.plantDir, entry.Name())
		info, err := h.loadPlantInfo(path, entry.Name())
		if err != nil {
			log.Printf("[PlantHandler] Failed to load plant file %s: %v", path, err)
			continue
		}
		plants = append(plants, *info)
	}

	c.JSON(http.StatusOK, gin.H{"plants": plants})
}

func (h *PlantHandler) loadPlantInfo(path, filename string) (*models.PlantInfo, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var wrapper struct {
		Plant config.PlantConfig `yaml:"plant"`
	}
	if err := yaml.Unmarshal(raw, &wrapper); err != nil {
		return nil, err
	}

	id := strings.TrimSuffix(filename, ".yaml")
	name := wrapper.Plant.Name
	if name == "" {
		name = id
	}

	return &models.PlantInfo{
		ID:   id,
		Name: name,
		File: path,
		Specs: models.PlantSpecs{
			ElectrolyserPowerMW: wrapper.Plant.ElectrolyserPowerMW,
			SpecificConsumption: wrapper.Plant.SpecificConsumption,
		},
	}, nil
}
