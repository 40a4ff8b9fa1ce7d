package handlers

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"spot-lcoe/internal/api/models"

	"github.com/gin-gonic/gin"
)

// DatasetHandler lists the price CSVs available in the data directory.
type DatasetHandler struct {
	dataDir string
}

// NewDatasetHandler creates a handler over the configured data directory.
func NewDatasetHandler() *DatasetHandler {
	dir := resolveDir("DATA_DIR", "data")
	log.Printf("[DatasetHandler] Using data directory: %s", dir)
	return &DatasetHandler{dataDir: dir}
}

// ListDatasets handles GET /api/v1/datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	datasets := []models.DatasetInfo{}

	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		log.Printf("[DatasetHandler] Failed to read data directory %s: %v", h.dataDir, err)
		c.JSON(http.StatusOK, gin.H{"datasets": datasets})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		datasets = append(datasets, models.DatasetInfo{
			ID:        strings.TrimSuffix(entry.Name(), ".csv"),
			File:      filepath.Join(h.dataDir, entry.Name()),
			SizeBytes: info.Size(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
