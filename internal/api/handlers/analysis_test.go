package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spot-lcoe/internal/api/models"
	"spot-lcoe/internal/config"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()
	t.Setenv("DATA_DIR", dataDir)
	t.Setenv("PLANT_DIR", t.TempDir())

	csv := "Date,Heure,Prix\n" +
		"2024-01-01,0,5.00\n" +
		"2024-01-01,1,10.00\n" +
		"2024-01-01,2,15.00\n" +
		"2024-01-01,3,90.00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "sample.csv"), []byte(csv), 0o644))

	h := NewAnalysisHandler(config.Default())
	router := gin.New()
	router.POST("/api/v1/hours", h.ComputeHours)
	router.POST("/api/v1/lcoe", h.ComputeLCOE)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestComputeHours(t *testing.T) {
	router := newTestRouter(t)

	target := 10.0
	ppa := 50.0
	w := postJSON(t, router, "/api/v1/hours", models.HoursRequest{
		DataFile: "sample",
		Params: models.AnalysisParams{
			TargetPriceEURMWh: &target,
			PPAPriceEURMWh:    &ppa,
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.HoursResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, 10.0, resp.Params.TargetPriceEURMWh)

	jan, ok := resp.Hours["2024"]
	require.True(t, ok)
	require.NotNil(t, jan["January"])
	// Three hours fit the budget, the 90 extends under the PPA ceiling.
	assert.Equal(t, 4, *jan["January"])
	assert.Nil(t, jan["February"])
}

func TestComputeHours_DatasetNotFound(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/hours", models.HoursRequest{DataFile: "missing"})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "DATASET_NOT_FOUND", resp.Error.Code)
}

func TestComputeHours_MissingDataFile(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/hours", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
}

func TestComputeLCOE(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(t, router, "/api/v1/lcoe", models.LCOERequest{DataFile: "sample"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LCOEResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Status)
	assert.Len(t, resp.EnergyMix, 12)
	assert.Greater(t, resp.LCOE, 0.0)
	assert.Greater(t, resp.Production.H2FlowNm3h, 0.0)
}
