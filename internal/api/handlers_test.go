package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propscope/config"
	"propscope/internal/database"
	"propscope/internal/generator"
	"propscope/internal/models"
	"propscope/internal/processor"
	"propscope/internal/queue"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	cfg := &config.Config{}
	cfg.Generator.DefaultCount = 50
	cfg.Generator.DefaultSeed = 42
	cfg.BatchProcessing.MaxBatchSize = 20
	cfg.BatchProcessing.ProcessorCount = 1
	cfg.BatchProcessing.MaxRetries = 1
	cfg.BatchProcessing.RetryDelay = 0

	profiles := config.DefaultProfiles()
	gen, err := generator.New(profiles.Cities, profiles.PropertyTypes, logger)
	require.NoError(t, err)

	q := queue.NewBatchQueue(10, logger)
	q.Start(context.Background())
	t.Cleanup(func() { _ = q.Close() })

	proc := processor.NewBatchProcessor(db.GetDB(), q, cfg, logger)
	proc.Start()
	t.Cleanup(proc.Stop)

	handler := NewHandler(db, gen, q, cfg, profiles, logger)
	router := gin.New()
	SetupRoutes(router, handler)

	return router, db
}

func waitForCount(t *testing.T, db *database.Database, datasetID string, want int64) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		count, err := db.CountProperties(datasetID)
		require.NoError(t, err)
		if count == want {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("dataset %s never reached %d persisted records", datasetID, want)
}

func TestGenerateAndQuery(t *testing.T) {
	router, db := setupTestRouter(t)

	// Generate a dataset
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"count": 40, "seed": 7}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code)

	var genResp struct {
		DatasetID string `json:"dataset_id"`
		Count     int    `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &genResp))
	assert.Equal(t, 40, genResp.Count)
	require.NotEmpty(t, genResp.DatasetID)

	waitForCount(t, db, genResp.DatasetID, 40)

	// List the persisted records
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/properties?dataset_id="+genResp.DatasetID, nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var properties []models.Property
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &properties))
	assert.Len(t, properties, 40)

	// Market summary
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var summary models.MarketSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 40, summary.TotalProperties)
	assert.NotEmpty(t, summary.MostExpensiveCity)

	// Markdown report
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/report", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "# Property Market Report")
}

func TestGenerate_InvalidCount(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/generate", strings.NewReader(`{"count": -5}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStats_NoDataset(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
