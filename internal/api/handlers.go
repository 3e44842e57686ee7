package api

import (
	"errors"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"propscope/config"
	"propscope/internal/analysis"
	"propscope/internal/database"
	"propscope/internal/generator"
	"propscope/internal/models"
	"propscope/internal/queue"
	"propscope/internal/report"
)

type Handler struct {
	db        *database.Database
	generator *generator.Generator
	queue     *queue.BatchQueue
	config    *config.Config
	profiles  models.ProfileSet
	logger    *logrus.Logger
}

// PropertyFilter carries the optional query filters for record listings.
type PropertyFilter struct {
	DatasetID    string `form:"dataset_id"`
	City         string `form:"city"`
	PropertyType string `form:"type"`
}

// GenerateRequest parameterizes a generation run. Unset fields fall back to
// the configured defaults.
type GenerateRequest struct {
	Count *int   `json:"count"`
	Seed  *int64 `json:"seed"`
}

func NewHandler(db *database.Database, gen *generator.Generator, q *queue.BatchQueue, cfg *config.Config, profiles models.ProfileSet, logger *logrus.Logger) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	return &Handler{
		db:        db,
		generator: gen,
		queue:     q,
		config:    cfg,
		profiles:  profiles,
		logger:    logger,
	}
}

// latestProperties resolves the dataset to read: the explicit one from the
// filter, or the most recent run.
func (h *Handler) latestProperties(filter PropertyFilter) ([]models.Property, error) {
	datasetID := filter.DatasetID
	if datasetID == "" {
		dataset, err := h.db.LatestDataset()
		if err != nil {
			return nil, err
		}
		if dataset == nil {
			return []models.Property{}, nil
		}
		datasetID = dataset.ID
	}
	return h.db.GetProperties(datasetID, filter.City, filter.PropertyType)
}

func (h *Handler) GetProperties(c *gin.Context) {
	var filter PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.WithError(err).Error("Failed to parse property filter")
	}

	properties, err := h.latestProperties(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get properties"})
		return
	}

	c.JSON(http.StatusOK, properties)
}

func (h *Handler) GetStats(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}

	summary, err := analysis.Summarize(properties)
	if err != nil {
		h.logger.WithError(err).Error("Failed to summarize dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize dataset"})
		return
	}

	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetCityStats(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}
	c.JSON(http.StatusOK, analysis.ByCity(properties))
}

func (h *Handler) GetTypeStats(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}
	c.JSON(http.StatusOK, analysis.ByType(properties))
}

func (h *Handler) GetAgeStats(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}
	c.JSON(http.StatusOK, analysis.ByAgeBand(properties))
}

func (h *Handler) GetLocationStats(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}
	c.JSON(http.StatusOK, analysis.ByLocationScore(properties))
}

func (h *Handler) GetDistanceStats(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}
	c.JSON(http.StatusOK, analysis.ByDistanceBand(properties, h.profiles.Cities))
}

// GetReport renders the markdown market report for the selected dataset.
func (h *Handler) GetReport(c *gin.Context) {
	properties, err := h.loadForAggregation(c)
	if err != nil || properties == nil {
		return
	}

	summary, err := analysis.Summarize(properties)
	if err != nil {
		h.logger.WithError(err).Error("Failed to summarize dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to summarize dataset"})
		return
	}

	var sb strings.Builder
	err = report.Write(&sb, summary,
		analysis.ByCity(properties),
		analysis.ByType(properties),
		analysis.ByAgeBand(properties),
		analysis.ByLocationScore(properties),
	)
	if err != nil {
		h.logger.WithError(err).Error("Failed to render report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to render report"})
		return
	}

	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(sb.String()))
}

// Generate synthesizes a new dataset and enqueues it for persistence. The
// response carries the dataset ID so the client can poll or query it.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	count := h.config.Generator.DefaultCount
	if req.Count != nil {
		count = *req.Count
	}
	seed := h.config.Generator.DefaultSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	now := time.Now()
	properties, err := h.generator.Generate(count, generator.NewStreams(seed), now)
	if err != nil {
		if errors.Is(err, generator.ErrInvalidArgument) || errors.Is(err, generator.ErrConfiguration) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.WithError(err).Error("Failed to generate dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate dataset"})
		return
	}

	dataset, err := h.db.CreateDataset(seed, count, now)
	if err != nil {
		h.logger.WithError(err).Error("Failed to register dataset")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register dataset"})
		return
	}

	if err := h.enqueue(dataset.ID, properties); err != nil {
		h.logger.WithError(err).Error("Failed to enqueue dataset for persistence")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Persistence queue is full"})
		return
	}

	h.logger.WithFields(logrus.Fields{
		"dataset_id": dataset.ID,
		"count":      count,
		"seed":       seed,
	}).Info("Generated dataset")

	c.JSON(http.StatusAccepted, gin.H{
		"dataset_id": dataset.ID,
		"count":      count,
		"seed":       seed,
	})
}

// enqueue stamps the run ID on every record and pushes the dataset in
// processor-sized batches.
func (h *Handler) enqueue(datasetID string, properties []models.Property) error {
	batchSize := h.config.BatchProcessing.MaxBatchSize
	if batchSize <= 0 {
		batchSize = 100
	}

	for start := 0; start < len(properties); start += batchSize {
		end := start + batchSize
		if end > len(properties) {
			end = len(properties)
		}

		batch := make([]*models.Property, 0, end-start)
		for i := start; i < end; i++ {
			p := properties[i]
			p.DatasetID = datasetID
			batch = append(batch, &p)
		}

		if err := h.queue.Push(batch); err != nil {
			return err
		}
	}
	return nil
}

// loadForAggregation loads the filtered records and writes the error
// response itself; a nil slice with nil error means the response is already
// sent.
func (h *Handler) loadForAggregation(c *gin.Context) ([]models.Property, error) {
	var filter PropertyFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.logger.WithError(err).Error("Failed to parse property filter")
	}

	properties, err := h.latestProperties(filter)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load properties")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load properties"})
		return nil, err
	}
	if len(properties) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No dataset available"})
		return nil, nil
	}
	return properties, nil
}
