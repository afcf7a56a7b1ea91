package http

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/docsynth/internal/container"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/worker"
	"github.com/garyjia/docsynth/pkg/utils"
)

// JobQueue accepts batch jobs for background processing
type JobQueue interface {
	Submit(job *models.BatchJob) error
}

// JobReader reads stored batch jobs
type JobReader interface {
	GetByID(id string) (*models.BatchJob, error)
	List(limit int) ([]*models.BatchJob, error)
}

// BatchReader reads the per-class batches of a job
type BatchReader interface {
	ListByJob(jobID string) ([]*models.BatchReport, error)
}

// TemplateService lists and previews templates
type TemplateService interface {
	ListTemplates(class models.DocumentClass) ([]models.TemplateHandle, error)
	Preview(class models.DocumentClass, seed uint64) (*container.Preview, error)
}

// HealthReporter reports component health
type HealthReporter interface {
	Health() *container.HealthStatus
}

// Deps holds everything the handlers call into
type Deps struct {
	Queue     JobQueue
	Jobs      JobReader
	Batches   BatchReader
	Templates TemplateService
	Health    HealthReporter

	// OutputRoot is the directory API output dirs are resolved under
	OutputRoot string
	MaxCount   int
	Version    string
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	deps   Deps
	logger *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(deps Deps, logger *zap.Logger) *Handlers {
	return &Handlers{deps: deps, logger: logger}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status     string                  `json:"status"`
	Timestamp  string                  `json:"timestamp"`
	Version    string                  `json:"version"`
	Components *container.HealthStatus `json:"components,omitempty"`
}

// SubmitBatchRequest is the body of POST /api/v1/batches. Counts wins over
// Class and Count when both are given.
type SubmitBatchRequest struct {
	Class     string         `json:"class"`
	Count     int            `json:"count"`
	Counts    map[string]int `json:"counts"`
	OutputDir string         `json:"output_dir"`
	Seed      uint64         `json:"seed"`
}

// ListBatchesRequest represents query parameters for listing jobs
type ListBatchesRequest struct {
	Limit int `form:"limit"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.deps.Version,
	}

	status := http.StatusOK
	if h.deps.Health != nil {
		resp.Components = h.deps.Health.Health()
		if !resp.Components.Overall {
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, Response{Success: status == http.StatusOK, Data: resp})
}

// SubmitBatch handles POST /api/v1/batches
func (h *Handlers) SubmitBatch(c *gin.Context) {
	var req SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "invalid request body: "+err.Error())
		return
	}

	counts, err := h.resolveCounts(req)
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	job := &models.BatchJob{
		ID:       uuid.NewString(),
		Selector: req.Class,
		Counts:   counts,
		Seed:     req.Seed,
	}
	if job.Selector == "" {
		job.Selector = models.ClassAll
	}

	outputDir := utils.SanitizeString(req.OutputDir)
	if outputDir == "" {
		outputDir = job.ID
	}
	if err := utils.ValidateRelativeDir(outputDir); err != nil {
		h.badRequest(c, err.Error())
		return
	}
	job.OutputRoot = filepath.Join(h.deps.OutputRoot, outputDir)

	if err := h.deps.Queue.Submit(job); err != nil {
		if errors.Is(err, worker.ErrQueueFull) {
			c.JSON(http.StatusServiceUnavailable, Response{Success: false, Error: err.Error()})
			return
		}
		h.logger.Error("Failed to submit batch", zap.String("job_id", job.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to submit batch"})
		return
	}

	h.logger.Info("Batch submitted",
		zap.String("job_id", job.ID),
		zap.Any("counts", counts),
		zap.String("output_root", job.OutputRoot))

	c.JSON(http.StatusAccepted, Response{Success: true, Data: job})
}

func (h *Handlers) resolveCounts(req SubmitBatchRequest) (map[string]int, error) {
	counts := make(map[string]int)
	if len(req.Counts) > 0 {
		for name, n := range req.Counts {
			class, err := models.ParseClass(name)
			if err != nil {
				return nil, err
			}
			if err := utils.ValidateCount(n, h.deps.MaxCount); err != nil {
				return nil, err
			}
			counts[string(class)] = n
		}
		return counts, nil
	}

	classes, err := models.ParseClasses(req.Class)
	if err != nil {
		return nil, err
	}
	if err := utils.ValidateCount(req.Count, h.deps.MaxCount); err != nil {
		return nil, err
	}
	for _, class := range classes {
		counts[string(class)] = req.Count
	}
	return counts, nil
}

// ListBatches handles GET /api/v1/batches
func (h *Handlers) ListBatches(c *gin.Context) {
	var req ListBatchesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.badRequest(c, "invalid query parameters")
		return
	}
	if req.Limit <= 0 || req.Limit > 100 {
		req.Limit = 20
	}

	jobs, err := h.deps.Jobs.List(req.Limit)
	if err != nil {
		h.logger.Error("Failed to list batches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve batches"})
		return
	}
	if jobs == nil {
		jobs = []*models.BatchJob{}
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: jobs})
}

// GetBatch handles GET /api/v1/batches/:id
func (h *Handlers) GetBatch(c *gin.Context) {
	id := c.Param("id")

	job, err := h.deps.Jobs.GetByID(id)
	if err != nil {
		h.logger.Error("Failed to get batch", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve batch"})
		return
	}
	if job == nil {
		c.JSON(http.StatusNotFound, Response{Success: false, Error: "batch not found"})
		return
	}

	reports, err := h.deps.Batches.ListByJob(id)
	if err != nil {
		h.logger.Error("Failed to list class batches", zap.String("job_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to retrieve batch"})
		return
	}
	job.Reports = reports

	c.JSON(http.StatusOK, Response{Success: true, Data: job})
}

// ListTemplates handles GET /api/v1/templates/:class
func (h *Handlers) ListTemplates(c *gin.Context) {
	class, err := models.ParseClass(c.Param("class"))
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	handles, err := h.deps.Templates.ListTemplates(class)
	if err != nil {
		h.logger.Error("Failed to list templates", zap.String("class", string(class)), zap.Error(err))
		c.JSON(http.StatusNotFound, Response{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: handles})
}

// PreviewTemplate handles GET /api/v1/preview/:class. The filled HTML is
// returned as is; format=json returns the template and fields instead.
func (h *Handlers) PreviewTemplate(c *gin.Context) {
	class, err := models.ParseClass(c.Param("class"))
	if err != nil {
		h.badRequest(c, err.Error())
		return
	}

	var seed uint64
	if s := c.Query("seed"); s != "" {
		seed, err = strconv.ParseUint(s, 10, 64)
		if err != nil {
			h.badRequest(c, "invalid seed")
			return
		}
	}

	preview, err := h.deps.Templates.Preview(class, seed)
	if err != nil {
		h.logger.Error("Failed to preview template", zap.String("class", string(class)), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "preview failed: " + err.Error()})
		return
	}

	if c.Query("format") == "json" {
		c.JSON(http.StatusOK, Response{Success: true, Data: preview})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(preview.HTML))
}

func (h *Handlers) badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}
