// Package container wires the generator, the job ledger and the background
// worker together with ordered startup and reverse-order teardown.
package container

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	"github.com/garyjia/docsynth/internal/config"
	"github.com/garyjia/docsynth/internal/corpus"
	"github.com/garyjia/docsynth/internal/export"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/notification"
	"github.com/garyjia/docsynth/internal/orchestrator"
	"github.com/garyjia/docsynth/internal/render"
	"github.com/garyjia/docsynth/internal/repository"
	"github.com/garyjia/docsynth/internal/worker"
	"github.com/garyjia/docsynth/pkg/database"
	"go.uber.org/zap"
)

const healthTimeout = 2 * time.Second

var (
	ErrNotStarted     = errors.New("container not started")
	ErrAlreadyStarted = errors.New("container already started")
	ErrClosed         = errors.New("container has been closed")
)

// Container manages all application dependencies and lifecycle
type Container struct {
	config *config.Config
	logger *zap.Logger

	// Data
	db     *database.DB
	jobs   *repository.JobRepository
	ledger *repository.Ledger

	// Generation
	templates fs.FS
	corpus    *corpus.Corpus
	renderer  *render.Pipeline
	validator orchestrator.Validator
	newSaver  orchestrator.SaverFactory
	exporter  *export.Exporter
	notifier  *notification.BatchNotifier

	// Workers
	batchWorker *worker.BatchWorker
	workers     *worker.Manager

	// Lifecycle
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// GenerateRequest describes one generation run across classes
type GenerateRequest struct {
	JobID  string
	Counts map[models.DocumentClass]int
	Root   string
	Seed   uint64
}

// GenerateResult is the outcome of a generation run
type GenerateResult struct {
	Reports  []*models.BatchReport
	Metadata *export.Metadata
	Elapsed  time.Duration
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components in dependency order:
// 1. Database and repositories
// 2. Generation stages
// 3. Export and notification
// 4. Workers
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return ErrClosed
	}
	if c.ready.Load() {
		return ErrAlreadyStarted
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("Starting container initialization")

	if err := c.initDatabase(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	c.logger.Info("Database initialized")

	if err := c.initGeneration(); err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize generation: %w", err)
	}
	c.logger.Info("Generation stages initialized")

	if err := c.initOutput(); err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize output: %w", err)
	}
	c.logger.Info("Export and notification initialized")

	if err := c.initWorkers(); err != nil {
		c.closeDatabase()
		return fmt.Errorf("failed to initialize workers: %w", err)
	}
	c.logger.Info("Workers initialized and started")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")
	return nil
}

// Close gracefully shuts down all components in reverse order
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return ErrClosed
	}

	c.logger.Info("Closing container")

	if c.cancel != nil {
		c.cancel()
	}

	if c.workers != nil {
		c.workers.StopAll()
		c.logger.Info("Workers stopped")
	}

	var errs []error
	if err := c.closeDatabase(); err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready returns true when all components are initialized
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components
func (c *Container) Health() *HealthStatus {
	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.db != nil {
		if err := c.db.HealthCheck(context.Background(), healthTimeout); err != nil {
			status.Components["database"] = ComponentHealth{
				Healthy: false,
				Message: fmt.Sprintf("ping failed: %v", err),
			}
			status.Overall = false
		} else {
			status.Components["database"] = ComponentHealth{Healthy: true}
		}
	} else {
		status.Components["database"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.workers != nil {
		status.Components["workers"] = ComponentHealth{
			Healthy: c.workers.IsRunning(),
			Message: fmt.Sprintf("pending jobs: %d", c.batchWorker.Pending()),
		}
		if !c.workers.IsRunning() {
			status.Overall = false
		}
	} else {
		status.Components["workers"] = ComponentHealth{Healthy: false, Message: "not initialized"}
		status.Overall = false
	}

	if c.notifier.Enabled() {
		status.Components["notifications"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["notifications"] = ComponentHealth{Healthy: true, Message: "disabled"}
	}

	return status
}

// Generate runs one batch per requested class under req.Root and exports the
// metadata and labels. Export runs even when generation stopped early, so
// the output directory always describes what was written.
func (c *Container) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if !c.ready.Load() {
		return nil, ErrNotStarted
	}

	orch, err := c.newOrchestrator(req.Seed, req.JobID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	reports, runErr := orch.RunAll(ctx, req.Counts, req.Root)
	result := &GenerateResult{Reports: reports, Elapsed: time.Since(start)}

	if len(reports) > 0 {
		md, err := c.exporter.Export(req.Root, reports, result.Elapsed, req.Seed)
		if err != nil {
			c.logger.Error("Failed to export dataset metadata",
				zap.String("root", req.Root),
				zap.Error(err))
		}
		result.Metadata = md
	}

	return result, runErr
}

// RunJob is the worker entry point for API submitted jobs
func (c *Container) RunJob(ctx context.Context, job *models.BatchJob) ([]*models.BatchReport, error) {
	counts := make(map[models.DocumentClass]int, len(job.Counts))
	for name, n := range job.Counts {
		class, err := models.ParseClass(name)
		if err != nil {
			return nil, err
		}
		counts[class] = n
	}

	result, err := c.Generate(ctx, GenerateRequest{
		JobID:  job.ID,
		Counts: counts,
		Root:   job.OutputRoot,
		Seed:   job.Seed,
	})
	if result == nil {
		return nil, err
	}
	return result.Reports, err
}

func (c *Container) newOrchestrator(seed uint64, jobID string) (*orchestrator.Orchestrator, error) {
	degrader, err := ProvideDegrader(&c.config.Degrade, seed, c.logger)
	if err != nil {
		return nil, err
	}

	return orchestrator.New(orchestrator.Options{
		Templates:  c.templates,
		Extensions: c.config.Generator.Extensions,
		Seed:       seed,
		Now:        time.Now(),
		Corpus:     c.corpus,
		Renderer:   c.renderer,
		Degrader:   degrader,
		Validator:  c.validator,
		NewSaver:   c.newSaver,
		Recorder:   c.ledger.ForJob(jobID),
	}, c.logger.Named("orchestrator"))
}

func (c *Container) initDatabase() error {
	bundle, err := ProvideDatabase(&c.config.Database, c.logger)
	if err != nil {
		return err
	}
	c.db = bundle.DB
	c.jobs = bundle.Jobs
	c.ledger = bundle.Ledger
	return nil
}

func (c *Container) initGeneration() error {
	crp, err := ProvideCorpus(&c.config.Generator, c.logger)
	if err != nil {
		return err
	}
	c.corpus = crp

	c.templates = ProvideTemplates(&c.config.Generator)
	c.renderer = ProvideRenderer(&c.config.Render, c.templates, c.logger.Named("render"))
	c.validator = ProvideValidator(&c.config.Quality)

	newSaver, err := ProvideSaverFactory(&c.config.Output, c.logger.Named("storage"))
	if err != nil {
		return err
	}
	c.newSaver = newSaver
	return nil
}

func (c *Container) initOutput() error {
	exporter, err := ProvideExporter(&c.config.Output, c.logger.Named("export"))
	if err != nil {
		return err
	}
	c.exporter = exporter
	c.notifier = ProvideNotifier(&c.config.Lark, c.logger.Named("notification"))
	return nil
}

func (c *Container) initWorkers() error {
	c.batchWorker, c.workers = ProvideWorkers(c.jobs, c.RunJob, c.notifier, &c.config.Server, c.logger)
	if err := c.workers.StartAll(c.ctx); err != nil {
		return fmt.Errorf("failed to start workers: %w", err)
	}
	return nil
}

func (c *Container) closeDatabase() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err == nil {
		c.logger.Info("Database closed")
	}
	return err
}

// Config returns the container's configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the container's logger
func (c *Container) Logger() *zap.Logger {
	return c.logger
}

// Jobs returns the batch job repository
func (c *Container) Jobs() *repository.JobRepository {
	return c.jobs
}

// Ledger returns the batch and document ledger
func (c *Container) Ledger() *repository.Ledger {
	return c.ledger
}

// Worker returns the batch worker accepting API jobs
func (c *Container) Worker() *worker.BatchWorker {
	return c.batchWorker
}

// Renderer returns the render pipeline
func (c *Container) Renderer() *render.Pipeline {
	return c.renderer
}

// Templates returns the template pool
func (c *Container) Templates() fs.FS {
	return c.templates
}

// Corpus returns the paragraph corpus
func (c *Container) Corpus() *corpus.Corpus {
	return c.corpus
}
