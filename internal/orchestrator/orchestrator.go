package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/garyjia/docsynth/internal/corpus"
	"github.com/garyjia/docsynth/internal/fields"
	"github.com/garyjia/docsynth/internal/models"
	"github.com/garyjia/docsynth/internal/randsrc"
	"github.com/garyjia/docsynth/internal/registry"
	"github.com/garyjia/docsynth/templates"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultProgressEvery is how often batch progress is logged
const DefaultProgressEvery = 10

// Options configures an Orchestrator
type Options struct {
	// Templates holds one directory per document class
	Templates     fs.FS
	Extensions    []string
	Seed          uint64
	Now           time.Time
	Corpus        *corpus.Corpus
	ProgressEvery int

	Renderer  Renderer
	Degrader  Degrader
	Validator Validator
	NewSaver  SaverFactory
	Recorder  Recorder
}

// Orchestrator runs generation batches
type Orchestrator struct {
	opts   Options
	logger *zap.Logger
}

// New creates an orchestrator; degrader, validator, recorder and logger are optional
func New(opts Options, logger *zap.Logger) (*Orchestrator, error) {
	if opts.Renderer == nil {
		return nil, ErrNoRenderer
	}
	if opts.NewSaver == nil {
		return nil, ErrNoSaverFactory
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Corpus == nil {
		opts.Corpus = corpus.Default()
	}
	if opts.Templates == nil {
		opts.Templates = templates.FS
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{opts: opts, logger: logger}, nil
}

// Run generates req.Count documents of req.Class. Per-document failures are
// counted and skipped. Template discovery errors abort before any document;
// cancellation stops the loop and returns the partial report with ctx.Err().
func (o *Orchestrator) Run(ctx context.Context, req models.GenerationRequest) (*models.BatchReport, error) {
	if req.Count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, req.Count)
	}

	gen, err := o.newGenerator(req.Class)
	if err != nil {
		return nil, err
	}
	saver := o.opts.NewSaver(req.OutputRoot)

	report := &models.BatchReport{
		BatchID:   uuid.NewString(),
		Class:     req.Class,
		OutputDir: filepath.Join(req.OutputRoot, string(req.Class)),
		Requested: req.Count,
		StartedAt: time.Now(),
	}
	o.record("begin batch", report.BatchID, func(r Recorder) error { return r.BeginBatch(report) })

	o.logger.Info("Generating documents",
		zap.String("batch_id", report.BatchID),
		zap.String("class", string(req.Class)),
		zap.Int("count", req.Count),
		zap.Int("templates", gen.registry.Len()))

	var runErr error
	for i := 1; i <= req.Count; i++ {
		if err := ctx.Err(); err != nil {
			o.logger.Warn("Batch cancelled",
				zap.String("batch_id", report.BatchID),
				zap.Int("completed", i-1),
				zap.Int("requested", req.Count))
			runErr = err
			break
		}

		rec, err := gen.generate(ctx, i, saver)
		if err != nil {
			stage := models.StageTemplate
			var se *stageError
			if errors.As(err, &se) {
				stage = se.stage
			}
			report.Failed++
			report.Failures = append(report.Failures, models.DocumentFailure{
				Index: i,
				Stage: stage,
				Error: err.Error(),
			})
			o.logger.Error("Failed to generate document",
				zap.String("class", string(req.Class)),
				zap.Int("index", i),
				zap.String("stage", stage),
				zap.Error(err))
		} else {
			report.Succeeded++
			report.Documents = append(report.Documents, *rec)
			o.record("record document", report.BatchID, func(r Recorder) error {
				return r.RecordDocument(report.BatchID, req.Class, rec)
			})
		}

		if i%o.opts.ProgressEvery == 0 {
			o.logger.Info("Generation progress",
				zap.String("class", string(req.Class)),
				zap.Int("generated", i),
				zap.Int("requested", req.Count))
		}
	}

	report.FinishedAt = time.Now()
	o.record("finish batch", report.BatchID, func(r Recorder) error { return r.FinishBatch(report) })

	o.logger.Info("Completed generating documents",
		zap.String("batch_id", report.BatchID),
		zap.String("class", string(req.Class)),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
		zap.Duration("duration", report.Duration()))

	return report, runErr
}

// RunAll runs one batch per class in tax-form, pay-statement, miscellaneous
// order, skipping classes with no requested documents. It stops at the
// first error and returns the reports collected so far.
func (o *Orchestrator) RunAll(ctx context.Context, counts map[models.DocumentClass]int, root string) ([]*models.BatchReport, error) {
	var reports []*models.BatchReport
	for _, class := range models.AllClasses {
		n := counts[class]
		if n == 0 {
			continue
		}
		report, err := o.Run(ctx, models.GenerationRequest{Class: class, Count: n, OutputRoot: root})
		if report != nil {
			reports = append(reports, report)
		}
		if err != nil {
			return reports, fmt.Errorf("failed to generate %s documents: %w", class, err)
		}
	}
	return reports, nil
}

func (o *Orchestrator) record(op, batchID string, fn func(Recorder) error) {
	if o.opts.Recorder == nil {
		return
	}
	if err := fn(o.opts.Recorder); err != nil {
		o.logger.Warn("Ledger write failed",
			zap.String("op", op),
			zap.String("batch_id", batchID),
			zap.Error(err))
	}
}

func (o *Orchestrator) newGenerator(class models.DocumentClass) (*generator, error) {
	rules, err := fields.ForClass(class)
	if err != nil {
		return nil, err
	}
	reg, err := registry.Discover(o.opts.Templates, string(class), class, o.opts.Extensions, o.logger)
	if err != nil {
		return nil, err
	}

	// each class draws from its own stream
	seed := o.opts.Seed
	if seed != 0 {
		seed += classOffset(class)
	}

	return &generator{
		class:     class,
		registry:  reg,
		rules:     rules,
		fctx:      fields.NewContext(randsrc.New(seed), o.opts.Now, o.opts.Corpus),
		renderer:  o.opts.Renderer,
		degrader:  o.opts.Degrader,
		validator: o.opts.Validator,
	}, nil
}

func classOffset(class models.DocumentClass) uint64 {
	for i, c := range models.AllClasses {
		if c == class {
			return uint64(i) * 1_000_003
		}
	}
	return 0
}
