package container

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/garyjia/docsynth/internal/config"
	"github.com/garyjia/docsynth/internal/corpus"
	"github.com/garyjia/docsynth/internal/degrade"
	"github.com/garyjia/docsynth/internal/export"
	"github.com/garyjia/docsynth/internal/notification"
	"github.com/garyjia/docsynth/internal/orchestrator"
	"github.com/garyjia/docsynth/internal/quality"
	"github.com/garyjia/docsynth/internal/randsrc"
	"github.com/garyjia/docsynth/internal/render"
	"github.com/garyjia/docsynth/internal/repository"
	"github.com/garyjia/docsynth/internal/storage"
	"github.com/garyjia/docsynth/internal/worker"
	"github.com/garyjia/docsynth/pkg/database"
	"github.com/garyjia/docsynth/templates"
	"go.uber.org/zap"
)

// degradeSeedMix separates the degradation stream from field generation
const degradeSeedMix = 0x5DEECE66D

// DatabaseBundle holds the ledger connection and repositories
type DatabaseBundle struct {
	DB     *database.DB
	Jobs   *repository.JobRepository
	Ledger *repository.Ledger
}

// ProvideDatabase opens and migrates the ledger database. A disabled ledger
// still gets an in-memory database so jobs can be tracked for one process.
func ProvideDatabase(cfg *config.DatabaseConfig, logger *zap.Logger) (*DatabaseBundle, error) {
	dbCfg := database.Config{
		Path:            cfg.Path,
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
	if !cfg.Enabled {
		// every connection to :memory: is a fresh database, so pin one forever
		dbCfg = database.Config{Path: database.MemoryPath, MaxOpenConns: 1, MaxIdleConns: 1}
	}

	db, err := database.New(dbCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := database.Migrate(db, logger); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &DatabaseBundle{
		DB:     db,
		Jobs:   repository.NewJobRepository(db.DB, logger),
		Ledger: repository.NewLedger(db.DB, logger),
	}, nil
}

// ProvideTemplates returns the template pool: a directory on disk when one is
// configured, the embedded pool otherwise
func ProvideTemplates(cfg *config.GeneratorConfig) fs.FS {
	if cfg.TemplatesDir != "" {
		return os.DirFS(cfg.TemplatesDir)
	}
	return templates.FS
}

// ProvideCorpus loads the paragraph corpus, falling back to the built-in one
func ProvideCorpus(cfg *config.GeneratorConfig, logger *zap.Logger) (*corpus.Corpus, error) {
	c := corpus.Default()
	if cfg.CorpusPath == "" {
		return c, nil
	}

	loaded, err := corpus.Load(cfg.CorpusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load corpus: %w", err)
	}
	c.Merge(loaded)

	logger.Info("Corpus loaded", zap.String("path", cfg.CorpusPath))
	return c, nil
}

// ProvideRenderer builds the HTML to image pipeline
func ProvideRenderer(cfg *config.RenderConfig, fsys fs.FS, logger *zap.Logger) *render.Pipeline {
	engine := render.NewTemplateEngine(fsys, logger)
	rasterizer := render.NewFitzRasterizer(cfg.DPI, cfg.TmpDir, logger)
	return render.NewPipeline(engine, rasterizer, cfg.Width, cfg.Height, logger)
}

// ProvideValidator returns the quality gate, or nil when it is disabled
func ProvideValidator(cfg *config.QualityConfig) orchestrator.Validator {
	if !cfg.Enabled {
		return nil
	}
	return quality.NewChecker(cfg.Thresholds)
}

// ProvideDegrader builds a degradation pipeline for one run
func ProvideDegrader(cfg *config.DegradeConfig, seed uint64, logger *zap.Logger) (orchestrator.Degrader, error) {
	if !cfg.Enabled {
		return degrade.Passthrough{}, nil
	}

	var src *randsrc.Source
	if seed == 0 {
		src = randsrc.New(0)
	} else {
		src = randsrc.New(seed ^ degradeSeedMix)
	}

	p, err := degrade.NewPipeline(cfg.Params, src, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build degradation pipeline: %w", err)
	}
	return p, nil
}

// ProvideSaverFactory returns a factory writing images in the configured format
func ProvideSaverFactory(cfg *config.OutputConfig, logger *zap.Logger) (orchestrator.SaverFactory, error) {
	format, err := storage.ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	return func(root string) orchestrator.Saver {
		return storage.NewImageSaver(root, format, cfg.JPEGQuality, logger)
	}, nil
}

// ProvideExporter builds the metadata and labels exporter
func ProvideExporter(cfg *config.OutputConfig, logger *zap.Logger) (*export.Exporter, error) {
	return export.NewExporter(cfg.Split, cfg.Labels, logger)
}

// ProvideNotifier builds the batch notifier; disabled notifications get a
// notifier whose calls are no-ops
func ProvideNotifier(cfg *config.LarkConfig, logger *zap.Logger) *notification.BatchNotifier {
	var sender notification.MessageSender
	if cfg.Enabled {
		sender = notification.NewLarkSender(notification.LarkConfig{
			AppID:     cfg.AppID,
			AppSecret: cfg.AppSecret,
		}, logger)
	}
	return notification.NewBatchNotifier(sender, notification.Config{
		Enabled:       cfg.Enabled,
		ReceiveIDType: cfg.ReceiveIDType,
		ReceiveID:     cfg.ReceiveID,
	}, logger)
}

// ProvideWorkers creates the batch worker and a manager holding it
func ProvideWorkers(jobs worker.JobStore, run worker.RunFunc, notifier worker.Notifier, cfg *config.ServerConfig, logger *zap.Logger) (*worker.BatchWorker, *worker.Manager) {
	bw := worker.NewBatchWorker(jobs, run, notifier, cfg.QueueSize, logger.Named("worker"))
	m := worker.NewManager(logger)
	m.Register(bw)
	return bw, m
}
