package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trinamix-ai/documantra-saas/internal/config"
	"github.com/trinamix-ai/documantra-saas/internal/core/ports"
	"github.com/trinamix-ai/documantra-saas/internal/core/usecase"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/export/xlsx"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/queue/nats"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/repository/postgres"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/resilience"
	"github.com/trinamix-ai/documantra-saas/internal/infrastructure/storage/localfs"
)

// App holds the infrastructure shared by the api and worker binaries.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue    *nats.Queue
	Jobs     *postgres.JobRepository
	Records  *postgres.RecordStore
	Storage  *localfs.Storage
	Executor *resilience.Executor

	SubmitUC ports.JobSubmitter
	Exporter ports.JobExporter

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dbCfg, err := config.LoadDatabase(cfg.DBConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	pool, err := postgres.OpenPool(ctx, dbCfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	jobs := postgres.NewJobRepository(pool.DB)
	if err := jobs.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := newExecutor(cfg, logger)
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
		Logger:             logger,
	})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:    queue,
		Jobs:     jobs,
		Records:  pool.Records(),
		Storage:  storage,
		Executor: executor,

		SubmitUC: usecase.NewSubmitJobUseCase(jobs, storage, queue),
		Exporter: xlsx.NewExporter(jobs, cfg.ExportMaxRows, logger),

		closeFn: func() {
			queue.Close()
			pool.Close()
		},
	}, nil
}

// NewProcessor builds the worker-side use case that runs stored uploads
// through the classification pipeline.
func (a *App) NewProcessor(cls config.Classifier) (ports.JobProcessor, error) {
	classifier, err := newClassifier(cls, a.Executor, a.Logger)
	if err != nil {
		return nil, err
	}
	return usecase.NewProcessJobUseCase(a.Jobs, a.Storage, classifier), nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func newExecutor(cfg config.Config, logger *slog.Logger) *resilience.Executor {
	policy := resilience.FromSettings(
		time.Duration(cfg.ExternalCallTimeoutSeconds)*time.Second,
		cfg.RetryMaxAttempts,
		cfg.BreakerEnabled,
	)
	return resilience.NewExecutorWithLogger(policy, logger)
}
