package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/trinamix-ai/documantra-saas/internal/bootstrap"
	"github.com/trinamix-ai/documantra-saas/internal/config"
	"github.com/trinamix-ai/documantra-saas/internal/observability/logging"
	"github.com/trinamix-ai/documantra-saas/internal/observability/metrics"
)

const jobTimeout = 5 * time.Minute

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := logging.NewJSONLogger("worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		logger.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	cls, err := config.LoadClassifier(cfg.ClassifierConfigPath)
	if err != nil {
		logger.Error("classifier_config_failed", "path", cfg.ClassifierConfigPath, "error", err)
		os.Exit(1)
	}
	processor, err := app.NewProcessor(cls)
	if err != nil {
		logger.Error("classifier_wiring_failed", "error", err)
		os.Exit(1)
	}

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsServer := &http.Server{
		Addr:              ":" + cfg.WorkerMetricsPort,
		Handler:           workerMetrics.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_failed", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeClassificationRequested(ctx, func(handlerCtx context.Context, jobID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, jobTimeout)
		defer cancel()

		if job, err := app.Jobs.GetByID(processCtx, jobID); err == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(job.CreatedAt))
		}

		workerMetrics.StartJob()
		started := time.Now()
		result, err := processor.ProcessByID(processCtx, jobID)
		workerMetrics.FinishJob("worker", time.Since(started), string(result.Category.Kind), err)
		if err != nil {
			return err
		}
		logger.Info("job_processed", "job_id", jobID, "label", result.Label)
		return nil
	})
	if err != nil {
		logger.Error("worker_subscribe_failed", "error", err)
		os.Exit(1)
	}
}
