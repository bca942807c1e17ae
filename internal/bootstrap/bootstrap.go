package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sarabun-dev/sarabun-core/internal/config"
	"github.com/sarabun-dev/sarabun-core/internal/core/ports"
	"github.com/sarabun-dev/sarabun-core/internal/core/usecase"
	"github.com/sarabun-dev/sarabun-core/internal/export"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/extraction"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/queue/nats"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/recognition/typhoon"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/repository/postgres"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/resilience"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/storage/localfs"
	"github.com/sarabun-dev/sarabun-core/internal/infrastructure/textlayer"
	"github.com/sarabun-dev/sarabun-core/internal/observability/metrics"
)

// App holds every wired dependency for one process. Both binaries build the
// same graph and pick the pieces they serve.
type App struct {
	Config config.Config
	Logger *slog.Logger

	Queue      ports.MessageQueue
	Repo       ports.DocumentRepository
	IngestUC   ports.DocumentIngestor
	ProcessUC  ports.DocumentProcessor
	WorkflowUC ports.WorkflowService
	Extractor  ports.FieldExtractor
	Export     *export.Service

	WorkerMetrics *metrics.WorkerMetrics

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, logger *slog.Logger, service string) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewDocumentRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	events := postgres.NewWorkflowEventRepository(db)

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	executor := resilience.NewExecutor(resilience.DefaultPolicy(), logger)

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, logger, nats.Options{
		Executor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	workerMetrics := metrics.NewWorkerMetrics(service)

	recognizer := typhoon.New(cfg.RecognitionBaseURL, cfg.RecognitionAPIKey, typhoon.WithExecutor(executor))
	poller := usecase.NewResultPoller(recognizer, cfg.RecognitionPollInterval(), cfg.RecognitionTimeout(), logger)
	poller.OnProgress = func(jobID string, percent int) {
		workerMetrics.RecordPollTick(service)
	}

	engine := extraction.NewEngine()
	probe := textlayer.NewProbe()

	ingestUC := usecase.NewIngestService(repo, storage, queue, logger)
	processUC := usecase.NewProcessService(repo, storage, recognizer, probe, engine, poller, logger)
	processUC.OnRecognitionSource = func(source string) {
		workerMetrics.RecordRecognitionSource(service, source)
	}
	processUC.OnQueueLag = func(lag time.Duration) {
		workerMetrics.ObserveQueueLag(service, lag)
	}
	workflowUC := usecase.NewWorkflowUsecase(repo, events, logger)

	return &App{
		Config: cfg,
		Logger: logger,

		Queue:      queue,
		Repo:       repo,
		IngestUC:   ingestUC,
		ProcessUC:  processUC,
		WorkflowUC: workflowUC,
		Extractor:  engine,
		Export:     export.NewService(repo, logger),

		WorkerMetrics: workerMetrics,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
