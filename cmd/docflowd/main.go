package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"

	"github.com/upay-labs/docuflow/internal/async"
	"github.com/upay-labs/docuflow/internal/common"
	"github.com/upay-labs/docuflow/internal/extract"
	"github.com/upay-labs/docuflow/internal/observability/metrics"
	"github.com/upay-labs/docuflow/internal/ocr"
	"github.com/upay-labs/docuflow/internal/pipeline"
	repo "github.com/upay-labs/docuflow/internal/repository"
	"github.com/upay-labs/docuflow/internal/schema"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err, "driver", cfg.Database.Driver)
		os.Exit(1)
	}
	defer repo.Close(db, logger)

	if err := repo.EnsureSchema(ctx, db); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}
	if err := repo.HealthCheck(ctx, db, cfg.Database.HealthTimeout); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	docsRepo := repo.NewDocumentRepository(db, logger)
	queueRepo := repo.NewQueueRepository(db, logger)
	fieldsRepo := repo.NewFieldRepository(db, logger)

	schemas, err := schema.NewRegistry(logger)
	if err != nil {
		logger.Error("failed to build category schemas", "error", err)
		os.Exit(1)
	}

	reader := ocr.NewReader(ocr.Config{TesseractLang: cfg.OCR.TesseractLang}, logger)
	strategies := extract.NewRegistry(logger)
	backend := extract.NewLayoutBackend(reader, strategies, logger)

	policy := pipeline.NewPolicy(schemas, cfg.Pipeline.ConfidenceThreshold, logger)
	processor := pipeline.NewProcessor(docsRepo, queueRepo, fieldsRepo, backend, policy, logger)

	pm := metrics.NewPipelineMetrics()
	mux := http.NewServeMux()
	mux.Handle("/metrics", pm.Handler())
	metricsSrv := &http.Server{Addr: cfg.Metrics.Addr, Handler: mux}
	go func() {
		logger.Info("metrics listening", "addr", cfg.Metrics.Addr)
		if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics serve error", "error", err)
		}
	}()

	pool := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Pipeline.Workers),
		async.WithQueueSize(cfg.Pipeline.QueueSize),
		async.WithProcessTimeout(cfg.Pipeline.ProcessTimeout),
		async.WithMetrics(pm),
	)
	dispatcher := async.NewDispatcher(queueRepo, pool, cfg.Pipeline.DispatchInterval, logger)
	go dispatcher.Run(ctx)

	// gRPC health endpoint so orchestrators can probe the daemon.
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_SERVING)

	addr := getenv("GRPC_ADDR", ":8080")
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("failed to listen on address", "addr", addr, "error", err)
		os.Exit(1)
	}
	logger.Info("docflowd listening", "addr", addr, "workers", cfg.Pipeline.Workers)
	go func() {
		if err := grpcServer.Serve(lis); err != nil {
			slog.Error("gRPC serve error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	healthServer.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	pool.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
	_ = metricsSrv.Shutdown(shutdownCtx)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
