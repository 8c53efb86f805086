package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/volcano-explorer/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/volcano-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/volcano-explorer/internal/config"
	"github.com/couchcryptid/volcano-explorer/internal/dataset"
	"github.com/couchcryptid/volcano-explorer/internal/observability"
	"github.com/couchcryptid/volcano-explorer/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Publishing is feature-flagged via KAFKA_BROKERS.
	var (
		writer    *kafkaadapter.Writer
		publisher pipeline.Publisher
	)
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Info("kafka publishing disabled")
	}

	store := dataset.NewStore()
	source := dataset.NewFileSource(cfg.DatasetPath, cfg.DatasetSheet)
	p := pipeline.New(source, store, publisher, logger, metrics, cfg.BatchSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The service has nothing to serve without a table, so the first load is fatal.
	if err := p.Run(ctx); err != nil {
		logger.Error("initial dataset load failed", "error", err)
		os.Exit(1) //nolint:gocritic // nothing to clean up before the server starts
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, httpadapter.Defaults{
		TopN:          cfg.TopN,
		HistogramBins: cfg.HistogramBins,
		NameSubstring: cfg.NameSubstring,
	}, metrics, logger)

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// SIGHUP reloads the dataset. A failed reload keeps the current table.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				logger.Info("reloading dataset", "path", cfg.DatasetPath)
				if err := p.Run(ctx); err != nil {
					logger.Error("dataset reload failed, keeping previous table", "error", err)
				}
			}
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
