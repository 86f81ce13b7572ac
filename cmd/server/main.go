package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/moriverguide/river-conditions-service/internal/adapter/history"
	"github.com/moriverguide/river-conditions-service/internal/adapter/httpapi"
	kafkaadapter "github.com/moriverguide/river-conditions-service/internal/adapter/kafka"
	"github.com/moriverguide/river-conditions-service/internal/adapter/usgs"
	"github.com/moriverguide/river-conditions-service/internal/aggregator"
	"github.com/moriverguide/river-conditions-service/internal/config"
	"github.com/moriverguide/river-conditions-service/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	feed := usgs.NewClient(cfg.USGSBaseURL, cfg.USGSTimeout, cfg.USGSRateLimit, logger)

	// Reading history (feature-flagged via HISTORY_DB_PATH).
	var historyStore *history.Store
	var recorder aggregator.Recorder
	var historyReader httpapi.HistoryReader
	if cfg.HistoryDBPath != "" {
		historyStore, err = history.Open(cfg.HistoryDBPath, logger)
		if err != nil {
			logger.Error("failed to open history store", "path", cfg.HistoryDBPath, "error", err)
			os.Exit(1)
		}
		recorder = historyStore
		historyReader = historyStore
		logger.Info("reading history enabled", "path", cfg.HistoryDBPath, "retention_days", cfg.HistoryGageDays)
	} else {
		logger.Info("reading history disabled")
	}

	// Status-change alerts (feature-flagged via KAFKA_BROKERS / ALERTS_ENABLED).
	var publisher *kafkaadapter.Publisher
	var alerts aggregator.AlertPublisher
	if cfg.AlertsEnabled {
		publisher = kafkaadapter.NewPublisher(cfg.KafkaBrokers, cfg.KafkaAlertTopic, logger)
		alerts = publisher
		logger.Info("status alerts enabled", "topic", cfg.KafkaAlertTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("status alerts disabled")
	}

	agg := aggregator.New(feed, aggregator.Options{
		TTL:       cfg.CacheTTL,
		DetailTTL: cfg.DetailCacheTTL,
		Recorder:  recorder,
		Alerts:    alerts,
		Logger:    logger,
		Metrics:   metrics,
	})

	srv := httpapi.NewServer(cfg.HTTPAddr, agg, historyReader, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background cache warmer: keeps the water-level cache hot so consumer
	// polls never wait on a cold fetch, and prunes old history rows.
	scheduler := cron.New()
	if cfg.RefreshSchedule != "" {
		_, err := scheduler.AddFunc(cfg.RefreshSchedule, func() {
			warmCtx, cancel := context.WithTimeout(ctx, cfg.USGSTimeout+5*time.Second)
			defer cancel()
			agg.WaterLevels(warmCtx)

			if historyStore != nil {
				cutoff := time.Now().AddDate(0, 0, -cfg.HistoryGageDays)
				if n, err := historyStore.Prune(warmCtx, cutoff); err != nil {
					logger.Warn("history prune failed", "error", err)
				} else if n > 0 {
					logger.Debug("history pruned", "rows", n)
				}
			}
		})
		if err != nil {
			logger.Error("invalid refresh schedule", "schedule", cfg.RefreshSchedule, "error", err)
			os.Exit(1)
		}
		scheduler.Start()
		logger.Info("refresh scheduler started", "schedule", cfg.RefreshSchedule)
	}

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	<-scheduler.Stop().Done()
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			logger.Error("history store close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
