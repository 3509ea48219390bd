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

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/billbook/internal/config"
	"github.com/mmynk/billbook/internal/export"
	"github.com/mmynk/billbook/internal/metrics"
	"github.com/mmynk/billbook/internal/middleware"
	"github.com/mmynk/billbook/internal/registry"
	"github.com/mmynk/billbook/internal/storage/sqlstore"
	"github.com/mmynk/billbook/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel)

	ctx := context.Background()

	// Open the store and create the schema once
	store, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: cfg.Driver,
		Path:   cfg.DBPath,
		MySQL: sqlstore.MySQLOptions{
			Host:     cfg.MySQL.Host,
			Port:     cfg.MySQL.Port,
			User:     cfg.MySQL.User,
			Password: cfg.MySQL.Password,
			Database: cfg.MySQL.Database,
		},
	})
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Error("Failed to create schema", "error", err)
		os.Exit(1)
	}
	logger.Info("Storage initialized", "driver", cfg.Driver)

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	bills := registry.New(store, registry.WithLogger(logger), registry.WithMetrics(m))
	if err := bills.Load(ctx); err != nil {
		logger.Error("Failed to load bills", "error", err)
		os.Exit(1)
	}

	exporter := export.New(cfg.Currency, export.WithLogger(logger), export.WithObserver(m))

	// Stdin reads cannot be interrupted; leave on the first signal.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		logger.Info("Shutting down", "signal", sig.String())
		store.Close()
		os.Exit(130)
	}()

	newConsole(os.Stdin, os.Stdout, bills, exporter, cfg.Currency, cfg.ExportDir).run(ctx)
	logger.Info("Goodbye")
}

func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler(reg))

	srv := &http.Server{
		Addr:              addr,
		Handler:           middleware.Logging(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "error", err)
		}
	}()
	return srv
}
