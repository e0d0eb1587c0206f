package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/formnav/internal/config"
	"github.com/JonMunkholm/formnav/internal/logging"
	"github.com/JonMunkholm/formnav/internal/metrics"
	"github.com/JonMunkholm/formnav/internal/source"
	"github.com/JonMunkholm/formnav/internal/web"
)

func main() {
	// Load .env file if it exists; real environment variables win
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"page_size", cfg.Navigator.PageSize,
		"locale", cfg.Navigator.Locale,
		"rate_limit_enabled", cfg.Rate.Enabled,
		"require_api_key", cfg.Security.RequireAPIKey,
	)
	slog.Debug("effective configuration", "config", cfg.String())

	ctx := context.Background()

	src, closeSource, err := source.FromConfig(ctx, cfg)
	if err != nil {
		slog.Error("failed to configure record source", "error", err)
		os.Exit(1)
	}
	defer closeSource()

	switch {
	case cfg.Source.URL != "":
		slog.Info("record source", "type", "http", "endpoint", cfg.Source.Endpoint())
	case cfg.Database.URL != "":
		slog.Info("record source", "type", "postgres", "table", cfg.Database.Table)
	default:
		slog.Info("record source", "type", "file", "path", cfg.Source.File)
	}

	m := metrics.New()
	server := web.NewServer(cfg, src, m)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go server.RunMaintenance(jobCtx)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}
