package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/shipmint/rateengine/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "0.0.1"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "rateengine",
	Short:   "Shipmint Rate Engine - Multi-courier rate normalization and pricing service",
	Version: version,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Initialize telemetry
	logger, err := initLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	tracerShutdown, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Warn("Failed to initialize tracer", zap.Error(err))
	} else {
		defer tracerShutdown(ctx)
	}

	// Initialize courier registry with all enabled sources
	registry := initCourierRegistry(cfg, logger)

	// Plan store: Postgres when configured, in-memory otherwise
	plans, cleanup, err := initPlanStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("Starting Shipmint Rate Engine",
		zap.Int("port", cfg.Port),
		zap.String("version", cfg.Version),
		zap.Int("sources", registry.Count()),
	)

	// Start HTTP server
	srv := server.New(server.Config{
		Port:          cfg.Port,
		SourceTimeout: cfg.SourceTimeout,
	}, registry, initZoneResolver(), plans, logger)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
