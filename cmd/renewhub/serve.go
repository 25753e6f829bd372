package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/HerbHall/renewhub/internal/catalog"
	"github.com/HerbHall/renewhub/internal/config"
	"github.com/HerbHall/renewhub/internal/datasource"
	"github.com/HerbHall/renewhub/internal/forecast"
	"github.com/HerbHall/renewhub/internal/metrics"
	"github.com/HerbHall/renewhub/internal/module"
	"github.com/HerbHall/renewhub/internal/recommend"
	"github.com/HerbHall/renewhub/internal/server"
	"github.com/HerbHall/renewhub/internal/version"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the JSON API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()
			return runServe(cmd.Context(), logger)
		},
	}
}

func runServe(ctx context.Context, logger *zap.Logger) error {
	logger.Info("RenewHub server starting", zap.String("version", version.Info()))

	cfg, settings, err := loadSettings()
	if err != nil {
		return err
	}

	srv, err := buildServer(cfg, settings, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
		close(errCh)
	}()
	logger.Info("RenewHub server ready", zap.String("addr", settings.Server.Addr()))

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-sigCtx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("RenewHub server stopped")
	return nil
}

// buildServer wires the data source, the modules and the HTTP server.
func buildServer(cfg *config.Config, settings config.Settings, logger *zap.Logger) (*server.Server, error) {
	collector := metrics.New()

	src, err := datasource.New(settings, logger, collector)
	if err != nil {
		return nil, fmt.Errorf("failed to create data source: %w", err)
	}

	reg, err := buildRegistry(src, collector, logger)
	if err != nil {
		return nil, err
	}
	if err := reg.InitAll(cfg.Viper()); err != nil {
		return nil, fmt.Errorf("failed to initialize modules: %w", err)
	}

	return server.New(settings.Server.Addr(), reg, logger, server.Options{
		RateLimit: settings.Server.RateLimit,
		Burst:     settings.Server.Burst,
		Metrics:   collector,
		Health:    src,
	}), nil
}

// buildRegistry registers every API module over src.
func buildRegistry(src datasource.Source, collector *metrics.Collector, logger *zap.Logger) (*module.Registry, error) {
	reg := module.NewRegistry(logger)
	modules := []module.Module{
		catalog.NewModule(src, collector),
		forecast.NewModule(src),
		recommend.NewModule(src),
	}
	for _, m := range modules {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("failed to register module: %w", err)
		}
	}
	return reg, nil
}
