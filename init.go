package main

import (
	"context"

	"github.com/shipmint/rateengine/internal/config"
	"github.com/shipmint/rateengine/internal/planstore"
	"github.com/shipmint/rateengine/internal/telemetry"
	"github.com/shipmint/rateengine/internal/zoneresolver"
	"github.com/shipmint/rateengine/pkg/courier"
	"github.com/shipmint/rateengine/pkg/courier/delhivery"
	"github.com/shipmint/rateengine/pkg/courier/xpressbees"
	"github.com/shipmint/rateengine/pkg/tokencache"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func loadConfig() (*config.Config, error) {
	return config.Load()
}

func initLogger(level string) (*otelzap.Logger, error) {
	return telemetry.NewLogger(level)
}

func initTracer(ctx context.Context, cfg *config.Config) (func(context.Context) error, error) {
	if !cfg.OTELEnabled {
		return func(context.Context) error { return nil }, nil
	}

	_, shutdown, err := telemetry.InitTracer(ctx, cfg.OTELEndpoint, cfg.ServiceName, cfg.Version)
	return shutdown, err
}

func initCourierRegistry(cfg *config.Config, logger *otelzap.Logger) *courier.Registry {
	registry := courier.NewRegistry()

	var tracer trace.Tracer
	if cfg.OTELEnabled {
		tracer = otel.GetTracerProvider().Tracer(cfg.ServiceName)
	}

	// Register enabled sources
	if cfg.DelhiveryEnabled {
		dlv := delhivery.New(delhivery.Config{
			APIToken: cfg.DelhiveryAPIToken,
			BaseURL:  cfg.DelhiveryBaseURL,
			UseMock:  cfg.DelhiveryUseMock,
		}, logger, tracer)
		registry.Register(dlv)
	}

	if cfg.XpressbeesEnabled {
		tokens := tokencache.NewProvider(tokencache.NewMemory(), logger, cfg.TokenTTL)
		xb := xpressbees.New(xpressbees.Config{
			Email:     cfg.XpressbeesEmail,
			Password:  cfg.XpressbeesPassword,
			AccountID: cfg.XpressbeesAccountID,
			BaseURL:   cfg.XpressbeesBaseURL,
			UseMock:   cfg.XpressbeesUseMock,
		}, tokens, logger, tracer)
		registry.Register(xb)
	}

	return registry
}

func initZoneResolver() zoneresolver.Resolver {
	return zoneresolver.NewStatic()
}

func initPlanStore(ctx context.Context, cfg *config.Config, logger *otelzap.Logger) (planstore.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Info("DATABASE_URL not set, using in-memory plan store")
		return planstore.NewMemory(), func() {}, nil
	}

	pool, err := planstore.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Connected plan store", zap.String("backend", "postgres"))
	return planstore.NewPostgres(pool), pool.Close, nil
}
