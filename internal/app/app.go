// Package app assembles the store, services and HTTP handler from configuration.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"planetary-server/internal/body"
	bodyHandlers "planetary-server/internal/body/handlers"
	"planetary-server/internal/middleware"
	"planetary-server/internal/seed"
	seedHandlers "planetary-server/internal/seed/handlers"
	"planetary-server/internal/server"
	serverHandlers "planetary-server/internal/server/handlers"
	"planetary-server/internal/settings"
	settingsHandlers "planetary-server/internal/settings/handlers"
	"planetary-server/internal/shared/config"
	"planetary-server/internal/shared/metrics"
	"planetary-server/internal/shared/validation"
	"planetary-server/internal/store"
	"planetary-server/internal/system"
	systemHandlers "planetary-server/internal/system/handlers"
)

type App struct {
	Config   *config.Config
	Backend  store.Backend
	Metrics  *metrics.Metrics
	Bodies   *body.Service
	Settings *settings.Service
	Systems  *system.Service
	Seeder   *seed.Seeder

	logger *slog.Logger
}

// New opens the configured backend and builds the services on top of it
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	backend, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Backend, err)
	}

	a, err := NewWithBackend(cfg, backend, logger)
	if err != nil {
		_ = backend.Close()
		return nil, err
	}
	return a, nil
}

// NewWithBackend builds the services over an already open backend. The App owns it afterwards.
func NewWithBackend(cfg *config.Config, backend store.Backend, logger *slog.Logger) (*App, error) {
	m, err := metrics.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	opts := []store.Option{
		store.WithClock(store.NewMonotonicClock()),
		store.WithObserver(m.Store),
		store.WithLogger(logger),
	}
	validator := validation.New()
	limit := cfg.Store.ListLimit

	bodies := body.NewService(store.NewCollection[body.PlanetaryBody](backend, body.CollectionName, opts...), validator, limit, logger)
	simSettings := settings.NewService(store.NewCollection[settings.SimulationSettings](backend, settings.CollectionName, opts...), validator, limit, logger)
	systems := system.NewService(store.NewCollection[system.PlanetarySystem](backend, system.CollectionName, opts...), bodies, simSettings, validator, limit, logger)

	logger.Info("Services initialized", "backend", backend.Name(), "list_limit", limit)

	return &App{
		Config:   cfg,
		Backend:  backend,
		Metrics:  m,
		Bodies:   bodies,
		Settings: simSettings,
		Systems:  systems,
		Seeder:   seed.NewSeeder(bodies, simSettings, systems, logger),
		logger:   logger,
	}, nil
}

// Handler returns the routed API wrapped in metrics, CORS and rate limiting.
// ctx bounds the rate limiter's background cleanup.
func (a *App) Handler(ctx context.Context) http.Handler {
	metricsPath := ""
	if a.Config.Metrics.Enabled {
		metricsPath = a.Config.Metrics.Path
	}

	routes := server.NewRoutes(
		serverHandlers.NewHealthHandler(a.Backend),
		bodyHandlers.NewBodyHandler(a.Bodies),
		settingsHandlers.NewSettingsHandler(a.Settings),
		systemHandlers.NewSystemHandler(a.Systems),
		seedHandlers.NewSeedHandler(a.Seeder),
		a.Metrics,
		metricsPath,
	)

	var handler http.Handler = routes.Setup()
	handler = middleware.NewRateLimiter(ctx, a.Config.RateLimit).Middleware(handler)
	handler = middleware.NewCORS(a.Config.Frontend).Middleware(handler)
	handler = middleware.RequestMetrics(a.Metrics.HTTP)(handler)
	return handler
}

func (a *App) Close() error {
	a.logger.Info("Closing store backend", "backend", a.Backend.Name())
	return a.Backend.Close()
}
