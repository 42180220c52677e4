package server

import (
	"log/slog"
	"net/http"

	bodyHandlers "planetary-server/internal/body/handlers"
	seedHandlers "planetary-server/internal/seed/handlers"
	serverHandlers "planetary-server/internal/server/handlers"
	settingsHandlers "planetary-server/internal/settings/handlers"
	"planetary-server/internal/shared/metrics"
	systemHandlers "planetary-server/internal/system/handlers"
)

const apiPrefix = "/api/planetary"

type Routes struct {
	health   *serverHandlers.HealthHandler
	bodies   *bodyHandlers.BodyHandler
	settings *settingsHandlers.SettingsHandler
	systems  *systemHandlers.SystemHandler
	seed     *seedHandlers.SeedHandler
	metrics  *metrics.Metrics
	// metricsPath is empty when metrics are disabled
	metricsPath string
}

func NewRoutes(
	health *serverHandlers.HealthHandler,
	bodies *bodyHandlers.BodyHandler,
	settings *settingsHandlers.SettingsHandler,
	systems *systemHandlers.SystemHandler,
	seed *seedHandlers.SeedHandler,
	m *metrics.Metrics,
	metricsPath string,
) *Routes {
	return &Routes{
		health:      health,
		bodies:      bodies,
		settings:    settings,
		systems:     systems,
		seed:        seed,
		metrics:     m,
		metricsPath: metricsPath,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := slog.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	mux.HandleFunc("/api/{$}", serverHandlers.Root)
	mux.Handle("/api/health", r.health)

	mux.HandleFunc(apiPrefix+"/bodies", r.bodies.HandleCollection)
	mux.HandleFunc(apiPrefix+"/bodies/{id}", r.bodies.HandleItem)
	mux.HandleFunc(apiPrefix+"/settings", r.settings.HandleCollection)
	mux.HandleFunc(apiPrefix+"/settings/{id}", r.settings.HandleItem)
	mux.HandleFunc(apiPrefix+"/systems", r.systems.HandleCollection)
	mux.HandleFunc(apiPrefix+"/systems/{id}", r.systems.HandleItem)
	mux.HandleFunc(apiPrefix+"/initialize", r.seed.Initialize)
	mux.HandleFunc(apiPrefix+"/integrity", r.systems.Integrity)

	if r.metrics != nil && r.metricsPath != "" {
		mux.Handle(r.metricsPath, r.metrics.Handler())
	}

	logger.Info("Routes configured successfully",
		"service_endpoints", []string{"/api/", "/api/health"},
		"resource_endpoints", []string{apiPrefix + "/bodies", apiPrefix + "/settings", apiPrefix + "/systems"},
		"action_endpoints", []string{apiPrefix + "/initialize", apiPrefix + "/integrity"},
		"metrics_path", r.metricsPath,
	)

	return mux
}
