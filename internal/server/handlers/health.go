package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/response"
)

const pingTimeout = 2 * time.Second

// Pinger is the part of a store backend the health check needs
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
	Backend   string `json:"backend"`
}

type HealthHandler struct {
	store Pinger
}

func NewHealthHandler(store Pinger) *HealthHandler {
	return &HealthHandler{store: store}
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "health")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	status, dbStatus, code := "healthy", "connected", http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logger.Warn("Store ping failed", "backend", h.store.Name(), "error", err)
		status, dbStatus, code = "unhealthy", "disconnected", http.StatusServiceUnavailable
	}

	response.Success(w, code, HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  dbStatus,
		Backend:   h.store.Name(),
	})
}
