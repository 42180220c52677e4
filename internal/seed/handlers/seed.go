package handlers

import (
	"log/slog"
	"net/http"

	"planetary-server/internal/seed"
	"planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/response"
)

type SeedHandler struct {
	seeder *seed.Seeder
}

func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Initialize serves POST /api/planetary/initialize
func (h *SeedHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "initialize_defaults")

	if r.Method != http.MethodPost {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	outcome, err := h.seeder.InitializeDefaults(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, outcome.Message)
}
