package handlers

import (
	"log/slog"
	"net/http"

	"planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/response"
)

const (
	serviceMessage = "Planetary Design Environment API is running"
	serviceVersion = "1.0.0"
)

type RootResponse struct {
	Message string `json:"message"`
	Version string `json:"version"`
}

// Root serves the /api/ banner
func Root(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, r, slog.With("handler", "root"), errors.MethodNotAllowed(r.Method))
		return
	}

	response.Success(w, http.StatusOK, RootResponse{Message: serviceMessage, Version: serviceVersion})
}
