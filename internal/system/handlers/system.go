package handlers

import (
	"log/slog"
	"net/http"

	"planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/request"
	"planetary-server/internal/shared/response"
	"planetary-server/internal/system"
)

type SystemHandler struct {
	service *system.Service
}

func NewSystemHandler(service *system.Service) *SystemHandler {
	return &SystemHandler{service: service}
}

func (h *SystemHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetAll(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		response.Error(w, r, slog.With("handler", "systems"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *SystemHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut, http.MethodPatch:
		h.Update(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		response.Error(w, r, slog.With("handler", "system"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *SystemHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_systems")

	systems, err := h.service.GetAll(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, systems)
}

func (h *SystemHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_system")

	found, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, found)
}

func (h *SystemHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_system")

	var req system.CreateRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	created, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, created)
}

func (h *SystemHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_system")

	var req system.UpdateRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), r.PathValue("id"), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, updated)
}

func (h *SystemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_system")

	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "Planetary system deleted successfully")
}

// Integrity serves GET /api/planetary/integrity
func (h *SystemHandler) Integrity(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "check_integrity")

	if r.Method != http.MethodGet {
		response.Error(w, r, logger, errors.MethodNotAllowed(r.Method))
		return
	}

	report, err := h.service.CheckIntegrity(r.Context())
	if err != nil {
		response.Error(w, r, logger, errors.WrapInternal("failed to check integrity", err))
		return
	}

	response.Success(w, http.StatusOK, report)
}
