package handlers

import (
	"log/slog"
	"net/http"

	"planetary-server/internal/body"
	"planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/request"
	"planetary-server/internal/shared/response"
)

type BodyHandler struct {
	service *body.Service
}

func NewBodyHandler(service *body.Service) *BodyHandler {
	return &BodyHandler{service: service}
}

// HandleCollection serves /api/planetary/bodies
func (h *BodyHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetAll(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		response.Error(w, r, slog.With("handler", "bodies"), errors.MethodNotAllowed(r.Method))
	}
}

// HandleItem serves /api/planetary/bodies/{id}
func (h *BodyHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut, http.MethodPatch:
		h.Update(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		response.Error(w, r, slog.With("handler", "body"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *BodyHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_bodies")

	bodies, err := h.service.GetAll(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, bodies)
}

func (h *BodyHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_body")

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("body ID is required"))
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, found)
}

func (h *BodyHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_body")

	var req body.CreateRequest
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

func (h *BodyHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_body")

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("body ID is required"))
		return
	}

	var req body.UpdateRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	updated, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, updated)
}

func (h *BodyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_body")

	id := r.PathValue("id")
	if id == "" {
		response.Error(w, r, logger, errors.Validation("body ID is required"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "Planetary body deleted successfully")
}
