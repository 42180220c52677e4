package handlers

import (
	"log/slog"
	"net/http"

	"planetary-server/internal/settings"
	"planetary-server/internal/shared/errors"
	"planetary-server/internal/shared/request"
	"planetary-server/internal/shared/response"
)

type SettingsHandler struct {
	service *settings.Service
}

func NewSettingsHandler(service *settings.Service) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) HandleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.GetAll(w, r)
	case http.MethodPost:
		h.Create(w, r)
	default:
		response.Error(w, r, slog.With("handler", "settings"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *SettingsHandler) HandleItem(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.Get(w, r)
	case http.MethodPut, http.MethodPatch:
		h.Update(w, r)
	case http.MethodDelete:
		h.Delete(w, r)
	default:
		response.Error(w, r, slog.With("handler", "settings_item"), errors.MethodNotAllowed(r.Method))
	}
}

func (h *SettingsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_settings_list")

	all, err := h.service.GetAll(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, all)
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "get_settings")

	found, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, found)
}

func (h *SettingsHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "create_settings")

	var req settings.CreateRequest
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

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "update_settings")

	var req settings.UpdateRequest
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

func (h *SettingsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := slog.With("handler", "delete_settings")

	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Message(w, http.StatusOK, "Settings deleted successfully")
}
