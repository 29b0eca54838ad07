package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// SettingsHandler serves store-wide settings
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

func NewSettingsHandler(service *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{service: service, logger: logger}
}

// PublicSettings handles GET /api/settings as a key/value object
func (h *SettingsHandler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.service.Values(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, values, h.logger)
}

// ListSettings handles GET /api/admin/settings
func (h *SettingsHandler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.service.List(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, settings, h.logger)
}

type settingRequest struct {
	Value string `json:"value"`
}

// UpdateSetting handles PUT /api/admin/settings/{key}
func (h *SettingsHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var req settingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	setting, err := h.service.Update(r.Context(), chi.URLParam(r, "key"), req.Value)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, setting, h.logger)
}
