package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// OptionHandler serves the subcategory, size and color lists.
// Each method returns the handler for one list.
type OptionHandler struct {
	service *service.OptionService
	logger  *slog.Logger
}

func NewOptionHandler(service *service.OptionService, logger *slog.Logger) *OptionHandler {
	return &OptionHandler{service: service, logger: logger}
}

func (h *OptionHandler) List(kind models.OptionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts, err := h.service.List(r.Context(), kind)
		if err != nil {
			WriteServiceError(w, r, err, h.logger)
			return
		}
		WriteJSON(w, http.StatusOK, opts, h.logger)
	}
}

type optionRequest struct {
	Name string `json:"name"`
}

func (h *OptionHandler) Create(kind models.OptionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req optionRequest
		if err := decodeJSON(w, r, &req); err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
			return
		}
		opt, err := h.service.Create(r.Context(), kind, req.Name)
		if err != nil {
			WriteServiceError(w, r, err, h.logger)
			return
		}
		WriteJSON(w, http.StatusCreated, opt, h.logger)
	}
}

func (h *OptionHandler) Delete(kind models.OptionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.Delete(r.Context(), kind, chi.URLParam(r, "id")); err != nil {
			WriteServiceError(w, r, err, h.logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
