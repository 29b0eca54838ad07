package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// SlideHandler serves the homepage hero slider
type SlideHandler struct {
	service *service.SlideService
	logger  *slog.Logger
}

func NewSlideHandler(service *service.SlideService, logger *slog.Logger) *SlideHandler {
	return &SlideHandler{service: service, logger: logger}
}

// ListSlides handles GET /api/slides and GET /api/admin/slides
func (h *SlideHandler) ListSlides(w http.ResponseWriter, r *http.Request) {
	slides, err := h.service.ListSlides(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, slides, h.logger)
}

// CreateSlide handles POST /api/admin/slides
func (h *SlideHandler) CreateSlide(w http.ResponseWriter, r *http.Request) {
	var in models.HeroSlideInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	slide, err := h.service.CreateSlide(r.Context(), in)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, slide, h.logger)
}

// UpdateSlide handles PUT /api/admin/slides/{slideId}
func (h *SlideHandler) UpdateSlide(w http.ResponseWriter, r *http.Request) {
	var in models.HeroSlideInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	slide, err := h.service.UpdateSlide(r.Context(), chi.URLParam(r, "slideId"), in)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, slide, h.logger)
}

// DeleteSlide handles DELETE /api/admin/slides/{slideId}
func (h *SlideHandler) DeleteSlide(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSlide(r.Context(), chi.URLParam(r, "slideId")); err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

// ReorderSlides handles PUT /api/admin/slides/order
func (h *SlideHandler) ReorderSlides(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	slides, err := h.service.ReorderSlides(r.Context(), req.IDs)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, slides, h.logger)
}
