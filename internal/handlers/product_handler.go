package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service  *service.ProductService
	settings *service.SettingsService
	logger   *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, settings *service.SettingsService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		settings: settings,
		logger:   logger,
	}
}

func productFilter(r *http.Request) models.ProductFilter {
	q := r.URL.Query()
	return models.ProductFilter{
		Category:    models.Category(strings.ToLower(strings.TrimSpace(q.Get("category")))),
		Subcategory: strings.TrimSpace(q.Get("subcategory")),
		Search:      strings.TrimSpace(q.Get("q")),
	}
}

// ListProducts handles GET /api/products?category=&subcategory=&q=
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context(), productFilter(r))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/products/{productId}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productId")
	if productID == "" {
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// WhatsAppLink handles GET /api/products/{productId}/whatsapp
func (h *ProductHandler) WhatsAppLink(w http.ResponseWriter, r *http.Request) {
	link, err := h.service.InquiryLink(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"url": link}, h.logger)
}

// GlobalDiscount handles GET /api/pricing/discount
func (h *ProductHandler) GlobalDiscount(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]float64{
		"discountPercentage": h.settings.GlobalDiscount(r.Context()),
	}, h.logger)
}

// AdminListProducts handles GET /api/admin/products, grouped by category
func (h *ProductHandler) AdminListProducts(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.GroupedProducts(r.Context(), productFilter(r))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, groups, h.logger)
}

// CreateProduct handles POST /api/admin/products
func (h *ProductHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.CreateProduct(r.Context(), in)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, product, h.logger)
}

// UpdateProduct handles PUT /api/admin/products/{productId}
func (h *ProductHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductInput
	if err := decodeJSON(w, r, &in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	product, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "productId"), in)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, product, h.logger)
}

// DeleteProduct handles DELETE /api/admin/products/{productId}
func (h *ProductHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "productId")); err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
