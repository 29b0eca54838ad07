package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cart"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// CartIDHeader carries the shopper's cart id in both directions
const CartIDHeader = "X-Cart-ID"

// CartHandler handles shopper cart requests
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

func NewCartHandler(service *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{service: service, logger: logger}
}

type cartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

func (req cartItemRequest) key() cart.Key {
	return cart.Key{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
}

// cartID returns the cart id sent by the client, or a fresh one, and echoes it back
func cartID(w http.ResponseWriter, r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(CartIDHeader))
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	w.Header().Set(CartIDHeader, id)
	return id
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Get(r.Context(), cartID(w, r))
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.logger)
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	summary, err := h.service.AddItem(r.Context(), cartID(w, r), req.key(), req.Quantity)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.logger)
}

// UpdateItem handles PATCH /api/cart/items
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	summary, err := h.service.UpdateItem(r.Context(), cartID(w, r), req.key(), req.Quantity)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.logger)
}

// RemoveItem handles DELETE /api/cart/items
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req cartItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	summary, err := h.service.RemoveItem(r.Context(), cartID(w, r), req.key())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, summary, h.logger)
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), cartID(w, r)); err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
