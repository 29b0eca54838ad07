package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := decodeJSON(w, r, &req); err != nil {
		h.log.Warn("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	// The cart header stands in for cartId when the body names no items
	if req.CartID == "" && len(req.Items) == 0 {
		if id := strings.TrimSpace(r.Header.Get(CartIDHeader)); id != "" {
			if _, err := uuid.Parse(id); err == nil {
				req.CartID = id
			}
		}
	}

	confirmation, err := h.orderService.PlaceOrder(r.Context(), req)
	if err != nil {
		h.log.Info("order rejected", "error", err)
		WriteServiceError(w, r, err, h.log)
		return
	}

	WriteJSON(w, http.StatusCreated, confirmation, h.log)
}

// ListOrders handles GET /api/admin/orders?status=
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		WriteServiceError(w, r, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, orders, h.log)
}

// GetOrder handles GET /api/admin/orders/{orderId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orderService.GetOrder(r.Context(), chi.URLParam(r, "orderId"))
	if err != nil {
		WriteServiceError(w, r, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// UpdateStatus handles PATCH /api/admin/orders/{orderId}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), chi.URLParam(r, "orderId"), req.Status)
	if err != nil {
		WriteServiceError(w, r, err, h.log)
		return
	}
	WriteJSON(w, http.StatusOK, order, h.log)
}

// DeleteOrder handles DELETE /api/admin/orders/{orderId}
func (h *OrderHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.orderService.DeleteOrder(r.Context(), chi.URLParam(r, "orderId")); err != nil {
		WriteServiceError(w, r, err, h.log)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
