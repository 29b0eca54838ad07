package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/auth"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// AuthHandler handles admin login, sign-up and profile requests
type AuthHandler struct {
	auth   *auth.Service
	orders *service.OrderService
	logger *slog.Logger
}

func NewAuthHandler(auth *auth.Service, orders *service.OrderService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, orders: orders, logger: logger}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/admin/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	session, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, session, h.logger)
}

// SignUp handles POST /api/admin/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}
	admin, err := h.auth.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusCreated, admin, h.logger)
}

type meResponse struct {
	Email         string `json:"email"`
	ID            string `json:"id"`
	PendingOrders int    `json:"pendingOrders"`
}

// Me handles GET /api/admin/me with the pending order badge count
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	admin, ok := auth.AdminFrom(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Unauthorized", h.logger)
		return
	}
	pending, err := h.orders.PendingCount(r.Context())
	if err != nil {
		WriteServiceError(w, r, err, h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, meResponse{Email: admin.Email, ID: admin.ID, PendingOrders: pending}, h.logger)
}
