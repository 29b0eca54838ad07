package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cart"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/mail"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/pricing"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/whatsapp"
)

// Checkout field limits, in runes
const (
	maxNameLen    = 100
	maxEmailLen   = 255
	maxPhoneLen   = 30
	maxAddressLen = 500
	maxNoteLen    = 1000
)

const notifyTimeout = 15 * time.Second

// OrderService handles checkout and order administration
type OrderService struct {
	orders       repository.OrderRepository
	products     repository.ProductRepository
	carts        *cart.Store
	settings     *SettingsService
	mailer       mail.Mailer
	defaultPhone string
	logger       *slog.Logger
}

// NewOrderService creates a new order service. mailer may be nil, which disables order e-mails.
func NewOrderService(
	orders repository.OrderRepository,
	products repository.ProductRepository,
	carts *cart.Store,
	settings *SettingsService,
	mailer mail.Mailer,
	defaultPhone string,
	logger *slog.Logger,
) *OrderService {
	return &OrderService{
		orders:       orders,
		products:     products,
		carts:        carts,
		settings:     settings,
		mailer:       mailer,
		defaultPhone: defaultPhone,
		logger:       logger,
	}
}

// PlaceOrder validates a checkout, snapshots current prices and stores the order
func (s *OrderService) PlaceOrder(ctx context.Context, req models.OrderRequest) (*models.OrderConfirmation, error) {
	order, err := customerFields(req)
	if err != nil {
		return nil, err
	}

	lines, err := s.orderLines(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}

	// Fetch each product once even when it appears on several lines
	productMap := make(map[string]models.Product)
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		if _, exists := productMap[line.ProductID]; exists {
			continue
		}
		product, err := s.products.GetByID(ctx, line.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidProduct
		}
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", line.ProductID, err)
		}
		productMap[line.ProductID] = *product
	}

	if err := checkStock(lines, productMap); err != nil {
		return nil, err
	}

	discount := s.settings.GlobalDiscount(ctx)
	total := 0.0
	for _, line := range lines {
		product := productMap[line.ProductID]
		unit := pricing.Effective(product, discount).DisplayPrice
		productID := product.ID
		order.Items = append(order.Items, models.OrderItem{
			ProductID:     &productID,
			ProductName:   product.Name,
			ProductImage:  product.ImageURL,
			SelectedSize:  optionalString(line.Size),
			SelectedColor: optionalString(line.Color),
			Quantity:      line.Quantity,
			UnitPrice:     unit,
		})
		total += pricing.LineTotal(unit, line.Quantity)
	}
	order.ID = generateOrderID()
	order.Status = models.OrderStatusPending
	order.Total = pricing.Round2(total)

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order placed",
		"order_id", order.ID,
		"method", order.OrderMethod,
		"items", len(order.Items),
		"total", order.Total,
	)

	if req.CartID != "" && s.carts != nil {
		if err := s.carts.Delete(ctx, req.CartID); err != nil {
			s.logger.Warn("failed to clear cart after order", "cart_id", req.CartID, "error", err)
		}
	}

	confirmation := &models.OrderConfirmation{Order: order}
	switch order.OrderMethod {
	case models.OrderMethodWhatsApp:
		phone := s.settings.SupportPhone(ctx)
		if phone == "" {
			phone = s.defaultPhone
		}
		confirmation.WhatsAppURL = whatsapp.Link(phone, whatsapp.OrderMessage(order))
	case models.OrderMethodEmail:
		s.notify(ctx, order)
	}
	return confirmation, nil
}

// orderLines takes explicit items when given, otherwise the lines of the shopper's cart
func (s *OrderService) orderLines(ctx context.Context, req models.OrderRequest) ([]models.OrderLineRequest, error) {
	if len(req.Items) > 0 {
		lines := make([]models.OrderLineRequest, len(req.Items))
		for i, it := range req.Items {
			it.ProductID = strings.TrimSpace(it.ProductID)
			it.Size = strings.TrimSpace(it.Size)
			it.Color = strings.TrimSpace(it.Color)
			if it.ProductID == "" {
				return nil, ErrInvalidProduct
			}
			lines[i] = it
		}
		return lines, nil
	}
	if req.CartID == "" || s.carts == nil {
		return nil, nil
	}

	c, err := s.carts.Load(ctx, req.CartID)
	if err != nil {
		return nil, err
	}
	if c.Empty() {
		return nil, nil
	}
	lines := make([]models.OrderLineRequest, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, models.OrderLineRequest{
			ProductID: l.ProductID,
			Size:      l.Size,
			Color:     l.Color,
			Quantity:  l.Quantity,
		})
	}
	return lines, nil
}

// checkStock rejects orders for products marked out of stock or beyond tracked stock
func checkStock(lines []models.OrderLineRequest, products map[string]models.Product) error {
	wanted := make(map[string]int, len(products))
	for _, l := range lines {
		wanted[l.ProductID] += l.Quantity
	}
	for id, qty := range wanted {
		p := products[id]
		if !p.InStock {
			return fmt.Errorf("%s: %w", p.Name, cart.ErrInsufficientStock)
		}
		if p.StockQuantity != nil && qty > *p.StockQuantity {
			return fmt.Errorf("%s: %w", p.Name, cart.ErrInsufficientStock)
		}
	}
	return nil
}

func customerFields(req models.OrderRequest) (*models.Order, error) {
	name := cleanField(req.Name, maxNameLen)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	phone := cleanField(req.Phone, maxPhoneLen)
	if phone == "" {
		return nil, invalid("phone", "is required")
	}

	switch req.Method {
	case models.OrderMethodWhatsApp, models.OrderMethodEmail:
	default:
		return nil, invalid("method", "must be whatsapp or email")
	}

	payment := req.PaymentMethod
	switch payment {
	case "":
		payment = models.PaymentCashOnDelivery
	case models.PaymentCashOnDelivery, models.PaymentWishMoney:
	default:
		return nil, invalid("paymentMethod", "must be cod or wish")
	}

	return &models.Order{
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerEmail:   optionalString(cleanField(req.Email, maxEmailLen)),
		CustomerAddress: optionalString(cleanField(req.Address, maxAddressLen)),
		CustomerNote:    optionalString(cleanField(req.Note, maxNoteLen)),
		OrderMethod:     req.Method,
		PaymentMethod:   payment,
	}, nil
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// cleanField flattens a customer field to one trimmed line of at most n runes.
// The values end up in mail headers and chat messages.
func cleanField(s string, n int) string {
	return truncate(strings.TrimSpace(lineBreaks.Replace(s)), n)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// notify e-mails the store about a new order. Failures are only logged.
func (s *OrderService) notify(ctx context.Context, order *models.Order) {
	if s.mailer == nil {
		return
	}
	to := s.settings.SupportEmail(ctx)
	if to == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.mailer.Send(ctx, to, mail.OrderSubject(order), mail.OrderBody(order)); err != nil {
		s.logger.Error("failed to send order e-mail", "order_id", order.ID, "error", err)
		return
	}
	s.logger.Info("order e-mail sent", "order_id", order.ID, "to", to)
}

// ListOrders returns orders newest first. "" or "all" returns every status.
func (s *OrderService) ListOrders(ctx context.Context, status string) ([]models.Order, error) {
	st := models.OrderStatus(strings.ToLower(strings.TrimSpace(status)))
	if st == "all" {
		st = ""
	}
	if st != "" && !st.Valid() {
		return nil, invalid("status", "must be all, pending, approved or rejected")
	}
	return s.orders.List(ctx, st)
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// UpdateStatus moves an order between review states
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	if !status.Valid() {
		return nil, invalid("status", "must be pending, approved or rejected")
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(order.Status, status) {
		return nil, fmt.Errorf("%s to %s: %w", order.Status, status, ErrInvalidTransition)
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.logger.Info("order status changed", "order_id", id, "from", order.Status, "to", status)
	order.Status = status
	return order, nil
}

func canTransition(from, to models.OrderStatus) bool {
	switch from {
	case models.OrderStatusPending:
		return to == models.OrderStatusApproved || to == models.OrderStatusRejected
	case models.OrderStatusApproved, models.OrderStatusRejected:
		return to == models.OrderStatusPending
	}
	return false
}

func (s *OrderService) DeleteOrder(ctx context.Context, id string) error {
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("order deleted", "order_id", id)
	return nil
}

// PendingCount is the number of orders awaiting review
func (s *OrderService) PendingCount(ctx context.Context) (int, error) {
	orders, err := s.orders.List(ctx, models.OrderStatusPending)
	if err != nil {
		return 0, err
	}
	return len(orders), nil
}

// generateOrderID generates a unique order ID using UUID
func generateOrderID() string {
	return uuid.New().String()
}
