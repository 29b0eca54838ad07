package models

import "time"

// OrderMethod is the channel a shopper used to submit the order
type OrderMethod string

const (
	OrderMethodWhatsApp OrderMethod = "whatsapp"
	OrderMethodEmail    OrderMethod = "email"
)

// PaymentMethod is how the shopper intends to pay
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentWishMoney      PaymentMethod = "wish"
)

// OrderStatus is the admin review state of an order
type OrderStatus string

const (
	OrderStatusPending  OrderStatus = "pending"
	OrderStatusApproved OrderStatus = "approved"
	OrderStatusRejected OrderStatus = "rejected"
)

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusRejected:
		return true
	}
	return false
}

// Order represents a submitted order with its line items
type Order struct {
	ID              string        `json:"id"`
	CustomerName    string        `json:"customerName"`
	CustomerEmail   *string       `json:"customerEmail"`
	CustomerPhone   string        `json:"customerPhone"`
	CustomerAddress *string       `json:"customerAddress"`
	CustomerNote    *string       `json:"customerNote"`
	OrderMethod     OrderMethod   `json:"orderMethod"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	Status          OrderStatus   `json:"status"`
	Total           float64       `json:"total"`
	CreatedAt       time.Time     `json:"createdAt"`
	Items           []OrderItem   `json:"items"`
}

// OrderItem is a product snapshot taken when the order was placed
type OrderItem struct {
	ID            string  `json:"id"`
	OrderID       string  `json:"orderId"`
	ProductID     *string `json:"productId"`
	ProductName   string  `json:"productName"`
	ProductImage  *string `json:"productImage"`
	SelectedSize  *string `json:"selectedSize"`
	SelectedColor *string `json:"selectedColor"`
	Quantity      int     `json:"quantity"`
	UnitPrice     float64 `json:"unitPrice"`
}

// OrderLineRequest selects a product variant and quantity for checkout
type OrderLineRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity"`
}

// OrderRequest represents an incoming checkout submission
type OrderRequest struct {
	CartID        string             `json:"cartId,omitempty"`
	Items         []OrderLineRequest `json:"items,omitempty"`
	Name          string             `json:"name"`
	Email         string             `json:"email,omitempty"`
	Phone         string             `json:"phone"`
	Address       string             `json:"address,omitempty"`
	Note          string             `json:"note,omitempty"`
	Method        OrderMethod        `json:"method"`
	PaymentMethod PaymentMethod      `json:"paymentMethod,omitempty"`
}

// OrderConfirmation is returned to the shopper after a successful checkout
type OrderConfirmation struct {
	Order       *Order `json:"order"`
	WhatsAppURL string `json:"whatsappUrl,omitempty"`
}
