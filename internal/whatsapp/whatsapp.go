// Package whatsapp builds prefilled click-to-chat links for orders and product inquiries.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

const sendURL = "https://api.whatsapp.com/send"

// Link returns a click-to-chat URL for phone prefilled with text.
// Everything but digits is stripped from phone.
func Link(phone, text string) string {
	v := url.Values{}
	v.Set("phone", Digits(phone))
	v.Set("text", text)
	// url.Values encodes spaces as '+'; WhatsApp expects %20
	return sendURL + "?" + strings.ReplaceAll(v.Encode(), "+", "%20")
}

// Digits keeps only 0-9 from s
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// OrderMessage renders the message a shopper sends to confirm a placed order
func OrderMessage(order *models.Order) string {
	var b strings.Builder
	b.WriteString("Hello, I'd like to place an order:\n\n")
	fmt.Fprintf(&b, "Name: %s\nPhone: %s", order.CustomerName, order.CustomerPhone)
	if order.CustomerEmail != nil {
		fmt.Fprintf(&b, "\nEmail: %s", *order.CustomerEmail)
	}
	if order.CustomerAddress != nil {
		fmt.Fprintf(&b, "\nAddress: %s", *order.CustomerAddress)
	}
	if order.CustomerNote != nil {
		fmt.Fprintf(&b, "\nNote: %s", *order.CustomerNote)
	}

	b.WriteString("\n\nItems:\n")
	for i, item := range order.Items {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(itemLine(item))
	}

	fmt.Fprintf(&b, "\n\nTotal: $%.2f\n\nOrder ID: %s", order.Total, order.ID)
	return b.String()
}

func itemLine(item models.OrderItem) string {
	var b strings.Builder
	b.WriteString(item.ProductName)
	if item.SelectedSize != nil {
		fmt.Fprintf(&b, " | Size: %s", *item.SelectedSize)
	}
	if item.SelectedColor != nil {
		fmt.Fprintf(&b, " | Color: %s", *item.SelectedColor)
	}
	fmt.Fprintf(&b, " | $%.2f", item.UnitPrice)
	if item.Quantity > 1 {
		fmt.Fprintf(&b, " x%d", item.Quantity)
	}
	return b.String()
}

// ProductInquiry renders the quick "I want to order" message for a single product
func ProductInquiry(product models.Product, price float64) string {
	category := string(product.Category)
	if product.Subcategory != nil && *product.Subcategory != "" {
		category += " / " + *product.Subcategory
	}
	return fmt.Sprintf("Hello, I want to order: %s | %s | Price: $%s",
		product.Name, category, formatPrice(price))
}

// formatPrice drops trailing zeros the way a plain number renders: 25, 24.5, 19.99
func formatPrice(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
