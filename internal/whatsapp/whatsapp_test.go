package whatsapp

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

func str(s string) *string { return &s }

func TestDigits(t *testing.T) {
	assert.Equal(t, "96171786787", Digits("+961 71-786 787"))
	assert.Equal(t, "", Digits("call us"))
}

func TestLink(t *testing.T) {
	link := Link("+961 71 786 787", "Hi there & welcome\nline2")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "api.whatsapp.com", u.Host)
	assert.Equal(t, "/send", u.Path)
	assert.Equal(t, "96171786787", u.Query().Get("phone"))
	assert.Equal(t, "Hi there & welcome\nline2", u.Query().Get("text"))
	assert.NotContains(t, link, "+")
	assert.Contains(t, link, "Hi%20there")
}

func TestOrderMessage_Full(t *testing.T) {
	order := &models.Order{
		ID:              "ord-1",
		CustomerName:    "Maya",
		CustomerPhone:   "+961 70 000 000",
		CustomerEmail:   str("maya@example.com"),
		CustomerAddress: str("Hamra, Beirut"),
		CustomerNote:    str("Ring twice"),
		Total:           124.5,
		Items: []models.OrderItem{
			{ProductName: "Linen Dress", SelectedSize: str("M"), SelectedColor: str("Sand"), Quantity: 2, UnitPrice: 45},
			{ProductName: "Scarf", Quantity: 1, UnitPrice: 34.5},
		},
	}

	want := "Hello, I'd like to place an order:\n\n" +
		"Name: Maya\nPhone: +961 70 000 000\nEmail: maya@example.com\nAddress: Hamra, Beirut\nNote: Ring twice\n\n" +
		"Items:\n" +
		"Linen Dress | Size: M | Color: Sand | $45.00 x2\n" +
		"Scarf | $34.50\n\n" +
		"Total: $124.50\n\n" +
		"Order ID: ord-1"

	assert.Equal(t, want, OrderMessage(order))
}

func TestOrderMessage_OptionalFieldsOmitted(t *testing.T) {
	order := &models.Order{
		ID:            "ord-2",
		CustomerName:  "Ali",
		CustomerPhone: "71123456",
		Total:         10,
		Items:         []models.OrderItem{{ProductName: "Socks", SelectedColor: str("White"), Quantity: 1, UnitPrice: 10}},
	}

	want := "Hello, I'd like to place an order:\n\n" +
		"Name: Ali\nPhone: 71123456\n\n" +
		"Items:\n" +
		"Socks | Color: White | $10.00\n\n" +
		"Total: $10.00\n\n" +
		"Order ID: ord-2"

	assert.Equal(t, want, OrderMessage(order))
}

func TestProductInquiry(t *testing.T) {
	p := models.Product{Name: "Denim Jacket", Category: models.CategoryMen, Subcategory: str("Outerwear")}
	assert.Equal(t, "Hello, I want to order: Denim Jacket | men / Outerwear | Price: $59.9", ProductInquiry(p, 59.90))

	p.Subcategory = nil
	assert.Equal(t, "Hello, I want to order: Denim Jacket | men | Price: $60", ProductInquiry(p, 60))
}
