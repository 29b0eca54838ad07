package mail

import (
	"fmt"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/whatsapp"
)

// OrderSubject is the subject line of the new-order notification
func OrderSubject(order *models.Order) string {
	return fmt.Sprintf("New order from %s ($%.2f)", order.CustomerName, order.Total)
}

// OrderBody renders the new-order notification. It reuses the shopper's
// WhatsApp confirmation text so both channels read the same.
func OrderBody(order *models.Order) string {
	return fmt.Sprintf("%s\n\nPayment: %s\nMethod: %s\n",
		whatsapp.OrderMessage(order), order.PaymentMethod, order.OrderMethod)
}
