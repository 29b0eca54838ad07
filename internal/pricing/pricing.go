// Package pricing resolves the price a shopper actually pays for a product.
package pricing

import (
	"math"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// Pricing is the effective price of a product after discounts
type Pricing struct {
	DisplayPrice    float64  `json:"displayPrice"`
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountPercent *float64 `json:"discountPercent"`
}

// Discounted reports whether any discount applies
func (p Pricing) Discounted() bool {
	return p.DiscountPercent != nil
}

// Effective returns the pricing for product given the site-wide discount percentage.
// A product's own discount (original price above price) takes priority over the
// global one; the global discount only applies when it is positive.
func Effective(product models.Product, globalPercent float64) Pricing {
	if product.OriginalPrice != nil && *product.OriginalPrice > product.Price {
		original := *product.OriginalPrice
		percent := DiscountPercent(product.Price, original)
		return Pricing{
			DisplayPrice:    product.Price,
			OriginalPrice:   &original,
			DiscountPercent: &percent,
		}
	}

	if globalPercent > 0 {
		original := product.Price
		percent := globalPercent
		return Pricing{
			DisplayPrice:    Round2(original * (1 - globalPercent/100)),
			OriginalPrice:   &original,
			DiscountPercent: &percent,
		}
	}

	return Pricing{DisplayPrice: product.Price}
}

// DiscountPercent returns the whole-number percentage that takes original down to price
func DiscountPercent(price, original float64) float64 {
	if original <= 0 {
		return 0
	}
	return math.Round((original - price) / original * 100)
}

// OriginalFromDiscount returns the list price that a percent discount reduces to price.
// ok is false unless 0 < percent < 100.
func OriginalFromDiscount(price, percent float64) (float64, bool) {
	if percent <= 0 || percent >= 100 {
		return 0, false
	}
	return Round2(price / (1 - percent/100)), true
}

// LineTotal is unit price times quantity, rounded to cents
func LineTotal(unit float64, quantity int) float64 {
	return Round2(unit * float64(quantity))
}

// Round2 rounds to two decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
