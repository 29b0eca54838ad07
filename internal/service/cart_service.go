package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cart"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/pricing"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
)

// CartLineView is a cart line joined with its product and current price
type CartLineView struct {
	cart.Key
	Quantity        int      `json:"quantity"`
	Name            string   `json:"name"`
	ImageURL        *string  `json:"imageUrl"`
	UnitPrice       float64  `json:"unitPrice"`
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountPercent *float64 `json:"discountPercent"`
	LineTotal       float64  `json:"lineTotal"`
	StockQuantity   *int     `json:"stockQuantity"`
}

// CartSummary is what the storefront renders for a cart
type CartSummary struct {
	ID                    string         `json:"id"`
	Lines                 []CartLineView `json:"lines"`
	TotalItems            int            `json:"totalItems"`
	Subtotal              float64        `json:"subtotal"`
	FreeShippingThreshold float64        `json:"freeShippingThreshold"`
	FreeShipping          bool           `json:"freeShipping"`
	AmountToFreeShipping  float64        `json:"amountToFreeShipping"`
}

// CartService manages shopper carts against live product stock
type CartService struct {
	store    *cart.Store
	products repository.ProductRepository
	settings *SettingsService
	logger   *slog.Logger
}

func NewCartService(store *cart.Store, products repository.ProductRepository, settings *SettingsService, logger *slog.Logger) *CartService {
	return &CartService{store: store, products: products, settings: settings, logger: logger}
}

// Get returns the priced summary of the cart. Lines whose product no longer
// exists are dropped from the stored cart.
func (s *CartService) Get(ctx context.Context, cartID string) (*CartSummary, error) {
	c, err := s.store.Load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, c)
}

// AddItem adds qty of a product variant, capped at the product's stock
func (s *CartService) AddItem(ctx context.Context, cartID string, key cart.Key, qty int) (*CartSummary, error) {
	key = normalizeKey(key)
	p, err := s.product(ctx, key.ProductID)
	if err != nil {
		return nil, err
	}
	if err := checkVariant(p, key); err != nil {
		return nil, err
	}
	if !p.InStock {
		return nil, cart.ErrInsufficientStock
	}

	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		_, err := c.Add(key, qty, p.StockQuantity)
		return err
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, c)
}

// UpdateItem sets the quantity of a line; zero or less removes it
func (s *CartService) UpdateItem(ctx context.Context, cartID string, key cart.Key, qty int) (*CartSummary, error) {
	key = normalizeKey(key)

	var stock *int
	if qty > 0 {
		p, err := s.product(ctx, key.ProductID)
		if err != nil {
			return nil, err
		}
		stock = p.StockQuantity
	}
	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		return c.UpdateQuantity(key, qty, stock)
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, c)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID string, key cart.Key) (*CartSummary, error) {
	c, err := s.store.Update(ctx, cartID, func(c *cart.Cart) error {
		c.Remove(normalizeKey(key))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, c)
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}

func (s *CartService) product(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, invalid("productId", "is required")
	}
	p, err := s.products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidProduct
	}
	return p, err
}

func (s *CartService) summarize(ctx context.Context, c *cart.Cart) (*CartSummary, error) {
	discount := s.settings.GlobalDiscount(ctx)
	summary := &CartSummary{ID: c.ID, Lines: make([]CartLineView, 0, len(c.Lines))}

	var stale []cart.Key
	for _, l := range c.Lines {
		p, err := s.products.GetByID(ctx, l.ProductID)
		if errors.Is(err, repository.ErrNotFound) {
			stale = append(stale, l.Key)
			continue
		}
		if err != nil {
			return nil, err
		}

		price := pricing.Effective(*p, discount)
		line := CartLineView{
			Key:           l.Key,
			Quantity:      l.Quantity,
			Name:          p.Name,
			ImageURL:      p.ImageURL,
			UnitPrice:     price.DisplayPrice,
			LineTotal:     pricing.LineTotal(price.DisplayPrice, l.Quantity),
			StockQuantity: p.StockQuantity,
		}
		if price.Discounted() {
			line.OriginalPrice = price.OriginalPrice
			line.DiscountPercent = price.DiscountPercent
		}
		summary.Lines = append(summary.Lines, line)
		summary.Subtotal += line.LineTotal
	}
	summary.Subtotal = pricing.Round2(summary.Subtotal)

	if len(stale) > 0 {
		for _, k := range stale {
			c.Remove(k)
		}
		_, err := s.store.Update(ctx, c.ID, func(stored *cart.Cart) error {
			for _, k := range stale {
				stored.Remove(k)
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("failed to drop stale cart lines", "cart_id", c.ID, "error", err)
		}
	}
	summary.TotalItems = c.TotalItems()

	summary.FreeShippingThreshold = s.settings.FreeShippingThreshold(ctx)
	if summary.FreeShippingThreshold > 0 && summary.Subtotal > 0 {
		if summary.Subtotal >= summary.FreeShippingThreshold {
			summary.FreeShipping = true
		} else {
			summary.AmountToFreeShipping = pricing.Round2(summary.FreeShippingThreshold - summary.Subtotal)
		}
	}
	return summary, nil
}

func normalizeKey(k cart.Key) cart.Key {
	return cart.Key{
		ProductID: strings.TrimSpace(k.ProductID),
		Size:      strings.TrimSpace(k.Size),
		Color:     strings.TrimSpace(k.Color),
	}
}

// checkVariant rejects a size or color the product is not offered in
func checkVariant(p *models.Product, key cart.Key) error {
	if key.Size != "" && len(p.Sizes) > 0 && !slices.Contains(p.Sizes, key.Size) {
		return invalid("size", "%q is not available for this product", key.Size)
	}
	if key.Color != "" && len(p.Colors) > 0 && !slices.Contains(p.Colors, key.Color) {
		return invalid("color", "%q is not available for this product", key.Color)
	}
	return nil
}
