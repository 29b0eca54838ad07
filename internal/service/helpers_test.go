package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/cart"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/pkg/logger"
)

const testPhone = "96171786787"

type fixture struct {
	repos    *repository.Repositories
	carts    *cart.Store
	settings *SettingsService
	products *ProductService
	cart     *CartService
	orders   *OrderService
	mailer   *fakeMailer
}

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{to, subject, body})
	return nil
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func boolPtr(v bool) *bool        { return &v }

// seedProducts: "dress" 50 with 3 in stock, "jacket" 80 marked down from 100
// with untracked stock, "sold-out" not in stock.
func seedProducts() []models.Product {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{
			ID: "dress", Name: "Linen Dress", Price: 50, Category: models.CategoryWomen,
			Subcategory: strPtr("Dresses"), ImageURL: strPtr("/uploads/dress.jpg"),
			Sizes: []string{"S", "M"}, Colors: []string{"Beige"},
			InStock: true, StockQuantity: intPtr(3), CreatedAt: base,
		},
		{
			ID: "jacket", Name: "Denim Jacket", Price: 80, OriginalPrice: floatPtr(100),
			Category: models.CategoryMen, InStock: true, CreatedAt: base.Add(time.Hour),
		},
		{
			ID: "sold-out", Name: "Wool Scarf", Price: 20, Category: models.CategoryKids,
			InStock: false, StockQuantity: intPtr(0), CreatedAt: base.Add(2 * time.Hour),
		},
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logger.Discard()

	repos := repository.NewInMemory()
	repos.Products = repository.NewInMemoryProductRepository(seedProducts()...)

	store := cache.NewMemoryStore()
	carts := cart.NewStore(store, time.Hour)
	settings := NewSettingsService(repos.Settings, store, time.Minute, log)
	mailer := &fakeMailer{}

	return &fixture{
		repos:    repos,
		carts:    carts,
		settings: settings,
		products: NewProductService(repos.Products, settings, testPhone, log),
		cart:     NewCartService(carts, repos.Products, settings, log),
		orders:   NewOrderService(repos.Orders, repos.Products, carts, settings, mailer, testPhone, log),
		mailer:   mailer,
	}
}

func (f *fixture) setDiscount(t *testing.T, v string) {
	t.Helper()
	if _, err := f.settings.Update(context.Background(), models.SettingDiscountPercentage, v); err != nil {
		t.Fatalf("set discount: %v", err)
	}
}
