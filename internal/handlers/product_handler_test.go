package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

func TestListProducts(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		query     string
		wantCount int
		wantCode  int
	}{
		{"all products", "", 2, http.StatusOK},
		{"by category", "?category=women", 1, http.StatusOK},
		{"category is case-insensitive", "?category=MEN", 1, http.StatusOK},
		{"search by name", "?q=oxford", 1, http.StatusOK},
		{"no match", "?q=boots", 0, http.StatusOK},
		{"unknown category", "?category=pets", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/products"+tt.query, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, w.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}

			var products []service.ProductView
			decode(t, w, &products)
			if len(products) != tt.wantCount {
				t.Errorf("expected %d products, got %d", tt.wantCount, len(products))
			}
		})
	}
}

func TestGetProduct_Success(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/products/dress", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var product service.ProductView
	decode(t, w, &product)
	if product.ID != "dress" {
		t.Errorf("expected product ID dress, got %s", product.ID)
	}
	if product.Pricing.DisplayPrice != 50 {
		t.Errorf("display price = %v, want 50", product.Pricing.DisplayPrice)
	}
}

func TestGetProduct_NotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/products/999", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
	if msg := errorMessage(t, w); msg == "" {
		t.Error("expected error message")
	}
}

func TestProductWhatsAppLink(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/products/shirt/whatsapp", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)

	u, err := url.Parse(body["url"])
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("text"); got != "Hello, I want to order: Oxford Shirt | men | Price: $35" {
		t.Errorf("text = %q", got)
	}
}

func TestGlobalDiscountEndpoint(t *testing.T) {
	s := newTestServer(t)

	if w := s.admin(t, http.MethodPut, "/api/admin/settings/discount_percentage", map[string]string{"value": "20"}); w.Code != http.StatusOK {
		t.Fatalf("update discount: status %d", w.Code)
	}

	w := s.do(t, http.MethodGet, "/api/pricing/discount", nil)
	var body map[string]float64
	decode(t, w, &body)
	if body["discountPercentage"] != 20 {
		t.Errorf("discount = %v, want 20", body["discountPercentage"])
	}

	w = s.do(t, http.MethodGet, "/api/products/shirt", nil)
	var product service.ProductView
	decode(t, w, &product)
	if product.Pricing.DisplayPrice != 28 {
		t.Errorf("display price = %v, want 28", product.Pricing.DisplayPrice)
	}
}

func TestAdminProducts(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(t, http.MethodPost, "/api/admin/products", map[string]any{"name": "x"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: expected 401, got %d", w.Code)
	}

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{
			name: "valid product",
			body: models.ProductInput{
				Name: "Wrap Skirt", Price: 45, Category: models.CategoryWomen,
				ImageURL: "http://shop.test/uploads/1-main.jpg",
			},
			wantCode: http.StatusCreated,
		},
		{
			name:     "missing name",
			body:     models.ProductInput{Price: 45, Category: models.CategoryWomen},
			wantCode: http.StatusBadRequest,
		},
		{
			name:     "malformed JSON",
			body:     []byte(`{"name":`),
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.admin(t, http.MethodPost, "/api/admin/products", tt.body)
			if w.Code != tt.wantCode {
				t.Errorf("expected status %d, got %d: %s", tt.wantCode, w.Code, w.Body.String())
			}
		})
	}

	w := s.admin(t, http.MethodGet, "/api/admin/products", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("grouped list: status %d", w.Code)
	}
	var groups []models.ProductGroup
	decode(t, w, &groups)
	if len(groups) != 3 || groups[0].Category != models.CategoryWomen || groups[0].Count != 2 {
		t.Errorf("groups = %+v", groups)
	}

	w = s.admin(t, http.MethodPut, "/api/admin/products/shirt", models.ProductInput{
		Name: "Oxford Shirt", Price: 30, DiscountPercent: floatPtr(25), Category: models.CategoryMen,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status %d: %s", w.Code, w.Body.String())
	}
	var updated models.Product
	decode(t, w, &updated)
	if updated.OriginalPrice == nil || *updated.OriginalPrice != 40 {
		t.Errorf("original price = %v, want 40", updated.OriginalPrice)
	}

	if w := s.admin(t, http.MethodDelete, "/api/admin/products/shirt", nil); w.Code != http.StatusNoContent {
		t.Errorf("delete: expected 204, got %d", w.Code)
	}
	if w := s.admin(t, http.MethodDelete, "/api/admin/products/shirt", nil); w.Code != http.StatusNotFound {
		t.Errorf("second delete: expected 404, got %d", w.Code)
	}
}

func floatPtr(v float64) *float64 { return &v }
