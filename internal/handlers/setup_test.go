package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/auth"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/cache"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/cart"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/storage"
	"github.com/Lixing-Zhang/boutique-store/backend/pkg/logger"
)

const testCartID = "6f1c1f0e-8a5e-4d7e-9a40-2f0f6f3f1a11"

type testServer struct {
	handler http.Handler
	repos   *repository.Repositories
	token   string
}

func intPtr(v int) *int { return &v }

func seedCatalog() []models.Product {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return []models.Product{
		{
			ID: "dress", Name: "Linen Dress", Price: 50, Category: models.CategoryWomen,
			Sizes: []string{"S", "M"}, InStock: true, StockQuantity: intPtr(2), CreatedAt: base,
		},
		{
			ID: "shirt", Name: "Oxford Shirt", Price: 35, Category: models.CategoryMen,
			InStock: true, CreatedAt: base.Add(time.Hour),
		},
	}
}

func newTestServer(t *testing.T, opts ...func(*RouterOptions)) *testServer {
	t.Helper()
	log := logger.Discard()

	repos := repository.NewInMemory()
	repos.Products = repository.NewInMemoryProductRepository(seedCatalog()...)
	store := cache.NewMemoryStore()
	carts := cart.NewStore(store, time.Hour)

	settingsSvc := service.NewSettingsService(repos.Settings, store, time.Minute, log)
	productSvc := service.NewProductService(repos.Products, settingsSvc, "96171786787", log)
	cartSvc := service.NewCartService(carts, repos.Products, settingsSvc, log)
	orderSvc := service.NewOrderService(repos.Orders, repos.Products, carts, settingsSvc, nil, "96171786787", log)

	jwt := auth.NewJWTManager(auth.JWTConfig{Issuer: "test", Secret: "0123456789abcdef", TTL: time.Hour})
	authSvc := auth.NewService(repos.Admins, jwt, false, log)
	admin, err := authSvc.CreateAdmin(context.Background(), "owner@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	token, _, err := jwt.Sign(admin.ID, admin.Email)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	uploadDir := t.TempDir()
	images, err := storage.NewLocalImageStore(storage.LocalOptions{
		Dir: uploadDir, PublicBaseURL: "http://shop.test", MaxDimension: 64, JPEGQuality: 80, MaxBytes: 1 << 20,
	}, log)
	if err != nil {
		t.Fatalf("image store: %v", err)
	}

	api := API{
		Health:   NewHealthHandler(nil, log),
		Products: NewProductHandler(productSvc, settingsSvc, log),
		Cart:     NewCartHandler(cartSvc, log),
		Orders:   NewOrderHandler(orderSvc, log),
		Slides:   NewSlideHandler(service.NewSlideService(repos.Slides, log), log),
		Options:  NewOptionHandler(service.NewOptionService(repos.Options, log), log),
		Settings: NewSettingsHandler(settingsSvc, log),
		Reports:  NewReportHandler(service.NewReportService(repos.Products, repos.Orders), log),
		Auth:     NewAuthHandler(authSvc, orderSvc, log),
		Uploads:  NewUploadHandler(images, 1<<20, log),
	}
	ro := RouterOptions{
		AllowedOrigins: []string{"*"},
		UploadDir:      uploadDir,
		Authenticator:  authSvc,
	}
	for _, o := range opts {
		o(&ro)
	}

	return &testServer{handler: NewRouter(api, ro, log), repos: repos, token: token}
}

// do sends a request; body may be nil, a []byte or a value to encode as JSON
func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var r io.Reader
	switch b := body.(type) {
	case nil:
	case []byte:
		r = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, req)
	return w
}

// admin sends an authenticated admin request
func (s *testServer) admin(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	return s.do(t, method, path, body, "Authorization", "Bearer "+s.token)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(dst); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	decode(t, w, &body)
	return body["error"]
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp HealthResponse
	decode(t, w, &resp)
	if resp.Status != "healthy" {
		t.Errorf("status = %s", resp.Status)
	}
}

func TestHealth_FailingCheck(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"database": func(context.Context) error { return errors.New("connection refused") },
	}, logger.Discard())

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}
	var resp HealthResponse
	decode(t, w, &resp)
	if resp.Checks["database"] != "unavailable" {
		t.Errorf("checks = %v", resp.Checks)
	}
}
