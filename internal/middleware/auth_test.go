package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/auth"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/pkg/logger"
)

func TestAdminAuth(t *testing.T) {
	log := logger.Discard()
	jwt := auth.NewJWTManager(auth.JWTConfig{Issuer: "test", Secret: "0123456789abcdef", TTL: time.Hour})
	svc := auth.NewService(repository.NewInMemoryAdminRepository(), jwt, false, log)

	admin, err := svc.CreateAdmin(t.Context(), "owner@example.com", "long-password")
	if err != nil {
		t.Fatal(err)
	}
	token, _, err := jwt.Sign(admin.ID, admin.Email)
	if err != nil {
		t.Fatal(err)
	}
	ghostToken, _, err := jwt.Sign("ghost", "ghost@example.com")
	if err != nil {
		t.Fatal(err)
	}

	// Create a test handler that echoes the authenticated admin
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := auth.AdminFrom(r.Context())
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(a.Email))
	})

	authHandler := AdminAuth(svc, log)(testHandler)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{
			name:           "valid token",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "lowercase scheme",
			header:         "bearer " + token,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing header",
			header:         "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			header:         "Basic " + token,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "garbage token",
			header:         "Bearer not-a-jwt",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "admin no longer exists",
			header:         "Bearer " + ghostToken,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/admin/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			authHandler.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			if tt.expectedStatus == http.StatusOK {
				if w.Body.String() != "owner@example.com" {
					t.Errorf("body = %s, want owner@example.com", w.Body.String())
				}
			}
		})
	}
}
