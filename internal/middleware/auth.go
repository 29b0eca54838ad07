package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/auth"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// Authenticator resolves a bearer token to an admin
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Admin, error)
}

// AdminAuth middleware requires a valid admin token in the Authorization header.
// The authenticated admin is stored in the request context.
func AdminAuth(authn Authenticator, logger *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "Unauthorized: bearer token required")
				return
			}

			admin, err := authn.Authenticate(r.Context(), token)
			if err != nil {
				logger.Warn("admin authentication failed", "path", r.URL.Path, "error", err)
				unauthorized(w, "Unauthorized: invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithAdmin(r.Context(), admin)))
		})
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", `Bearer realm="admin"`)
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
