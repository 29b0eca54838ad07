package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
)

const minPasswordLength = 8

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSignUpDisabled     = errors.New("admin sign-up is disabled")
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrWeakPassword       = fmt.Errorf("password must be at least %d characters", minPasswordLength)
	ErrEmailTaken         = errors.New("an admin with this email already exists")
)

// Session is returned after a successful login
type Session struct {
	AccessToken string        `json:"accessToken"`
	ExpiresAt   time.Time     `json:"expiresAt"`
	Admin       *models.Admin `json:"admin"`
}

// Service authenticates administrators
type Service struct {
	admins      repository.AdminRepository
	jwt         *JWTManager
	allowSignUp bool
	logger      *slog.Logger
}

func NewService(admins repository.AdminRepository, jwt *JWTManager, allowSignUp bool, logger *slog.Logger) *Service {
	return &Service{admins: admins, jwt: jwt, allowSignUp: allowSignUp, logger: logger}
}

// Login checks credentials and issues an access token
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	admin, err := s.admins.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	if !CheckPassword(admin.PasswordHash, password) {
		s.logger.Warn("admin login failed", "email", admin.Email)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := s.jwt.Sign(admin.ID, admin.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	s.logger.Info("admin logged in", "admin_id", admin.ID)
	return &Session{AccessToken: token, ExpiresAt: exp, Admin: admin}, nil
}

// SignUp registers a new admin when sign-up is enabled
func (s *Service) SignUp(ctx context.Context, email, password string) (*models.Admin, error) {
	if !s.allowSignUp {
		return nil, ErrSignUpDisabled
	}
	return s.CreateAdmin(ctx, email, password)
}

// CreateAdmin registers an admin regardless of the sign-up setting
func (s *Service) CreateAdmin(ctx context.Context, email, password string) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin := &models.Admin{Email: email, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	s.logger.Info("admin created", "admin_id", admin.ID, "email", admin.Email)
	return admin, nil
}

// Authenticate resolves a bearer token to its admin
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Admin, error) {
	claims, err := s.jwt.Parse(token)
	if err != nil {
		return nil, err
	}
	admin, err := s.admins.GetByID(ctx, claims.Subject)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("lookup admin: %w", err)
	}
	return admin, nil
}

type ctxKey struct{}

// WithAdmin returns a copy of ctx carrying admin
func WithAdmin(ctx context.Context, admin *models.Admin) context.Context {
	return context.WithValue(ctx, ctxKey{}, admin)
}

// AdminFrom returns the authenticated admin stored in ctx, if any
func AdminFrom(ctx context.Context) (*models.Admin, bool) {
	a, ok := ctx.Value(ctxKey{}).(*models.Admin)
	return a, ok
}
