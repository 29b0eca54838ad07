package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// AdminRepository stores administrator accounts. Emails are compared case-insensitively.
type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	GetByEmail(ctx context.Context, email string) (*models.Admin, error)
	GetByID(ctx context.Context, id string) (*models.Admin, error)
}

type InMemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]models.Admin // keyed by id
	now    func() time.Time
}

func NewInMemoryAdminRepository() *InMemoryAdminRepository {
	return &InMemoryAdminRepository{admins: make(map[string]models.Admin), now: time.Now}
}

func (r *InMemoryAdminRepository) Create(ctx context.Context, a *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a.Email = strings.ToLower(a.Email)
	for _, existing := range r.admins {
		if existing.Email == a.Email {
			return ErrConflict
		}
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.CreatedAt = r.now().UTC()
	r.admins[a.ID] = *a
	return nil
}

func (r *InMemoryAdminRepository) GetByEmail(ctx context.Context, email string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = strings.ToLower(email)
	for _, a := range r.admins {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *InMemoryAdminRepository) GetByID(ctx context.Context, id string) (*models.Admin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.admins[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &a, nil
}
