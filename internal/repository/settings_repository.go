package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// SettingsRepository defines the interface for store setting data access
type SettingsRepository interface {
	List(ctx context.Context) ([]models.StoreSetting, error)
	// Update changes an existing key; unknown keys return ErrNotFound
	Update(ctx context.Context, key, value string) (*models.StoreSetting, error)
	// Upsert creates or replaces a key, used for seeding
	Upsert(ctx context.Context, key, value string) error
}

type InMemorySettingsRepository struct {
	mu       sync.RWMutex
	settings map[string]models.StoreSetting
	now      func() time.Time
}

// NewInMemorySettingsRepository returns a repository holding defaults
func NewInMemorySettingsRepository(defaults map[string]string) *InMemorySettingsRepository {
	r := &InMemorySettingsRepository{
		settings: make(map[string]models.StoreSetting, len(defaults)),
		now:      time.Now,
	}
	for k, v := range defaults {
		r.settings[k] = models.StoreSetting{Key: k, Value: v, UpdatedAt: r.now().UTC()}
	}
	return r
}

func (r *InMemorySettingsRepository) List(ctx context.Context) ([]models.StoreSetting, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StoreSetting, 0, len(r.settings))
	for _, s := range r.settings {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (r *InMemorySettingsRepository) Update(ctx context.Context, key, value string) (*models.StoreSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.settings[key]
	if !ok {
		return nil, ErrNotFound
	}
	s.Value = value
	s.UpdatedAt = r.now().UTC()
	r.settings[key] = s
	return &s, nil
}

func (r *InMemorySettingsRepository) Upsert(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.settings[key] = models.StoreSetting{Key: key, Value: value, UpdatedAt: r.now().UTC()}
	return nil
}
