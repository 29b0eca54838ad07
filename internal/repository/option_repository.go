package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// OptionRepository manages the subcategory, size and color lists
type OptionRepository interface {
	List(ctx context.Context, kind models.OptionKind) ([]models.Option, error)
	// Create adds name to the list. Sizes and colors are placed after the
	// current highest sort order.
	Create(ctx context.Context, kind models.OptionKind, name string) (*models.Option, error)
	Delete(ctx context.Context, kind models.OptionKind, id string) error
}

type InMemoryOptionRepository struct {
	mu    sync.RWMutex
	lists map[models.OptionKind][]models.Option
}

func NewInMemoryOptionRepository() *InMemoryOptionRepository {
	return &InMemoryOptionRepository{lists: make(map[models.OptionKind][]models.Option)}
}

func (r *InMemoryOptionRepository) List(ctx context.Context, kind models.OptionKind) ([]models.Option, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]models.Option{}, r.lists[kind]...)
	sort.Slice(out, func(i, j int) bool {
		if kind == models.OptionSubcategory || out[i].SortOrder == out[j].SortOrder {
			return out[i].Name < out[j].Name
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *InMemoryOptionRepository) Create(ctx context.Context, kind models.OptionKind, name string) (*models.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := 0
	for _, o := range r.lists[kind] {
		if o.Name == name {
			return nil, ErrConflict
		}
		if o.SortOrder+1 > next {
			next = o.SortOrder + 1
		}
	}
	opt := models.Option{ID: uuid.NewString(), Name: name}
	if kind != models.OptionSubcategory {
		opt.SortOrder = next
	}
	r.lists[kind] = append(r.lists[kind], opt)
	return &opt, nil
}

func (r *InMemoryOptionRepository) Delete(ctx context.Context, kind models.OptionKind, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.lists[kind]
	for i, o := range list {
		if o.ID == id {
			r.lists[kind] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
