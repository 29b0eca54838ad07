package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
)

// SlideRepository defines the interface for hero slide data access
type SlideRepository interface {
	List(ctx context.Context) ([]models.HeroSlide, error)
	GetByID(ctx context.Context, id string) (*models.HeroSlide, error)
	// Create appends the slide; its SortOrder becomes the current slide count
	Create(ctx context.Context, s *models.HeroSlide) error
	Update(ctx context.Context, s *models.HeroSlide) error
	Delete(ctx context.Context, id string) error
	// Reorder sets each slide's SortOrder to its index in ids. Callers pass
	// every slide so positions stay unique.
	Reorder(ctx context.Context, ids []string) error
}

type InMemorySlideRepository struct {
	mu     sync.RWMutex
	slides map[string]models.HeroSlide
}

func NewInMemorySlideRepository() *InMemorySlideRepository {
	return &InMemorySlideRepository{slides: make(map[string]models.HeroSlide)}
}

func (r *InMemorySlideRepository) List(ctx context.Context) ([]models.HeroSlide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.HeroSlide, 0, len(r.slides))
	for _, s := range r.slides {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder == out[j].SortOrder {
			return out[i].ID < out[j].ID
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

func (r *InMemorySlideRepository) GetByID(ctx context.Context, id string) (*models.HeroSlide, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.slides[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *InMemorySlideRepository) Create(ctx context.Context, s *models.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.SortOrder = len(r.slides)
	r.slides[s.ID] = *s
	return nil
}

func (r *InMemorySlideRepository) Update(ctx context.Context, s *models.HeroSlide) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.slides[s.ID]
	if !ok {
		return ErrNotFound
	}
	s.SortOrder = existing.SortOrder
	r.slides[s.ID] = *s
	return nil
}

func (r *InMemorySlideRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.slides[id]; !ok {
		return ErrNotFound
	}
	delete(r.slides, id)
	return nil
}

func (r *InMemorySlideRepository) Reorder(ctx context.Context, ids []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range ids {
		if _, ok := r.slides[id]; !ok {
			return ErrNotFound
		}
	}
	for i, id := range ids {
		s := r.slides[id]
		s.SortOrder = i
		r.slides[id] = s
	}
	return nil
}
