package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
)

// SlideService manages the homepage hero slider
type SlideService struct {
	repo   repository.SlideRepository
	logger *slog.Logger
}

func NewSlideService(repo repository.SlideRepository, logger *slog.Logger) *SlideService {
	return &SlideService{repo: repo, logger: logger}
}

// ListSlides returns slides in display order
func (s *SlideService) ListSlides(ctx context.Context) ([]models.HeroSlide, error) {
	return s.repo.List(ctx)
}

// CreateSlide appends a slide after the existing ones
func (s *SlideService) CreateSlide(ctx context.Context, in models.HeroSlideInput) (*models.HeroSlide, error) {
	slide, err := slideFromInput(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, slide); err != nil {
		return nil, err
	}
	s.logger.Info("slide created", "slide_id", slide.ID, "sort_order", slide.SortOrder)
	return slide, nil
}

// UpdateSlide replaces a slide's content, keeping its position
func (s *SlideService) UpdateSlide(ctx context.Context, id string, in models.HeroSlideInput) (*models.HeroSlide, error) {
	slide, err := slideFromInput(in)
	if err != nil {
		return nil, err
	}
	slide.ID = id
	if err := s.repo.Update(ctx, slide); err != nil {
		return nil, err
	}
	return slide, nil
}

func (s *SlideService) DeleteSlide(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("slide deleted", "slide_id", id)
	return nil
}

// ReorderSlides sets each slide's position to its index in ids. ids must name
// every slide exactly once.
func (s *SlideService) ReorderSlides(ctx context.Context, ids []string) ([]models.HeroSlide, error) {
	if len(ids) == 0 {
		return nil, invalid("ids", "must not be empty")
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			return nil, invalid("ids", "duplicate slide %s", id)
		}
		seen[id] = true
	}
	current, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(ids) != len(current) {
		return nil, invalid("ids", "must list all %d slides, got %d", len(current), len(ids))
	}
	if err := s.repo.Reorder(ctx, ids); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func slideFromInput(in models.HeroSlideInput) (*models.HeroSlide, error) {
	slide := &models.HeroSlide{
		Subtitle:    strings.TrimSpace(in.Subtitle),
		TitleLine1:  strings.TrimSpace(in.TitleLine1),
		TitleLine2:  strings.TrimSpace(in.TitleLine2),
		Description: strings.TrimSpace(in.Description),
		ImageURL:    optionalString(in.ImageURL),
	}
	if slide.TitleLine1 == "" {
		return nil, invalid("titleLine1", "is required")
	}
	return slide, nil
}
