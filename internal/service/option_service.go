package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
)

// OptionService manages the subcategory, size and color lists
type OptionService struct {
	repo   repository.OptionRepository
	logger *slog.Logger
}

func NewOptionService(repo repository.OptionRepository, logger *slog.Logger) *OptionService {
	return &OptionService{repo: repo, logger: logger}
}

func (s *OptionService) List(ctx context.Context, kind models.OptionKind) ([]models.Option, error) {
	if !kind.Valid() {
		return nil, invalid("kind", "unknown option list %q", kind)
	}
	return s.repo.List(ctx, kind)
}

func (s *OptionService) Create(ctx context.Context, kind models.OptionKind, name string) (*models.Option, error) {
	if !kind.Valid() {
		return nil, invalid("kind", "unknown option list %q", kind)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "is required")
	}
	opt, err := s.repo.Create(ctx, kind, name)
	if err != nil {
		return nil, err
	}
	s.logger.Info("option added", "kind", kind, "name", opt.Name, "sort_order", opt.SortOrder)
	return opt, nil
}

func (s *OptionService) Delete(ctx context.Context, kind models.OptionKind, id string) error {
	if !kind.Valid() {
		return invalid("kind", "unknown option list %q", kind)
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		return err
	}
	s.logger.Info("option removed", "kind", kind, "id", id)
	return nil
}
