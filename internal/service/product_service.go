package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/pricing"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/whatsapp"
)

// ProductView is a product with the price a shopper currently pays
type ProductView struct {
	models.Product
	Pricing pricing.Pricing `json:"pricing"`
}

// ProductService handles business logic for products
type ProductService struct {
	repo         repository.ProductRepository
	settings     *SettingsService
	defaultPhone string
	logger       *slog.Logger
}

// NewProductService creates a new product service
func NewProductService(repo repository.ProductRepository, settings *SettingsService, defaultPhone string, logger *slog.Logger) *ProductService {
	return &ProductService{
		repo:         repo,
		settings:     settings,
		defaultPhone: defaultPhone,
		logger:       logger,
	}
}

// ListProducts returns products matching filter with effective pricing
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]ProductView, error) {
	if filter.Category != "" && !filter.Category.Valid() {
		return nil, invalid("category", "must be one of women, men, kids")
	}
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	discount := s.settings.GlobalDiscount(ctx)
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{Product: p, Pricing: pricing.Effective(p, discount)}
	}
	return views, nil
}

// GetProduct returns a product by ID with effective pricing
func (s *ProductService) GetProduct(ctx context.Context, id string) (*ProductView, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductView{Product: *p, Pricing: pricing.Effective(*p, s.settings.GlobalDiscount(ctx))}, nil
}

// InquiryLink returns a WhatsApp link asking the store about a single product
func (s *ProductService) InquiryLink(ctx context.Context, id string) (string, error) {
	view, err := s.GetProduct(ctx, id)
	if err != nil {
		return "", err
	}
	phone := s.settings.SupportPhone(ctx)
	if phone == "" {
		phone = s.defaultPhone
	}
	return whatsapp.Link(phone, whatsapp.ProductInquiry(view.Product, view.Pricing.DisplayPrice)), nil
}

// GroupedProducts returns matching products split by category in display order
func (s *ProductService) GroupedProducts(ctx context.Context, filter models.ProductFilter) ([]models.ProductGroup, error) {
	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	groups := make([]models.ProductGroup, 0, len(models.Categories))
	for _, c := range models.Categories {
		if filter.Category != "" && filter.Category != c {
			continue
		}
		g := models.ProductGroup{Category: c, Products: []models.Product{}}
		for _, p := range products {
			if p.Category == c {
				g.Products = append(g.Products, p)
			}
		}
		g.Count = len(g.Products)
		groups = append(groups, g)
	}
	return groups, nil
}

func (s *ProductService) CreateProduct(ctx context.Context, in models.ProductInput) (*models.Product, error) {
	p := &models.Product{}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product created", "product_id", p.ID, "name", p.Name)
	return p, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id string, in models.ProductInput) (*models.Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyProductInput(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("product updated", "product_id", p.ID)
	return p, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("product deleted", "product_id", id)
	return nil
}

// applyProductInput validates in and copies it onto p
func applyProductInput(p *models.Product, in models.ProductInput) error {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return invalid("name", "is required")
	}
	if in.Price <= 0 {
		return invalid("price", "must be greater than 0")
	}
	if !in.Category.Valid() {
		return invalid("category", "must be one of women, men, kids")
	}
	if in.StockQuantity != nil && *in.StockQuantity < 0 {
		return invalid("stockQuantity", "must not be negative")
	}

	original := in.OriginalPrice
	switch {
	case original != nil:
		if *original < in.Price {
			return invalid("originalPrice", "must not be below price")
		}
	case in.DiscountPercent != nil:
		computed, ok := pricing.OriginalFromDiscount(in.Price, *in.DiscountPercent)
		if !ok {
			return invalid("discountPercent", "must be between 0 and 100")
		}
		original = &computed
	}

	p.Name = name
	p.Description = optionalString(in.Description)
	p.Price = pricing.Round2(in.Price)
	p.OriginalPrice = original
	p.Category = in.Category
	p.Subcategory = optionalString(in.Subcategory)
	p.ImageURL = optionalString(in.ImageURL)
	p.Images = productImages(p.ImageURL, in.Images)
	p.Sizes = nonEmpty(in.Sizes)
	p.Colors = nonEmpty(in.Colors)
	p.InStock = in.InStock == nil || *in.InStock
	p.StockQuantity = in.StockQuantity
	return nil
}

// productImages puts the main image first followed by the other distinct images.
// An empty result is nil.
func productImages(main *string, images []string) []string {
	var out []string
	if main != nil {
		out = append(out, *main)
	}
	for _, img := range images {
		img = strings.TrimSpace(img)
		if img == "" || slices.Contains(out, img) {
			continue
		}
		out = append(out, img)
	}
	return out
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}

func optionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
