// Package seed loads the initial catalog of a store from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/boutique-store/backend/internal/models"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/repository"
	"github.com/Lixing-Zhang/boutique-store/backend/internal/service"
)

// File is the layout of a seed document
type File struct {
	Settings      map[string]string `yaml:"settings"`
	Subcategories []string          `yaml:"subcategories"`
	Sizes         []string          `yaml:"sizes"`
	Colors        []string          `yaml:"colors"`
	Slides        []Slide           `yaml:"slides"`
	Products      []Product         `yaml:"products"`
}

type Slide struct {
	Subtitle    string `yaml:"subtitle"`
	TitleLine1  string `yaml:"titleLine1"`
	TitleLine2  string `yaml:"titleLine2"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
}

type Product struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Price           float64  `yaml:"price"`
	OriginalPrice   *float64 `yaml:"originalPrice"`
	DiscountPercent *float64 `yaml:"discountPercent"`
	Category        string   `yaml:"category"`
	Subcategory     string   `yaml:"subcategory"`
	ImageURL        string   `yaml:"imageUrl"`
	Images          []string `yaml:"images"`
	Sizes           []string `yaml:"sizes"`
	Colors          []string `yaml:"colors"`
	InStock         *bool    `yaml:"inStock"`
	StockQuantity   *int     `yaml:"stockQuantity"`
}

func (p Product) input() models.ProductInput {
	return models.ProductInput{
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent,
		Category:        models.Category(strings.ToLower(p.Category)),
		Subcategory:     p.Subcategory,
		ImageURL:        p.ImageURL,
		Images:          p.Images,
		Sizes:           p.Sizes,
		Colors:          p.Colors,
		InStock:         p.InStock,
		StockQuantity:   p.StockQuantity,
	}
}

// Load decodes a seed document, rejecting unknown keys
func Load(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}
	return &f, nil
}

// Result counts what Apply created
type Result struct {
	Settings int
	Options  int
	Slides   int
	Products int
}

// Apply writes f into repos. It can be run repeatedly: existing options and
// products with the same name are left alone, and slides are only added to a
// store that has none. Settings go through settings so they are validated and
// the cached copy is dropped.
func Apply(ctx context.Context, repos *repository.Repositories, settings *service.SettingsService, f *File, logger *slog.Logger) (Result, error) {
	var res Result

	for key, value := range f.Settings {
		if err := settings.Seed(ctx, key, value); err != nil {
			return res, fmt.Errorf("setting %s: %w", key, err)
		}
		res.Settings++
	}

	options := service.NewOptionService(repos.Options, logger)
	lists := []struct {
		kind  models.OptionKind
		names []string
	}{
		{models.OptionSubcategory, f.Subcategories},
		{models.OptionSize, f.Sizes},
		{models.OptionColor, f.Colors},
	}
	for _, l := range lists {
		for _, name := range l.names {
			_, err := options.Create(ctx, l.kind, name)
			switch {
			case errors.Is(err, repository.ErrConflict):
			case err != nil:
				return res, fmt.Errorf("%s %q: %w", l.kind, name, err)
			default:
				res.Options++
			}
		}
	}

	slides := service.NewSlideService(repos.Slides, logger)
	existing, err := slides.ListSlides(ctx)
	if err != nil {
		return res, err
	}
	if len(existing) == 0 {
		for _, s := range f.Slides {
			in := models.HeroSlideInput(s)
			if _, err := slides.CreateSlide(ctx, in); err != nil {
				return res, fmt.Errorf("slide %q: %w", s.TitleLine1, err)
			}
			res.Slides++
		}
	}

	products := service.NewProductService(repos.Products, nil, "", logger)
	for _, p := range f.Products {
		found, err := repos.Products.List(ctx, models.ProductFilter{Search: p.Name})
		if err != nil {
			return res, err
		}
		if hasName(found, p.Name) {
			continue
		}
		if _, err := products.CreateProduct(ctx, p.input()); err != nil {
			return res, fmt.Errorf("product %q: %w", p.Name, err)
		}
		res.Products++
	}

	logger.Info("seed applied",
		"settings", res.Settings,
		"options", res.Options,
		"slides", res.Slides,
		"products", res.Products,
	)
	return res, nil
}

func hasName(products []models.Product, name string) bool {
	for _, p := range products {
		if strings.EqualFold(p.Name, name) {
			return true
		}
	}
	return false
}
