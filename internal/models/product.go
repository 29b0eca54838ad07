package models

import "time"

// Category is the top-level department a product belongs to
type Category string

const (
	CategoryWomen Category = "women"
	CategoryMen   Category = "men"
	CategoryKids  Category = "kids"
)

// Categories lists every category in display order
var Categories = []Category{CategoryWomen, CategoryMen, CategoryKids}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryWomen, CategoryMen, CategoryKids:
		return true
	}
	return false
}

// Product represents an item of clothing in the catalog
type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	Category      Category  `json:"category"`
	Subcategory   *string   `json:"subcategory"`
	ImageURL      *string   `json:"imageUrl"`
	Images        []string  `json:"images"`
	Sizes         []string  `json:"sizes"`
	Colors        []string  `json:"colors"`
	InStock       bool      `json:"inStock"`
	StockQuantity *int      `json:"stockQuantity"` // nil means stock is not tracked
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductFilter narrows a product listing
type ProductFilter struct {
	Category    Category
	Subcategory string
	Search      string // case-insensitive substring of the name
}

// ProductInput is the admin payload for creating or updating a product
type ProductInput struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Price           float64  `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice"`
	DiscountPercent *float64 `json:"discountPercent"`
	Category        Category `json:"category"`
	Subcategory     string   `json:"subcategory"`
	ImageURL        string   `json:"imageUrl"`
	Images          []string `json:"images"`
	Sizes           []string `json:"sizes"`
	Colors          []string `json:"colors"`
	InStock         *bool    `json:"inStock"`
	StockQuantity   *int     `json:"stockQuantity"`
}

// ProductGroup is one category section of the admin product listing
type ProductGroup struct {
	Category Category  `json:"category"`
	Count    int       `json:"count"`
	Products []Product `json:"products"`
}
