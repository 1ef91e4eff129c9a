package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidProduct  = errors.New("invalid product")
)

// Product is a catalog entry. It is never mutated after loading.
type Product struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Subcategory        string   `json:"subcategory"`
	Price              float64  `json:"price"`
	OriginalPrice      *float64 `json:"original_price,omitempty"`
	DiscountPercentage *float64 `json:"discount_percentage,omitempty"`
	Color              string   `json:"color"`
	Colors             []string `json:"colors"`
	Size               string   `json:"size"`
	Sizes              []string `json:"sizes"`
	Material           string   `json:"material"`
	Description        string   `json:"description"`
	Features           []string `json:"features"`
	Tags               []string `json:"tags"`
	Availability       string   `json:"availability"`
	Rating             float64  `json:"rating"`
	ReviewsCount       int      `json:"reviews_count"`
}

// Normalize validates a raw product and fills the derived fields.
func (p Product) Normalize() (Product, error) {
	p.ID = strings.TrimSpace(p.ID)
	if p.ID == "" {
		return p, fmt.Errorf("%w: missing id", ErrInvalidProduct)
	}
	if p.Price < 0 {
		return p, fmt.Errorf("%w: %s has negative price", ErrInvalidProduct, p.ID)
	}
	if len(p.Colors) == 0 && p.Color != "" {
		p.Colors = []string{p.Color}
	}
	if p.Color == "" && len(p.Colors) > 0 {
		p.Color = p.Colors[0]
	}
	if len(p.Sizes) == 0 && p.Size != "" {
		p.Sizes = []string{p.Size}
	}
	if p.Rating < 0 {
		p.Rating = 0
	}
	if p.Rating > 5 {
		p.Rating = 5
	}
	if p.ReviewsCount < 0 {
		p.ReviewsCount = 0
	}
	if p.Availability == "" {
		p.Availability = "in_stock"
	}
	return p, nil
}

// SearchableText joins every text field in lower case.
func (p Product) SearchableText() string {
	parts := []string{p.Name, p.Brand, p.Category, p.Subcategory, p.Color, p.Size, p.Material, p.Description}
	parts = append(parts, p.Colors...)
	parts = append(parts, p.Sizes...)
	parts = append(parts, p.Features...)
	parts = append(parts, p.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// AllColors returns the primary color followed by the variants, lower-cased.
func (p Product) AllColors() []string {
	seen := make(map[string]bool, len(p.Colors)+1)
	out := make([]string, 0, len(p.Colors)+1)
	for _, c := range append([]string{p.Color}, p.Colors...) {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (p Product) clone() Product {
	p.Colors = append([]string(nil), p.Colors...)
	p.Sizes = append([]string(nil), p.Sizes...)
	p.Features = append([]string(nil), p.Features...)
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

// CloneAll deep-copies a product list so callers never share backing arrays.
func CloneAll(products []Product) []Product {
	if products == nil {
		return nil
	}
	out := make([]Product, len(products))
	for i, p := range products {
		out[i] = p.clone()
	}
	return out
}

// IDs returns the product identifiers in order.
func IDs(products []Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}
