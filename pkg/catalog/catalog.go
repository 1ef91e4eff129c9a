package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

//go:embed data/products.json
var sampleProducts []byte

// Catalog is the read-only product set loaded at startup.
type Catalog struct {
	products []Product
	byID     map[string]int
	brands   map[string]string // lower-case -> display name
}

// New validates the products and builds the lookup indexes. Duplicate ids keep
// the first occurrence.
func New(products []Product, extraBrands ...string) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
		brands:   make(map[string]string),
	}

	for _, raw := range products {
		p, err := raw.Normalize()
		if err != nil {
			return nil, err
		}
		if _, exists := c.byID[p.ID]; exists {
			continue
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
		c.addBrand(p.Brand)
	}

	for _, b := range extraBrands {
		c.addBrand(b)
	}

	return c, nil
}

func (c *Catalog) addBrand(brand string) {
	brand = strings.TrimSpace(brand)
	if brand == "" {
		return
	}
	key := strings.ToLower(brand)
	if _, ok := c.brands[key]; !ok {
		c.brands[key] = brand
	}
}

// LoadFile reads a JSON array of products.
func LoadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return decode(data)
}

// Sample returns the embedded demo catalog.
func Sample() ([]Product, error) {
	return decode(sampleProducts)
}

func decode(data []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return products, nil
}

func (c *Catalog) Len() int {
	return len(c.products)
}

// All returns a copy of every product in load order.
func (c *Catalog) All() []Product {
	return CloneAll(c.products)
}

func (c *Catalog) Get(id string) (Product, error) {
	idx, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, id)
	}
	return c.products[idx].clone(), nil
}

// ByCategory lists products whose category or subcategory matches. An empty
// category lists everything. limit <= 0 means no limit.
func (c *Catalog) ByCategory(category string, limit int) []Product {
	category = strings.ToLower(strings.TrimSpace(category))
	var out []Product
	for _, p := range c.products {
		if category != "" &&
			strings.ToLower(p.Category) != category &&
			strings.ToLower(p.Subcategory) != category {
			continue
		}
		out = append(out, p.clone())
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// HasBrand reports whether the catalog carries the brand (case-insensitive).
func (c *Catalog) HasBrand(brand string) bool {
	_, ok := c.brands[strings.ToLower(strings.TrimSpace(brand))]
	return ok
}

// Brands returns the display names of every in-catalog brand, sorted.
func (c *Catalog) Brands() []string {
	out := make([]string, 0, len(c.brands))
	for _, b := range c.brands {
		out = append(out, b)
	}
	sort.Strings(out)
	return out
}

// PrimaryBrand is the brand carried by the most products.
func (c *Catalog) PrimaryBrand() string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, p := range c.products {
		counts[p.Brand]++
		if n := counts[p.Brand]; n > bestCount || (n == bestCount && p.Brand < best) {
			best, bestCount = p.Brand, n
		}
	}
	if best == "" {
		brands := c.Brands()
		if len(brands) > 0 {
			return brands[0]
		}
	}
	return best
}
