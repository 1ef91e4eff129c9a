package filter

import (
	"fmt"
	"strings"
)

// FilterSet is the structured constraint set derived from one utterance.
// Empty strings and nil bounds mean "absent"; the zero value filters nothing.
type FilterSet struct {
	Color       string   `json:"color,omitempty"`
	MinPrice    *float64 `json:"min_price,omitempty"`
	MaxPrice    *float64 `json:"max_price,omitempty"`
	Category    string   `json:"category,omitempty"`
	Subcategory string   `json:"subcategory,omitempty"`
	ProductType string   `json:"product_type,omitempty"`
	Material    string   `json:"material,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Occasion    string   `json:"occasion,omitempty"`
	Size        string   `json:"size,omitempty"`
}

func (f FilterSet) IsEmpty() bool {
	return f.Color == "" && !f.HasPrice() && !f.HasItemClass() &&
		f.Material == "" && f.Brand == "" && f.Occasion == "" && f.Size == ""
}

func (f FilterSet) HasPrice() bool {
	return f.MinPrice != nil || f.MaxPrice != nil
}

// HasItemClass reports whether any of product type, category or subcategory is set.
func (f FilterSet) HasItemClass() bool {
	return f.ProductType != "" || f.Category != "" || f.Subcategory != ""
}

// Overlay returns f with every field resolved in next written over it.
// Item class (type, category, subcategory) and the price bounds are replaced
// as groups so a newer constraint never mixes with half of an older one.
func (f FilterSet) Overlay(next FilterSet) FilterSet {
	out := f
	if next.Color != "" {
		out.Color = next.Color
	}
	if next.HasPrice() {
		out.MinPrice = copyFloat(next.MinPrice)
		out.MaxPrice = copyFloat(next.MaxPrice)
	} else {
		out.MinPrice = copyFloat(f.MinPrice)
		out.MaxPrice = copyFloat(f.MaxPrice)
	}
	if next.HasItemClass() {
		out.ProductType = next.ProductType
		out.Category = next.Category
		out.Subcategory = next.Subcategory
	}
	if next.Material != "" {
		out.Material = next.Material
	}
	if next.Brand != "" {
		out.Brand = next.Brand
	}
	if next.Occasion != "" {
		out.Occasion = next.Occasion
	}
	if next.Size != "" {
		out.Size = next.Size
	}
	return out
}

// WithProductType anchors the set to a known product type, filling the
// category and subcategory it implies.
func (f FilterSet) WithProductType(name string) FilterSet {
	pt, ok := LookupProductType(name)
	if !ok {
		return f
	}
	f.ProductType = pt.Name
	f.Category = pt.Category
	f.Subcategory = pt.Subcategory
	return f
}

// SearchTerms renders the set back into query words for the search provider.
func (f FilterSet) SearchTerms() []string {
	var terms []string
	for _, v := range []string{f.Color, f.Material, f.Size, f.ProductType, f.Occasion} {
		if v != "" {
			terms = append(terms, v)
		}
	}
	if f.ProductType == "" && f.Subcategory != "" {
		terms = append(terms, f.Subcategory)
	}
	return terms
}

// Describe renders the set for prompts and audit notes, e.g.
// "color=red, price<=100, type=tote".
func (f FilterSet) Describe() string {
	var parts []string
	if f.Color != "" {
		parts = append(parts, "color="+f.Color)
	}
	switch {
	case f.MinPrice != nil && f.MaxPrice != nil:
		parts = append(parts, fmt.Sprintf("price=%s-%s", formatAmount(*f.MinPrice), formatAmount(*f.MaxPrice)))
	case f.MaxPrice != nil:
		parts = append(parts, "price<="+formatAmount(*f.MaxPrice))
	case f.MinPrice != nil:
		parts = append(parts, "price>="+formatAmount(*f.MinPrice))
	}
	if f.ProductType != "" {
		parts = append(parts, "type="+f.ProductType)
	}
	if f.Category != "" {
		parts = append(parts, "category="+f.Category)
	}
	if f.Subcategory != "" {
		parts = append(parts, "subcategory="+f.Subcategory)
	}
	if f.Material != "" {
		parts = append(parts, "material="+f.Material)
	}
	if f.Brand != "" {
		parts = append(parts, "brand="+f.Brand)
	}
	if f.Occasion != "" {
		parts = append(parts, "occasion="+f.Occasion)
	}
	if f.Size != "" {
		parts = append(parts, "size="+f.Size)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, ", ")
}

// Clone deep-copies the price pointers.
func (f FilterSet) Clone() FilterSet {
	f.MinPrice = copyFloat(f.MinPrice)
	f.MaxPrice = copyFloat(f.MaxPrice)
	return f
}

// Price returns a pointer to v, for building sets in code.
func Price(v float64) *float64 {
	return &v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func formatAmount(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}
