package retrieval

import (
	"strings"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
)

// Satisfies reports whether p meets every constraint present in fs. An empty
// set accepts everything.
func Satisfies(p catalog.Product, fs filter.FilterSet) bool {
	return failedConstraint(p, fs) == ""
}

// failedConstraint names the first constraint p violates, or "".
func failedConstraint(p catalog.Product, fs filter.FilterSet) string {
	if fs.Color != "" && !hasColor(p, fs.Color) {
		return "color"
	}
	if fs.MinPrice != nil && p.Price < *fs.MinPrice {
		return "min_price"
	}
	if fs.MaxPrice != nil && p.Price > *fs.MaxPrice {
		return "max_price"
	}
	if fs.Category != "" && !sameWord(p.Category, fs.Category) && !sameWord(p.Subcategory, fs.Category) {
		return "category"
	}
	if fs.Subcategory != "" && !sameWord(p.Subcategory, fs.Subcategory) {
		return "subcategory"
	}
	if fs.ProductType != "" {
		if pt, ok := filter.LookupProductType(fs.ProductType); ok {
			if pt.Subcategory != "" && !sameWord(p.Subcategory, pt.Subcategory) {
				return "product_type"
			}
			if pt.Category != "" && !sameWord(p.Category, pt.Category) && !sameWord(p.Subcategory, pt.Category) {
				return "product_type"
			}
		}
	}
	if fs.Material != "" && !filter.NewText(p.Material).ContainsAny(filter.MaterialTerms(fs.Material)) {
		return "material"
	}
	if fs.Brand != "" && !sameWord(p.Brand, fs.Brand) {
		return "brand"
	}
	if fs.Occasion != "" && !occasionText(p).ContainsAny(filter.OccasionTerms(fs.Occasion)) {
		return "occasion"
	}
	if fs.Size != "" && !sizeText(p).ContainsAny(filter.SizeTerms(fs.Size)) {
		return "size"
	}
	return ""
}

// hasColor matches the canonical color against the primary color and every
// variant, through the synonym table ("navy" satisfies blue).
func hasColor(p catalog.Product, canonical string) bool {
	for _, c := range p.AllColors() {
		if c == canonical || filter.CanonicalColor(c) == canonical {
			return true
		}
	}
	return false
}

func sameWord(a, b string) bool {
	return strings.Join(filter.Tokenize(a), " ") == strings.Join(filter.Tokenize(b), " ")
}

func occasionText(p catalog.Product) filter.Text {
	parts := append([]string{p.Name, p.Description}, p.Tags...)
	return filter.NewText(strings.Join(append(parts, p.Features...), " "))
}

func sizeText(p catalog.Product) filter.Text {
	return filter.NewText(strings.Join(append([]string{p.Size}, p.Sizes...), " "))
}
