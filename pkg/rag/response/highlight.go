package response

import (
	"strings"

	"albi-mall-assistant-be/pkg/catalog"
)

var subcategoryStyles = map[string]string{
	"tote":      "spacious and versatile",
	"crossbody": "hands-free convenience",
	"satchel":   "structured elegance",
	"clutch":    "evening sophistication",
	"backpack":  "practical functionality",
	"wallet":    "compact organization",
}

var keyFeatureWords = []string{"leather", "adjustable", "spacious", "compact", "multiple", "structured", "versatile"}

// Highlight is the one-line summary shown next to a recommendation:
// material, the first notable feature and the style of the subcategory.
func Highlight(p catalog.Product) string {
	var parts []string
	if p.Material != "" {
		parts = append(parts, strings.ToLower(p.Material))
	}

feature:
	for _, f := range p.Features {
		lf := strings.ToLower(f)
		for _, w := range keyFeatureWords {
			if strings.Contains(lf, w) {
				parts = append(parts, lf)
				break feature
			}
		}
	}

	if style, ok := subcategoryStyles[strings.ToLower(p.Subcategory)]; ok {
		parts = append(parts, style)
	}
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, ", ")
}

func recommend(p catalog.Product) Recommendation {
	return Recommendation{ID: p.ID, Title: p.Name, Highlight: Highlight(p)}
}

func recommendAll(products []catalog.Product, max int) []Recommendation {
	if max > 0 && len(products) > max {
		products = products[:max]
	}
	out := make([]Recommendation, 0, len(products))
	for _, p := range products {
		out = append(out, recommend(p))
	}
	return out
}
