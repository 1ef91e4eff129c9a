package filter

import (
	"strings"

	"albi-mall-assistant-be/internal/pkg/logger"
)

// Extractor turns a free-text utterance into a FilterSet. It knows the brand
// vocabulary of the loaded catalog plus the competitor brands shoppers ask for.
type Extractor struct {
	brands []vocabEntry
	logger logger.ILogger
}

func NewExtractor(catalogBrands []string, log logger.ILogger) *Extractor {
	seen := make(map[string]bool)
	var brands []vocabEntry
	add := func(name string) {
		canonical := strings.Join(Tokenize(name), " ")
		if canonical == "" || seen[canonical] {
			return
		}
		seen[canonical] = true
		entry := vocabEntry{Canonical: canonical}
		for alias, target := range brandAliases {
			if target == canonical {
				entry.EN = append(entry.EN, alias)
			}
		}
		brands = append(brands, entry)
	}

	for _, b := range catalogBrands {
		add(b)
	}
	for _, b := range competitorBrands {
		add(b)
	}

	return &Extractor{brands: brands, logger: log}
}

// Extract never fails; anything it cannot resolve stays absent.
func (e *Extractor) Extract(utterance string) FilterSet {
	t := NewText(utterance)

	var fs FilterSet
	if c, ok := firstMention(t, colorVocabulary); ok {
		fs.Color = c.Canonical
	}

	fs.MinPrice, fs.MaxPrice = extractPrice(utterance)

	if pt, ok := resolveProductType(t); ok {
		fs.ProductType = pt.Name
		fs.Category = pt.Category
		fs.Subcategory = pt.Subcategory
	}

	if m, ok := firstMention(t, materialVocabulary); ok {
		fs.Material = m.Canonical
	}
	if b, ok := firstMention(t, e.brands); ok {
		fs.Brand = b.Canonical
	}
	if o, ok := firstMention(t, occasionVocabulary); ok {
		fs.Occasion = o.Canonical
	}
	if s, ok := firstMention(t, sizeVocabulary); ok {
		fs.Size = s.Canonical
	}

	if !fs.IsEmpty() {
		e.logger.Debug("FILTER", "Extracted filters", map[string]interface{}{
			"utterance": utterance,
			"filters":   fs.Describe(),
		})
	}
	return fs
}

// resolveProductType picks one canonical type when several are named:
// subcategory-level beats category-level, then the earliest mention wins.
func resolveProductType(t Text) (ProductType, bool) {
	bestPos := -1
	var best ProductType
	for _, pt := range productTypes {
		pos := -1
		for _, term := range pt.terms() {
			if p := t.Index(term); p >= 0 && (pos < 0 || p < pos) {
				pos = p
			}
		}
		if pos < 0 {
			continue
		}
		switch {
		case bestPos < 0:
		case pt.Specific && !best.Specific:
		case pt.Specific == best.Specific && pos < bestPos:
		default:
			continue
		}
		best, bestPos = pt, pos
	}
	return best, bestPos >= 0
}

// LookupProductType finds a product type by canonical name.
func LookupProductType(name string) (ProductType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, pt := range productTypes {
		if pt.Name == name {
			return pt, true
		}
	}
	return ProductType{}, false
}

// MentionsProductType reports whether the utterance names any product type.
func MentionsProductType(utterance string) bool {
	_, ok := resolveProductType(NewText(utterance))
	return ok
}

// CanonicalColor maps a color name or synonym in s to its canonical color.
func CanonicalColor(s string) string {
	if c, ok := firstMention(NewText(s), colorVocabulary); ok {
		return c.Canonical
	}
	return ""
}

func ColorTerms(canonical string) []string        { return termsOf(colorVocabulary, canonical) }
func MaterialTerms(canonical string) []string     { return termsOf(materialVocabulary, canonical) }
func OccasionTerms(canonical string) []string     { return termsOf(occasionVocabulary, canonical) }
func SizeTerms(canonical string) []string         { return termsOf(sizeVocabulary, canonical) }
func MaterialSynonyms(canonical string) []string { return materialSynonyms[canonical] }
func ColorSynonyms(canonical string) []string    { return colorSynonyms[canonical] }

// StyleSynonyms returns the style words and their synonyms.
func StyleSynonyms() map[string][]string {
	out := make(map[string][]string, len(styleSynonyms))
	for k, v := range styleSynonyms {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// MaterialCanonicals lists the canonical material names.
func MaterialCanonicals() []string {
	out := make([]string, len(materialVocabulary))
	for i, m := range materialVocabulary {
		out[i] = m.Canonical
	}
	return out
}

// SizeCanonicals lists the canonical size names.
func SizeCanonicals() []string {
	out := make([]string, len(sizeVocabulary))
	for i, s := range sizeVocabulary {
		out[i] = s.Canonical
	}
	return out
}

func termsOf(entries []vocabEntry, canonical string) []string {
	for _, e := range entries {
		if e.Canonical == canonical {
			return e.terms()
		}
	}
	if canonical == "" {
		return nil
	}
	return []string{canonical}
}
