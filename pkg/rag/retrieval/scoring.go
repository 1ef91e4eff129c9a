package retrieval

import (
	"strings"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
)

const (
	weightExactPhrase   = 200
	weightPrimaryColor  = 100
	weightVariantColor  = 80
	weightColorSynonym  = 120
	weightCategory      = 60
	weightSubcategory   = 50
	weightKeyword       = 1
	boostKeywordName    = 10
	boostKeywordColor   = 15
	boostKeywordSubcat  = 8
	boostKeywordCat     = 6
	boostKeywordFeature = 3
	boostKeywordTag     = 2
	weightStyle         = 40
	weightSize          = 30
	weightMaterial      = 35
)

// scorer holds the per-query state shared by every candidate.
type scorer struct {
	query    filter.Text
	raw      string
	keywords []string
	filters  filter.FilterSet
	color    string
}

func newScorer(query string, fs filter.FilterSet) *scorer {
	color := fs.Color
	if color == "" {
		color = filter.CanonicalColor(query)
	}
	return &scorer{
		query:    filter.NewText(query),
		raw:      query,
		keywords: filter.Keywords(query),
		filters:  fs,
		color:    color,
	}
}

func (s *scorer) score(p catalog.Product) int {
	text := filter.NewText(p.SearchableText())
	score := 0

	if strings.TrimSpace(s.raw) != "" && text.Contains(s.raw) {
		score += weightExactPhrase
	}

	if p.Color != "" && s.query.Contains(p.Color) {
		score += weightPrimaryColor
	}
	for _, c := range p.Colors {
		if s.query.Contains(c) {
			score += weightVariantColor
			break
		}
	}
	if s.color != "" && hasColor(p, s.color) {
		score += weightColorSynonym
	} else if s.color == "" && s.mentionsColorSynonym(p) {
		score += weightColorSynonym
	}

	if (p.Category != "" && s.query.Contains(p.Category)) || (s.filters.Category != "" && sameWord(p.Category, s.filters.Category)) {
		score += weightCategory
	}
	if (p.Subcategory != "" && s.query.Contains(p.Subcategory)) || (s.filters.Subcategory != "" && sameWord(p.Subcategory, s.filters.Subcategory)) {
		score += weightSubcategory
	}

	name := filter.NewText(p.Name)
	color := filter.NewText(strings.Join(p.AllColors(), " "))
	subcat := filter.NewText(p.Subcategory)
	cat := filter.NewText(p.Category)
	features := filter.NewText(strings.Join(p.Features, " "))
	tags := filter.NewText(strings.Join(p.Tags, " "))
	for _, kw := range s.keywords {
		if !text.Contains(kw) {
			continue
		}
		score += weightKeyword
		if name.Contains(kw) {
			score += boostKeywordName
		}
		if color.Contains(kw) {
			score += boostKeywordColor
		}
		if subcat.Contains(kw) {
			score += boostKeywordSubcat
		}
		if cat.Contains(kw) {
			score += boostKeywordCat
		}
		if features.Contains(kw) {
			score += boostKeywordFeature
		}
		if tags.Contains(kw) {
			score += boostKeywordTag
		}
	}

	return score + s.semantic(p)
}

// semantic adds the style, size and material bonuses.
func (s *scorer) semantic(p catalog.Product) int {
	score := 0
	tagged := filter.NewText(strings.Join(append(append([]string(nil), p.Features...), p.Tags...), " "))

	for style, synonyms := range filter.StyleSynonyms() {
		if (s.query.Contains(style) || s.query.ContainsAny(synonyms)) && tagged.Contains(style) {
			score += weightStyle
		}
	}
	if s.filters.Occasion != "" && tagged.ContainsAny(filter.OccasionTerms(s.filters.Occasion)) {
		score += weightStyle
	}

	sizes := sizeText(p)
	for _, size := range filter.SizeCanonicals() {
		if s.query.ContainsAny(filter.SizeTerms(size)) && sizes.Contains(size) {
			score += weightSize
		}
	}

	material := filter.NewText(p.Material)
	for _, m := range filter.MaterialCanonicals() {
		if (s.query.ContainsAny(filter.MaterialTerms(m)) || s.query.ContainsAny(filter.MaterialSynonyms(m))) && material.Contains(m) {
			score += weightMaterial
		}
	}
	return score
}

func (s *scorer) mentionsColorSynonym(p catalog.Product) bool {
	for _, c := range p.AllColors() {
		if s.query.ContainsAny(filter.ColorSynonyms(filter.CanonicalColor(c))) {
			return true
		}
	}
	return false
}
