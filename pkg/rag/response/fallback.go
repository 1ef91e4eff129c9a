package response

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/intent"
)

// fallbackHandler is one templated reply. Handlers are tried in order and
// the first matching one answers.
type fallbackHandler struct {
	name   string
	match  func(in Input) bool
	handle func(c *Composer, in Input) Output
}

var fallbackHandlers = []fallbackHandler{
	{name: "detail", match: wantsDetail, handle: (*Composer).detailReply},
	{name: "cheaper", match: wantsCheaper, handle: (*Composer).cheaperReply},
	{name: "no_match", match: func(in Input) bool { return in.BrandUnavailable || len(in.Candidates) == 0 }, handle: (*Composer).noMatchReply},
	{name: "single", match: func(in Input) bool { return len(in.Candidates) == 1 }, handle: (*Composer).singleReply},
	{name: "multi", match: func(Input) bool { return true }, handle: (*Composer).multiReply},
}

func (c *Composer) fallback(in Input) (Output, string) {
	for _, h := range fallbackHandlers {
		if h.match(in) {
			return h.handle(c, in), h.name
		}
	}
	// multi always matches
	return c.multiReply(in), "multi"
}

// detailTarget is the single previous recommendation, if it is a candidate.
func detailTarget(in Input) (catalog.Product, bool) {
	if len(in.PreviousRecommended) != 1 {
		return catalog.Product{}, false
	}
	want := in.PreviousRecommended[0].ID
	for _, p := range in.Candidates {
		if p.ID == want {
			return p, true
		}
	}
	return catalog.Product{}, false
}

func wantsDetail(in Input) bool {
	if in.BrandUnavailable || in.Verdict.Kind != intent.KindAcknowledgement {
		return false
	}
	_, ok := detailTarget(in)
	return ok
}

func wantsCheaper(in Input) bool {
	return !in.BrandUnavailable && in.Verdict.Kind == intent.KindCheaper
}

func (c *Composer) detailReply(in Input) Output {
	p, _ := detailTarget(in)

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Here are the details for the %s: ", p.Name))
	kind := strings.Join(strings.Fields(strings.ToLower(p.Color+" "+p.Material+" "+p.Subcategory)), " ")
	if kind == "" {
		kind = "piece"
	}
	b.WriteString(fmt.Sprintf("a %s for %s.", kind, money(p.Price)))
	if len(p.Features) > 0 {
		b.WriteString(fmt.Sprintf(" Features: %s.", strings.Join(firstN(p.Features, 4), ", ")))
	}
	if len(p.Colors) > 1 {
		b.WriteString(fmt.Sprintf(" Available in %s.", strings.Join(p.Colors, ", ")))
	}
	if p.ReviewsCount > 0 {
		b.WriteString(fmt.Sprintf(" Rated %.1f/5 from %d reviews.", p.Rating, p.ReviewsCount))
	}
	if p.Availability != "" && p.Availability != "in_stock" {
		b.WriteString(fmt.Sprintf(" Availability: %s.", strings.ReplaceAll(p.Availability, "_", " ")))
	}

	return Output{
		AssistantText:       b.String(),
		RecommendedProducts: []Recommendation{recommend(p)},
	}
}

func (c *Composer) cheaperReply(in Input) Output {
	cheaper := append([]catalog.Product(nil), in.Candidates...)
	if in.Reference != nil {
		ref := in.Reference.Price
		kept := cheaper[:0]
		for _, p := range cheaper {
			if p.Price < ref && p.ID != in.Reference.ID {
				kept = append(kept, p)
			}
		}
		cheaper = kept
	}
	sort.SliceStable(cheaper, func(i, j int) bool { return cheaper[i].Price < cheaper[j].Price })

	if len(cheaper) == 0 {
		text := "I couldn't find a cheaper alternative right now."
		if in.Reference != nil {
			text = fmt.Sprintf("I couldn't find anything cheaper than the %s at %s in this category. Would you like to try a different style or color?", in.Reference.Name, money(in.Reference.Price))
		}
		return Output{AssistantText: text, RecommendedProducts: []Recommendation{}}
	}

	best := cheaper[0]
	text := fmt.Sprintf("The %s is %s.", best.Name, money(best.Price))
	if in.Reference != nil {
		text = fmt.Sprintf("The %s at %s is %s less than the %s (%s).", best.Name, money(best.Price), money(in.Reference.Price-best.Price), in.Reference.Name, money(in.Reference.Price))
	}
	if len(cheaper) > 1 {
		text += fmt.Sprintf(" I found %d more affordable options in total.", len(cheaper))
	}
	return Output{
		AssistantText:       text,
		RecommendedProducts: recommendAll(cheaper, c.cfg.MaxRecommendations),
	}
}

func (c *Composer) noMatchReply(in Input) Output {
	if in.BrandUnavailable {
		brand := cases.Title(language.English).String(in.RequestedBrand)
		return Output{
			AssistantText: fmt.Sprintf("I'm sorry, we don't carry %s products. We specialize in %s handbags and accessories. Would you like to see our %s collection instead?",
				brand, c.cfg.StoreBrand, c.cfg.StoreBrand),
			RecommendedProducts: []Recommendation{},
			AuditNotes:          fmt.Sprintf("Brand integrity maintained: shopper asked for %s but the catalog only carries %s", brand, c.cfg.StoreBrand),
		}
	}

	text := fmt.Sprintf("I'm sorry, we currently do not have any %s items that match your request. Would you like to see similar products or adjust your filters?", c.cfg.StoreBrand)
	if !in.Filters.IsEmpty() {
		text = fmt.Sprintf("I'm sorry, we currently do not have any %s items matching %s. Would you like to see similar products or adjust your filters?", c.cfg.StoreBrand, in.Filters.Describe())
	}
	return Output{AssistantText: text, RecommendedProducts: []Recommendation{}}
}

func (c *Composer) singleReply(in Input) Output {
	p := in.Candidates[0]
	text := fmt.Sprintf("I found the %s in %s for %s.", p.Name, strings.ToLower(p.Color), money(p.Price))
	if p.Material != "" || p.Subcategory != "" {
		text += fmt.Sprintf(" This %s %s is a great choice", strings.ToLower(p.Material), strings.ToLower(p.Subcategory))
		if len(p.Features) > 0 {
			text += fmt.Sprintf(" and features %s", strings.ToLower(strings.Join(firstN(p.Features, 3), ", ")))
		}
		text += "."
	}
	return Output{
		AssistantText:       strings.Join(strings.Fields(text), " "),
		RecommendedProducts: []Recommendation{recommend(p)},
	}
}

func (c *Composer) multiReply(in Input) Output {
	shown := firstNProducts(in.Candidates, c.cfg.MaxRecommendations)

	names := make([]string, 0, 3)
	for _, p := range firstNProducts(shown, 3) {
		names = append(names, p.Name)
	}

	lo, hi := shown[0].Price, shown[0].Price
	seen := make(map[string]bool)
	var colors []string
	for _, p := range shown {
		if p.Price < lo {
			lo = p.Price
		}
		if p.Price > hi {
			hi = p.Price
		}
		col := strings.ToLower(p.Color)
		if col != "" && !seen[col] {
			seen[col] = true
			colors = append(colors, col)
		}
	}

	text := fmt.Sprintf("I found %d options for you, including the %s.", len(shown), strings.Join(names, ", "))
	if lo == hi {
		text += fmt.Sprintf(" They are all %s", money(lo))
	} else {
		text += fmt.Sprintf(" They range from %s to %s", money(lo), money(hi))
	}
	text += fmt.Sprintf(" and come in %s.", strings.Join(firstN(colors, 3), ", "))

	return Output{
		AssistantText:       text,
		RecommendedProducts: recommendAll(shown, c.cfg.MaxRecommendations),
	}
}

func money(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}

func firstN(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func firstNProducts(s []catalog.Product, n int) []catalog.Product {
	if n > 0 && len(s) > n {
		return s[:n]
	}
	return s
}
