package filter

import (
	"regexp"
	"strconv"
)

const amount = `\$?\s?(\d+(?:\.\d+)?)`

type priceBounds struct {
	min *float64
	max *float64
}

type pricePattern struct {
	name  string
	re    *regexp.Regexp
	apply func(nums []float64, b *priceBounds)
}

func setMax(nums []float64, b *priceBounds) { b.max = Price(nums[0]) }
func setMin(nums []float64, b *priceBounds) { b.min = Price(nums[0]) }

// Applied in order; a later match overwrites the bounds an earlier one set.
var pricePatterns = []pricePattern{
	{
		name:  "budget",
		re:    regexp.MustCompile(`\b(?:budget|buxhet|buxheti)\s*(?:is|of|around|eshte|prej|me|rreth)?\s*` + amount),
		apply: setMax,
	},
	{
		name:  "budget_suffix",
		re:    regexp.MustCompile(amount + `\s*(?:dollars?|usd|euros?|eur|leke|lek)?\s*budget\b`),
		apply: setMax,
	},
	{
		name:  "under",
		re:    regexp.MustCompile(`\b(?:under|below|beneath|nen)\s+` + amount),
		apply: setMax,
	},
	{
		name:  "over",
		re:    regexp.MustCompile(`\b(?:over|above|more than|mbi|me shume se)\s+` + amount),
		apply: setMin,
	},
	{
		name:  "at_least",
		re:    regexp.MustCompile(`\b(?:at least|minimum|min|starting at|te pakten)\s+` + amount),
		apply: setMin,
	},
	{
		// A bare "2 to 3" is a quantity; a range needs a currency marker.
		name: "range",
		re:   regexp.MustCompile(`\$\s?(\d+(?:\.\d+)?)\s*(?:-|–|to|deri ne|deri)\s*` + amount),
		apply: func(nums []float64, b *priceBounds) {
			b.min, b.max = Price(nums[0]), Price(nums[1])
		},
	},
	{
		name: "range_currency",
		re:   regexp.MustCompile(`(\d+(?:\.\d+)?)\s*(?:-|–|to|deri ne|deri)\s*(\d+(?:\.\d+)?)\s*(?:dollars?|usd|euros?|eur|leke|lek)\b`),
		apply: func(nums []float64, b *priceBounds) {
			b.min, b.max = Price(nums[0]), Price(nums[1])
		},
	},
	{
		name: "between",
		re:   regexp.MustCompile(`\b(?:between|nga|midis|ndermjet)\s+` + amount + `\s+(?:and|deri ne|deri|dhe|e)\s+` + amount),
		apply: func(nums []float64, b *priceBounds) {
			b.min, b.max = Price(nums[0]), Price(nums[1])
		},
	},
	{
		name:  "up_to",
		re:    regexp.MustCompile(`\b(?:up to|at most|maximum|max|deri ne|deri)\s+` + amount),
		apply: setMax,
	},
	{
		name: "around",
		re:   regexp.MustCompile(`\b(?:around|about|approximately|approx|roughly|rreth|afersisht)\s+` + amount),
		apply: func(nums []float64, b *priceBounds) {
			low := nums[0] - 50
			if low < 0 {
				low = 0
			}
			b.min, b.max = Price(low), Price(nums[0]+50)
		},
	},
	{
		name: "less_than",
		re:   regexp.MustCompile(`\b(?:less than|cheaper than|me pak se|me lire se)\s+` + amount),
		apply: func(nums []float64, b *priceBounds) {
			v := nums[0] - 1
			if v < 0 {
				v = 0
			}
			b.max = Price(v)
		},
	},
}

var thousandsSeparator = regexp.MustCompile(`(\d),(\d{3})\b`)

// Negated comparisons flip the bound, so they are rewritten to their plain
// equivalent before any pattern runs.
var negatedComparisons = []struct {
	re   *regexp.Regexp
	with string
}{
	{regexp.MustCompile(`\b(?:no|not|jo)\s+(?:more than|greater than|over|above|higher than|me shume se|mbi)\s+`), "up to "},
	{regexp.MustCompile(`\b(?:no|not|jo)\s+(?:less than|cheaper than|lower than|under|below|me pak se|nen)\s+`), "at least "},
}

// extractPrice returns the price bounds mentioned in the utterance. Inverted
// bounds are swapped so min <= max always holds.
func extractPrice(utterance string) (lo, hi *float64) {
	s := thousandsSeparator.ReplaceAllString(Fold(utterance), "$1$2")
	for _, n := range negatedComparisons {
		s = n.re.ReplaceAllString(s, n.with)
	}

	var b priceBounds
	for _, p := range pricePatterns {
		m := p.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		nums := make([]float64, 0, len(m)-1)
		for _, g := range m[1:] {
			v, err := strconv.ParseFloat(g, 64)
			if err != nil {
				break
			}
			nums = append(nums, v)
		}
		if len(nums) != len(m)-1 {
			continue
		}
		p.apply(nums, &b)
	}

	if b.min != nil && b.max != nil && *b.min > *b.max {
		b.min, b.max = b.max, b.min
	}
	return b.min, b.max
}

// HasPriceCue reports whether the utterance carries any price wording,
// even when no amount could be parsed ("something cheaper").
func HasPriceCue(utterance string) bool {
	return priceCue.MatchString(Fold(utterance))
}

var priceCue = regexp.MustCompile(`\$\d|\b(?:under|below|over|above|less than|more than|at least|up to|around|budget|cheap|cheaper|affordable|expensive|price|nen|mbi|rreth|buxhet|buxheti|lire|shtrenjte|cmim|cmimi)\b`)
