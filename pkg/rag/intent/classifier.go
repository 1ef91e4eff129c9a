package intent

import (
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/store"
)

// Kind is the follow-up verdict for one turn.
type Kind string

const (
	KindNew             Kind = "new"             // fresh search
	KindRefinement      Kind = "refinement"      // adds a constraint to the previous results
	KindAcknowledgement Kind = "acknowledgement" // "yes", "show me", "details"
	KindCheaper         Kind = "cheaper"         // asks for a cheaper alternative
)

type Verdict struct {
	Kind   Kind   `json:"kind"`
	Reason string `json:"reason"`
}

func (v Verdict) FollowUp() bool {
	return v.Kind != KindNew && v.Kind != ""
}

// Classifier decides whether a turn continues the previous search.
// Implementations must be pure: the same input always yields the same verdict.
type Classifier interface {
	Classify(utterance string, current filter.FilterSet, session store.SessionContext) Verdict
}

var defaultCheaperPhrases = []string{
	// English
	"cheaper", "cheapest", "less expensive", "more affordable", "lower price",
	"lower priced", "budget option", "something cheaper",
	// Albanian
	"më lirë", "më të lirë", "me lire", "më ekonomike", "me ekonomike", "më pak të shtrenjtë",
}

var defaultAckPhrases = []string{
	// English
	"yes", "yeah", "yep", "sure", "ok", "okay", "show me", "show it", "details",
	"more details", "tell me more", "more info", "that one", "i like it", "sounds good",
	// Albanian
	"po", "mirë", "mire", "në rregull", "ne rregull", "më trego", "me trego", "detaje",
	"më shumë", "dakord",
}

// KeywordClassifier is the default Classifier, driven by phrase lists in
// English and Albanian.
type KeywordClassifier struct {
	cheaperPhrases []string
	ackPhrases     []string
	maxAckWords    int
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		cheaperPhrases: defaultCheaperPhrases,
		ackPhrases:     defaultAckPhrases,
		maxAckWords:    6,
	}
}

// Classify applies the rules in priority order:
//  1. an explicit product type starts a new search
//  2. without previous results nothing can be followed up
//  3. a cheaper-alternative phrase (without an explicit amount)
//  4. a constraint-bearing cue: price wording, color, material or size
//  5. a short acknowledgement or detail request
func (c *KeywordClassifier) Classify(utterance string, current filter.FilterSet, session store.SessionContext) Verdict {
	if current.ProductType != "" {
		return Verdict{Kind: KindNew, Reason: "explicit product type " + current.ProductType}
	}
	if len(session.LastProducts) == 0 {
		return Verdict{Kind: KindNew, Reason: "no previous results"}
	}

	text := filter.NewText(utterance)

	if !current.HasPrice() && text.ContainsAny(c.cheaperPhrases) {
		return Verdict{Kind: KindCheaper, Reason: "cheaper alternative requested"}
	}

	switch {
	case current.HasPrice() || filter.HasPriceCue(utterance):
		return Verdict{Kind: KindRefinement, Reason: "price constraint"}
	case current.Color != "":
		return Verdict{Kind: KindRefinement, Reason: "color constraint"}
	case current.Material != "":
		return Verdict{Kind: KindRefinement, Reason: "material constraint"}
	case current.Size != "":
		return Verdict{Kind: KindRefinement, Reason: "size constraint"}
	}

	if len(filter.Tokenize(utterance)) <= c.maxAckWords && text.ContainsAny(c.ackPhrases) {
		return Verdict{Kind: KindAcknowledgement, Reason: "acknowledgement"}
	}

	return Verdict{Kind: KindNew, Reason: "no follow-up cue"}
}
