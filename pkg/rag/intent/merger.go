package intent

import (
	"strings"

	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/store"
)

// Source says where the retriever takes its candidates from.
type Source string

const (
	SourceProvider    Source = "provider"    // fresh query to the search provider
	SourceSession     Source = "session"     // the session's working set
	SourceRecommended Source = "recommended" // what the shopper saw last
)

// Plan is the merged view of one turn.
type Plan struct {
	Verdict Verdict
	Filters filter.FilterSet
	Source  Source
	Query   string

	// Base holds the in-process candidates for session-sourced plans.
	Base []catalog.Product

	// Reference is the product a cheaper alternative must undercut.
	Reference *catalog.Product
}

type Merger struct {
	classifier Classifier
	logger     logger.ILogger
}

func NewMerger(classifier Classifier, log logger.ILogger) *Merger {
	return &Merger{classifier: classifier, logger: log}
}

// Plan classifies the turn and builds the effective filters: the session's
// last filters overlaid with everything the current turn resolved. Follow-ups
// without a product type stay anchored to the session's locked type.
func (m *Merger) Plan(utterance string, current filter.FilterSet, session store.SessionContext) Plan {
	verdict := m.classifier.Classify(utterance, current, session)

	merged := session.LastFilters.Overlay(current)
	if verdict.FollowUp() && merged.ProductType == "" && session.LockedProductType != "" {
		merged = merged.WithProductType(session.LockedProductType)
	}

	plan := Plan{Verdict: verdict}

	switch verdict.Kind {
	case KindRefinement:
		plan.Source = SourceSession
		plan.Base = session.LastProducts

	case KindAcknowledgement:
		plan.Source = SourceRecommended
		plan.Base = session.LastRecommended
		if len(plan.Base) == 0 {
			plan.Source = SourceSession
			plan.Base = session.LastProducts
		}

	case KindCheaper:
		plan.Source = SourceProvider
		ref := cheapest(session.LastRecommended)
		if ref == nil {
			ref = cheapest(session.LastProducts)
		}
		plan.Reference = ref
		if ref != nil {
			merged.MinPrice = nil
			merged.MaxPrice = filter.Price(ref.Price - 0.01)
			if !merged.HasItemClass() {
				merged.Category = strings.ToLower(ref.Category)
			}
		}

	default:
		plan.Source = SourceProvider
	}

	plan.Filters = merged
	plan.Query = buildQuery(utterance, merged)

	m.logger.Info("MERGER", "Turn planned", map[string]interface{}{
		"kind":    string(verdict.Kind),
		"reason":  verdict.Reason,
		"source":  string(plan.Source),
		"filters": merged.Describe(),
		"query":   plan.Query,
	})

	return plan
}

// buildQuery combines the normalized utterance with the filter words it
// does not already contain.
func buildQuery(utterance string, fs filter.FilterSet) string {
	query := filter.NormalizeQuery(utterance)
	have := make(map[string]bool)
	for _, tok := range strings.Fields(query) {
		have[tok] = true
	}

	parts := []string{query}
	for _, term := range fs.SearchTerms() {
		if !have[term] {
			parts = append(parts, term)
			have[term] = true
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

func cheapest(products []catalog.Product) *catalog.Product {
	var best *catalog.Product
	for i := range products {
		if best == nil || products[i].Price < best.Price {
			p := products[i]
			best = &p
		}
	}
	return best
}
