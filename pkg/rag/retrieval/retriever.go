package retrieval

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/pkg/cache"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/intent"
	"albi-mall-assistant-be/pkg/search"
)

type Config struct {
	MaxResults     int           // K
	WorkingSetSize int           // cap on the list kept in the session
	FetchLimit     int           // documents requested from the provider
	SearchTimeout  time.Duration // deadline for one provider call
	CacheTTL       time.Duration
}

func (c Config) withDefaults() Config {
	if c.MaxResults <= 0 {
		c.MaxResults = 5
	}
	if c.WorkingSetSize <= 0 {
		c.WorkingSetSize = 50
	}
	if c.FetchLimit <= 0 {
		c.FetchLimit = 50
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = 10 * time.Second
	}
	return c
}

type Request struct {
	Plan intent.Plan
}

type Result struct {
	// Products is the ranked top K.
	Products []catalog.Product
	// WorkingSet is every candidate that survived exclusion, ranked and capped.
	WorkingSet []catalog.Product

	BrandUnavailable bool
	RequestedBrand   string

	FromCache bool
	Notes     []string
}

type Retriever struct {
	catalog  *catalog.Catalog
	provider search.Provider
	cache    cache.Store
	cfg      Config
	logger   logger.ILogger
}

func NewRetriever(c *catalog.Catalog, provider search.Provider, store cache.Store, cfg Config, log logger.ILogger) *Retriever {
	return &Retriever{
		catalog:  c,
		provider: provider,
		cache:    store,
		cfg:      cfg.withDefaults(),
		logger:   log,
	}
}

// Retrieve never fails: provider errors become an empty result with a note.
func (r *Retriever) Retrieve(ctx context.Context, req Request) Result {
	plan := req.Plan
	fs := plan.Filters

	if fs.Brand != "" && !r.catalog.HasBrand(fs.Brand) {
		r.logger.Info("RETRIEVER", "Requested brand not in catalog", map[string]interface{}{
			"brand": fs.Brand,
		})
		return Result{
			BrandUnavailable: true,
			RequestedBrand:   fs.Brand,
			Notes:            []string{fmt.Sprintf("brand %q is not carried by this catalog", fs.Brand)},
		}
	}

	var res Result
	var candidates []catalog.Product
	fromProvider := plan.Source == intent.SourceProvider

	if fromProvider {
		candidates, res.FromCache = r.search(ctx, plan.Query, &res)
	} else {
		candidates = plan.Base
	}

	ranked := r.rank(candidates, plan, fromProvider)

	if !fromProvider {
		res.Notes = append(res.Notes, fmt.Sprintf("Filtered %d products from previous results using session context", len(ranked)))
	}

	res.WorkingSet = truncate(ranked, r.cfg.WorkingSetSize)
	res.Products = truncate(ranked, r.cfg.MaxResults)

	r.logger.Debug("RETRIEVER", "Candidates retrieved", map[string]interface{}{
		"source":     string(plan.Source),
		"candidates": len(candidates),
		"kept":       len(ranked),
		"returned":   catalog.IDs(res.Products),
		"filters":    fs.Describe(),
	})

	return res
}

// search asks the provider, going through the cache first.
func (r *Retriever) search(ctx context.Context, query string, res *Result) ([]catalog.Product, bool) {
	key := cache.SearchKey(query, r.cfg.FetchLimit)
	if r.cache != nil {
		var cached []catalog.Product
		err := cache.GetJSON(ctx, r.cache, key, &cached)
		if err == nil {
			return cached, true
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			r.logger.Warn("CACHE", "Search cache read failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	searchCtx, cancel := context.WithTimeout(ctx, r.cfg.SearchTimeout)
	defer cancel()

	products, err := r.provider.Search(searchCtx, query, r.cfg.FetchLimit)
	if err != nil {
		r.logger.Error("RETRIEVER", "Search provider failed", map[string]interface{}{
			"query": query,
			"error": err,
		})
		res.Notes = append(res.Notes, "search provider unavailable; no candidates retrieved")
		return nil, false
	}

	if r.cache != nil {
		if err := cache.SetJSON(ctx, r.cache, key, products, r.cfg.CacheTTL); err != nil {
			r.logger.Warn("CACHE", "Search cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return products, false
}

type scored struct {
	product catalog.Product
	score   int
}

// rank drops every candidate that fails a constraint, scores the rest and
// returns them by descending score with duplicates removed.
func (r *Retriever) rank(candidates []catalog.Product, plan intent.Plan, fromProvider bool) []catalog.Product {
	fs := plan.Filters
	s := newScorer(plan.Query, fs)
	requirePositive := fromProvider && fs.IsEmpty()

	seen := make(map[string]bool, len(candidates))
	kept := make([]scored, 0, len(candidates))
	for _, p := range candidates {
		if seen[p.ID] {
			continue
		}
		if !Satisfies(p, fs) {
			continue
		}
		sc := s.score(p)
		if requirePositive && sc <= 0 {
			continue
		}
		seen[p.ID] = true
		kept = append(kept, scored{product: p, score: sc})
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].score > kept[j].score })

	out := make([]catalog.Product, len(kept))
	for i, k := range kept {
		out[i] = k.product
	}
	return catalog.CloneAll(out)
}

func truncate(products []catalog.Product, n int) []catalog.Product {
	if n > 0 && len(products) > n {
		return products[:n]
	}
	return products
}
