package search

import (
	"context"
	"sort"

	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
)

// CatalogProvider searches the in-memory catalog. Products are ranked by how
// many query keywords they contain; products without a hit follow in catalog
// order so the retriever's constraints can still select from them.
type CatalogProvider struct {
	catalog *catalog.Catalog
}

var _ Provider = (*CatalogProvider)(nil)

func NewCatalogProvider(c *catalog.Catalog) *CatalogProvider {
	return &CatalogProvider{catalog: c}
}

func (p *CatalogProvider) Search(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	products := p.catalog.All()
	keywords := filter.Keywords(query)

	type hit struct {
		product catalog.Product
		hits    int
	}
	hits := make([]hit, 0, len(products))
	for _, prod := range products {
		text := filter.NewText(prod.SearchableText())
		n := 0
		for _, kw := range keywords {
			if text.Contains(kw) {
				n++
			}
		}
		hits = append(hits, hit{product: prod, hits: n})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].hits > hits[j].hits })
	out := make([]catalog.Product, len(hits))
	for i, h := range hits {
		out[i] = h.product
	}
	return truncate(out, limit), nil
}

func truncate(products []catalog.Product, limit int) []catalog.Product {
	if limit > 0 && len(products) > limit {
		return products[:limit]
	}
	return products
}
