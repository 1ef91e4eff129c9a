package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/pkg/cache"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/rag/intent"
	"albi-mall-assistant-be/pkg/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	products []catalog.Product
	err      error
	calls    int
}

func (s *stubProvider) Search(ctx context.Context, query string, limit int) ([]catalog.Product, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.products, nil
}

func sampleCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	products, err := catalog.Sample()
	require.NoError(t, err)
	c, err := catalog.New(products)
	require.NoError(t, err)
	return c
}

func newTestRetriever(t *testing.T, provider search.Provider) (*Retriever, *catalog.Catalog) {
	t.Helper()
	c := sampleCatalog(t)
	if provider == nil {
		provider = search.NewCatalogProvider(c)
	}
	store := cache.NewMemoryStore(time.Minute, time.Minute)
	return NewRetriever(c, provider, store, Config{}, logger.NewNopLogger()), c
}

func providerPlan(query string, fs filter.FilterSet) intent.Plan {
	return intent.Plan{Source: intent.SourceProvider, Query: query, Filters: fs}
}

func TestRetrieve_RedBagUnder100(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	fs := filter.FilterSet{Color: "red", MaxPrice: filter.Price(100)}.WithProductType("bag")
	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("red bag under 100 bag", fs)})

	require.NotEmpty(t, res.Products)
	for _, p := range res.Products {
		assert.LessOrEqual(t, p.Price, 100.0, p.ID)
		assert.Equal(t, "bags", p.Category, p.ID)
		assert.True(t, hasColor(p, "red"), p.ID)
	}
	assert.Contains(t, catalog.IDs(res.Products), "mk-002")
	assert.NotContains(t, catalog.IDs(res.Products), "mk-004")
}

func TestRetrieve_StrictExclusion(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	cases := []struct {
		name  string
		query string
		fs    filter.FilterSet
	}{
		{"color and budget", "red", filter.FilterSet{Color: "red", MaxPrice: filter.Price(100)}},
		{"blue via synonym", "blue bag", filter.FilterSet{Color: "blue"}},
		{"price range", "bag", filter.FilterSet{MinPrice: filter.Price(100), MaxPrice: filter.Price(200)}},
		{"subcategory", "tote", filter.FilterSet{}.WithProductType("tote")},
		{"wallet under 50", "wallet", filter.FilterSet{MaxPrice: filter.Price(50)}.WithProductType("wallet")},
		{"material", "suede", filter.FilterSet{Material: "suede"}},
		{"occasion", "bag for work", filter.FilterSet{Occasion: "work"}},
		{"size", "small bag", filter.FilterSet{Size: "small"}},
		{"brand", "michael kors", filter.FilterSet{Brand: "michael kors"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := r.Retrieve(context.Background(), Request{Plan: providerPlan(tc.query, tc.fs)})
			assert.LessOrEqual(t, len(res.Products), 5)
			for _, p := range res.WorkingSet {
				assert.Empty(t, failedConstraint(p, tc.fs), "%s violates %s", p.ID, failedConstraint(p, tc.fs))
				if tc.fs.MaxPrice != nil {
					assert.LessOrEqual(t, p.Price, *tc.fs.MaxPrice)
				}
				if tc.fs.MinPrice != nil {
					assert.GreaterOrEqual(t, p.Price, *tc.fs.MinPrice)
				}
			}
		})
	}
}

func TestRetrieve_BlueIncludesNavy(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("blue", filter.FilterSet{Color: "blue"})})
	ids := catalog.IDs(res.WorkingSet)
	assert.Contains(t, ids, "mk-006") // navy backpack
	assert.Contains(t, ids, "mk-011")
}

func TestRetrieve_UnavailableBrand(t *testing.T) {
	provider := &stubProvider{}
	r, _ := newTestRetriever(t, provider)

	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("gucci bag", filter.FilterSet{Brand: "gucci"})})

	assert.True(t, res.BrandUnavailable)
	assert.Equal(t, "gucci", res.RequestedBrand)
	assert.Empty(t, res.Products)
	assert.Equal(t, 0, provider.calls)
}

func TestRetrieve_DedupesAndBoundsToK(t *testing.T) {
	c := sampleCatalog(t)
	all := c.All()
	dup := append(append([]catalog.Product(nil), all...), all...)

	r := NewRetriever(c, &stubProvider{products: dup}, nil, Config{MaxResults: 5}, logger.NewNopLogger())
	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("leather", filter.FilterSet{Material: "leather"})})

	require.Len(t, res.Products, 5)
	seen := map[string]bool{}
	for _, p := range res.WorkingSet {
		assert.False(t, seen[p.ID], "duplicate %s", p.ID)
		seen[p.ID] = true
	}
}

func TestRetrieve_EmptyFiltersNeedRelevance(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("hello", filter.FilterSet{})})
	assert.Empty(t, res.Products)

	res = r.Retrieve(context.Background(), Request{Plan: providerPlan("crossbody", filter.FilterSet{})})
	require.NotEmpty(t, res.Products)
	assert.Equal(t, "crossbody", res.Products[0].Subcategory)
}

func TestRetrieve_SessionSource(t *testing.T) {
	provider := &stubProvider{}
	r, c := newTestRetriever(t, provider)

	base := c.ByCategory("bags", 0)
	plan := intent.Plan{
		Source:  intent.SourceSession,
		Query:   "red",
		Filters: filter.FilterSet{Color: "red"},
		Base:    base,
	}
	res := r.Retrieve(context.Background(), Request{Plan: plan})

	assert.Equal(t, 0, provider.calls)
	require.NotEmpty(t, res.Products)
	for _, p := range res.Products {
		assert.Equal(t, "bags", p.Category)
		assert.True(t, hasColor(p, "red"))
	}
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "from previous results using session context")
}

func TestRetrieve_ProviderErrorIsEmpty(t *testing.T) {
	r, _ := newTestRetriever(t, &stubProvider{err: errors.New("connection refused")})

	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("tote", filter.FilterSet{})})

	assert.Empty(t, res.Products)
	assert.False(t, res.BrandUnavailable)
	assert.NotEmpty(t, res.Notes)
}

func TestRetrieve_CachesProviderResults(t *testing.T) {
	c := sampleCatalog(t)
	provider := &stubProvider{products: c.All()}
	r := NewRetriever(c, provider, cache.NewMemoryStore(time.Minute, time.Minute), Config{}, logger.NewNopLogger())

	plan := providerPlan("tote", filter.FilterSet{}.WithProductType("tote"))
	first := r.Retrieve(context.Background(), Request{Plan: plan})
	second := r.Retrieve(context.Background(), Request{Plan: plan})

	assert.Equal(t, 1, provider.calls)
	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)
	assert.Equal(t, catalog.IDs(first.Products), catalog.IDs(second.Products))
}

func TestRetrieve_RoseGoldKeepsGoldWatch(t *testing.T) {
	r, _ := newTestRetriever(t, nil)

	fs := filter.NewExtractor([]string{"Michael Kors"}, logger.NewNopLogger()).Extract("rose gold watch")
	require.Equal(t, "gold", fs.Color)

	res := r.Retrieve(context.Background(), Request{Plan: providerPlan("rose gold watch", fs)})
	assert.Contains(t, catalog.IDs(res.Products), "mk-013")
}
