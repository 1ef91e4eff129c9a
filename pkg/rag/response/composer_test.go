package response

import (
	"context"
	"errors"
	"testing"
	"time"

	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/pkg/cache"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/llm"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/rag/intent"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	reply string
	err   error
	block bool
	calls int
	last  []llm.Message
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	f.last = history
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

func products(t *testing.T, ids ...string) []catalog.Product {
	t.Helper()
	all, err := catalog.Sample()
	require.NoError(t, err)
	c, err := catalog.New(all)
	require.NoError(t, err)

	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		p, err := c.Get(id)
		require.NoError(t, err)
		out = append(out, p)
	}
	return out
}

func newComposer(provider llm.LLMProvider) *Composer {
	return NewComposer(provider, cache.NewMemoryStore(time.Minute, time.Minute), Config{Timeout: 50 * time.Millisecond}, logger.NewNopLogger())
}

func assertGrounded(t *testing.T, out Output, candidates []catalog.Product) {
	t.Helper()
	assert.NotEmpty(t, out.AssistantText)
	assert.LessOrEqual(t, len(out.RecommendedProducts), 5)
	ids := map[string]bool{}
	for _, p := range candidates {
		ids[p.ID] = true
	}
	for _, r := range out.RecommendedProducts {
		assert.True(t, ids[r.ID], "recommended %s is not a candidate", r.ID)
	}
}

func TestCompose_PrimaryPath(t *testing.T) {
	cands := products(t, "mk-002", "mk-004")
	fake := &fakeLLM{reply: "```json\n" + `{"assistant_text":"The Marilyn tote is a lovely red pick.","recommended_products":[{"id":"mk-002","title":"","highlight":""},{"id":"mk-999","title":"Ghost"}],"audit_notes":"filtered by color"}` + "\n```"}
	c := newComposer(fake)

	out := c.Compose(context.Background(), Input{Utterance: "red tote", Query: "red tote", Candidates: cands, History: nil})

	assertGrounded(t, out, cands)
	assert.False(t, out.UsedFallback)
	assert.Equal(t, "The Marilyn tote is a lovely red pick.", out.AssistantText)
	require.Len(t, out.RecommendedProducts, 1)
	assert.Equal(t, "Marilyn Medium Saffiano Tote", out.RecommendedProducts[0].Title)
	assert.NotEmpty(t, out.RecommendedProducts[0].Highlight)
	assert.Equal(t, "filtered by color", out.AuditNotes)

	require.Len(t, fake.last, 2)
	assert.Equal(t, llm.RoleSystem, fake.last[0].Role)
	assert.Contains(t, fake.last[0].Content, "mk-004")
	assert.Equal(t, "red tote", fake.last[1].Content)
}

func TestCompose_CachesPrimaryReplies(t *testing.T) {
	cands := products(t, "mk-002")
	fake := &fakeLLM{reply: `{"assistant_text":"Here it is.","recommended_products":[{"id":"mk-002"}]}`}
	c := newComposer(fake)

	in := Input{Utterance: "red tote", Query: "red tote", Candidates: cands}
	first := c.Compose(context.Background(), in)
	second := c.Compose(context.Background(), in)

	assert.Equal(t, 1, fake.calls)
	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.AssistantText, second.AssistantText)
}

func TestCompose_MalformedReplyKeepsCandidates(t *testing.T) {
	cands := products(t, "mk-001", "mk-002", "mk-003", "mk-004", "mk-005", "mk-006", "mk-007")
	c := newComposer(&fakeLLM{reply: "Sure! I think the Jet Set tote would suit you."})

	out := c.Compose(context.Background(), Input{Utterance: "bags", Query: "bags", Candidates: cands})

	assertGrounded(t, out, cands)
	assert.True(t, out.UsedFallback)
	assert.Equal(t, "Sure! I think the Jet Set tote would suit you.", out.AssistantText)
	assert.Len(t, out.RecommendedProducts, 5)
	assert.Contains(t, out.AuditNotes, "JSON parsing failure")
}

func TestCompose_RateLimited(t *testing.T) {
	cands := products(t, "mk-002", "mk-012", "mk-020")
	c := newComposer(&fakeLLM{err: &llm.StatusError{Provider: "openai", StatusCode: 429}})

	out := c.Compose(context.Background(), Input{Utterance: "bags under 100", Query: "bags under 100", Candidates: cands})

	assertGrounded(t, out, cands)
	assert.True(t, out.UsedFallback)
	assert.Equal(t, "multi", out.Template)
	assert.Contains(t, out.AuditNotes, "rate-limited")
	assert.Contains(t, out.AssistantText, "$90 to $98")
}

func TestCompose_Timeout(t *testing.T) {
	cands := products(t, "mk-002")
	c := newComposer(&fakeLLM{block: true})

	start := time.Now()
	out := c.Compose(context.Background(), Input{Utterance: "red tote", Query: "red tote", Candidates: cands})

	assert.Less(t, time.Since(start), 2*time.Second)
	assertGrounded(t, out, cands)
	assert.Equal(t, "single", out.Template)
	assert.Contains(t, out.AuditNotes, "timed out")
	assert.Contains(t, out.AssistantText, "Marilyn Medium Saffiano Tote")
}

func TestFallbackBranches(t *testing.T) {
	tote := products(t, "mk-002")
	bags := products(t, "mk-002", "mk-012", "mk-019")
	satchel := products(t, "mk-004")[0]

	cases := []struct {
		name     string
		in       Input
		template string
		contains string
		recs     int
	}{
		{
			name:     "detail after one recommendation",
			in:       Input{Utterance: "yes", Verdict: intent.Verdict{Kind: intent.KindAcknowledgement}, Candidates: tote, PreviousRecommended: tote},
			template: "detail",
			contains: "Here are the details for the Marilyn Medium Saffiano Tote",
			recs:     1,
		},
		{
			name:     "cheaper alternative found",
			in:       Input{Utterance: "anything cheaper?", Verdict: intent.Verdict{Kind: intent.KindCheaper}, Candidates: bags, Reference: &satchel},
			template: "cheaper",
			contains: "less than the Hamilton Legacy Satchel",
			recs:     3,
		},
		{
			name:     "no cheaper alternative",
			in:       Input{Utterance: "cheaper", Verdict: intent.Verdict{Kind: intent.KindCheaper}, Reference: &tote[0]},
			template: "cheaper",
			contains: "couldn't find anything cheaper",
			recs:     0,
		},
		{
			name:     "no match",
			in:       Input{Utterance: "green wallet under 20", Filters: filter.FilterSet{Color: "green", MaxPrice: filter.Price(20)}},
			template: "no_match",
			contains: "color=green",
			recs:     0,
		},
		{
			name:     "brand not carried",
			in:       Input{Utterance: "gucci bag", BrandUnavailable: true, RequestedBrand: "gucci", Candidates: bags},
			template: "no_match",
			contains: "we don't carry Gucci products",
			recs:     0,
		},
		{
			name:     "single",
			in:       Input{Utterance: "red tote", Candidates: tote},
			template: "single",
			contains: "for $90",
			recs:     1,
		},
		{
			name:     "multi",
			in:       Input{Utterance: "bags", Candidates: bags},
			template: "multi",
			contains: "I found 3 options",
			recs:     3,
		},
	}

	c := newComposer(nil)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out := c.Compose(context.Background(), tc.in)

			assert.Equal(t, tc.template, out.Template)
			assert.True(t, out.UsedFallback)
			assert.Contains(t, out.AssistantText, tc.contains)
			assert.Len(t, out.RecommendedProducts, tc.recs)
			if !tc.in.BrandUnavailable {
				assertGrounded(t, out, tc.in.Candidates)
			}
		})
	}
}

func TestCompose_BrandUnavailableSkipsProvider(t *testing.T) {
	fake := &fakeLLM{reply: `{"assistant_text":"We have Gucci!"}`}
	c := newComposer(fake)

	out := c.Compose(context.Background(), Input{Utterance: "gucci", BrandUnavailable: true, RequestedBrand: "louis vuitton"})

	assert.Equal(t, 0, fake.calls)
	assert.Contains(t, out.AssistantText, "Louis Vuitton")
	assert.Contains(t, out.AuditNotes, "Brand integrity maintained")
	assert.Empty(t, out.RecommendedProducts)
}

func TestCompose_ProviderErrorWithNoCandidates(t *testing.T) {
	c := newComposer(&fakeLLM{err: errors.New("connection reset")})

	out := c.Compose(context.Background(), Input{Utterance: "something", Notes: []string{"search provider unavailable; no candidates retrieved"}})

	assert.NotEmpty(t, out.AssistantText)
	assert.Empty(t, out.RecommendedProducts)
	assert.Equal(t, "no_match", out.Template)
	assert.Contains(t, out.AuditNotes, "search provider unavailable")
	assert.Contains(t, out.AuditNotes, "text generation failed")
}

func TestHighlight(t *testing.T) {
	p := catalog.Product{Material: "Leather", Subcategory: "tote", Features: []string{"Gold-tone hardware", "Spacious interior"}}
	assert.Equal(t, "leather, spacious interior, spacious and versatile", Highlight(p))

	assert.Equal(t, "", Highlight(catalog.Product{}))
}

func TestDetailReply_SkipsMissingFields(t *testing.T) {
	bare := catalog.Product{ID: "mk-100", Name: "Plain Pouch", Subcategory: "pouch", Price: 40}
	c := newComposer(nil)

	out := c.Compose(context.Background(), Input{
		Utterance:           "yes",
		Verdict:             intent.Verdict{Kind: intent.KindAcknowledgement},
		Candidates:          []catalog.Product{bare},
		PreviousRecommended: []catalog.Product{bare},
	})

	assert.Equal(t, "detail", out.Template)
	assert.Contains(t, out.AssistantText, "a pouch for $40")
	assert.NotContains(t, out.AssistantText, "  ")
}
