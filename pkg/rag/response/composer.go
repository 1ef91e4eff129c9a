package response

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"albi-mall-assistant-be/internal/pkg/logger"
	"albi-mall-assistant-be/pkg/cache"
	"albi-mall-assistant-be/pkg/catalog"
	"albi-mall-assistant-be/pkg/llm"
	"albi-mall-assistant-be/pkg/rag/filter"
	"albi-mall-assistant-be/pkg/rag/intent"
	"albi-mall-assistant-be/pkg/store"
)

type Recommendation struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Highlight string `json:"highlight"`
}

// Output is the assistant's reply for one turn.
type Output struct {
	AssistantText       string           `json:"assistant_text"`
	RecommendedProducts []Recommendation `json:"recommended_products"`
	AuditNotes          string           `json:"audit_notes,omitempty"`

	UsedFallback bool   `json:"-"`
	Template     string `json:"-"`
	FromCache    bool   `json:"-"`
}

// Input carries everything the composer may talk about. Candidates is the
// only source of recommendations.
type Input struct {
	Utterance  string
	Query      string
	Candidates []catalog.Product
	Filters    filter.FilterSet
	Verdict    intent.Verdict
	Reference  *catalog.Product

	History             []store.Message
	PreviousRecommended []catalog.Product

	BrandUnavailable bool
	RequestedBrand   string

	Notes []string
}

type Config struct {
	MaxRecommendations int
	Timeout            time.Duration
	Temperature        float64
	MaxTokens          int
	CacheTTL           time.Duration
	StoreBrand         string
	AssistantName      string
}

func (c Config) withDefaults() Config {
	if c.MaxRecommendations <= 0 {
		c.MaxRecommendations = 5
	}
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = 500
	}
	if c.StoreBrand == "" {
		c.StoreBrand = "Michael Kors"
	}
	if c.AssistantName == "" {
		c.AssistantName = "Albi Mall"
	}
	return c
}

type Composer struct {
	llmProvider llm.LLMProvider
	cache       cache.Store
	cfg         Config
	logger      logger.ILogger
}

// NewComposer accepts a nil provider; every turn then takes the templated path.
func NewComposer(llmProvider llm.LLMProvider, store cache.Store, cfg Config, log logger.ILogger) *Composer {
	return &Composer{
		llmProvider: llmProvider,
		cache:       store,
		cfg:         cfg.withDefaults(),
		logger:      log,
	}
}

// Compose always returns a reply with non-empty text and at most
// MaxRecommendations products, all taken from in.Candidates.
func (c *Composer) Compose(ctx context.Context, in Input) Output {
	if in.BrandUnavailable {
		return c.templated(in, "requested brand is not in the catalog")
	}
	if c.llmProvider == nil {
		return c.templated(in, "text generation disabled")
	}

	key := cache.ResponseKey(in.Query, catalog.IDs(in.Candidates))
	if c.cache != nil {
		var cached Output
		if err := cache.GetJSON(ctx, c.cache, key, &cached); err == nil {
			cached.FromCache = true
			cached.AuditNotes = joinNotes(in.Notes, cached.AuditNotes)
			return cached
		}
	}

	genCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	raw, err := c.llmProvider.Chat(genCtx, c.buildMessages(in),
		llm.WithTemperature(c.cfg.Temperature),
		llm.WithMaxTokens(c.cfg.MaxTokens),
		llm.WithJSONOutput(),
	)
	if err != nil {
		reason := failureReason(genCtx, err)
		c.logger.Warn("COMPOSER", "Text generation failed, using template", map[string]interface{}{
			"reason": reason,
			"error":  err.Error(),
		})
		return c.templated(in, reason)
	}
	if strings.TrimSpace(raw) == "" {
		return c.templated(in, "text generation returned an empty reply")
	}

	out, err := parseReply(raw, in.Candidates, c.cfg.MaxRecommendations)
	if err != nil {
		c.logger.Warn("COMPOSER", "Unparseable reply, using raw text", map[string]interface{}{
			"error": err.Error(),
		})
		return Output{
			AssistantText:       strings.TrimSpace(raw),
			RecommendedProducts: recommendAll(in.Candidates, c.cfg.MaxRecommendations),
			AuditNotes:          joinNotes(in.Notes, "Response generated from raw text due to JSON parsing failure"),
			UsedFallback:        true,
			Template:            "raw_text",
		}
	}

	if c.cache != nil {
		if err := cache.SetJSON(ctx, c.cache, key, out, c.cfg.CacheTTL); err != nil {
			c.logger.Warn("CACHE", "Response cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	out.AuditNotes = joinNotes(in.Notes, out.AuditNotes)
	return out
}

func (c *Composer) templated(in Input, reason string) Output {
	out, name := c.fallback(in)
	out.UsedFallback = true
	out.Template = name
	out.AuditNotes = joinNotes(in.Notes, out.AuditNotes, fmt.Sprintf("%s; used template response (%s)", reason, name))
	if out.RecommendedProducts == nil {
		out.RecommendedProducts = []Recommendation{}
	}

	c.logger.Debug("COMPOSER", "Templated reply", map[string]interface{}{
		"template":   name,
		"reason":     reason,
		"candidates": len(in.Candidates),
	})
	return out
}

func failureReason(ctx context.Context, err error) string {
	switch {
	case errors.Is(err, llm.ErrRateLimited):
		return "text generation rate-limited"
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "text generation timed out"
	case errors.Is(err, context.Canceled):
		return "text generation cancelled"
	default:
		return "text generation failed"
	}
}

func joinNotes(notes []string, extra ...string) string {
	var parts []string
	for _, n := range append(append([]string(nil), notes...), extra...) {
		if n = strings.TrimSpace(n); n != "" {
			parts = append(parts, n)
		}
	}
	return strings.Join(parts, "; ")
}
