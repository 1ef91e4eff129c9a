package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.App.Port)
	assert.Equal(t, time.Hour, cfg.Assistant.SessionTTL)
	assert.Equal(t, 10, cfg.Assistant.SessionHistorySize)
	assert.Equal(t, 5, cfg.Assistant.MaxRecommendations)
	assert.Equal(t, "memory", cfg.Cache.Driver)
	assert.Equal(t, "sample", cfg.Catalog.Source)
	assert.Equal(t, "local", cfg.Search.Provider)
	assert.Equal(t, 15*time.Second, cfg.Ai.LLMTimeout)
	assert.False(t, cfg.Tracing.Enabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SEARCH_TIMEOUT", "3")
	t.Setenv("LLM_TEMPERATURE", "0.2")
	t.Setenv("NATS_ENABLED", "true")
	t.Setenv("IN_CATALOG_BRANDS", "Michael Kors, MICHAEL Michael Kors ,")
	t.Setenv("MAX_RECOMMENDATIONS", "not-a-number")

	cfg := Load()

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 30*time.Minute, cfg.Assistant.SessionTTL)
	assert.Equal(t, 3*time.Second, cfg.Search.Timeout)
	assert.InDelta(t, 0.2, cfg.Ai.LLMTemperature, 1e-9)
	assert.True(t, cfg.App.NatsEnabled)
	assert.Equal(t, []string{"Michael Kors", "MICHAEL Michael Kors"}, cfg.Catalog.InCatalogBrands)
	assert.Equal(t, 5, cfg.Assistant.MaxRecommendations)
}
