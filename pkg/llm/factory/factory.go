package factory

import (
	"fmt"
	"time"

	"albi-mall-assistant-be/pkg/llm"
	"albi-mall-assistant-be/pkg/llm/ollama"
	"albi-mall-assistant-be/pkg/llm/openai"
)

type Config struct {
	Provider string
	Model    string
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
}

// NewLLMProvider returns nil, nil for provider "none" so callers run on the
// templated fallback alone.
func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "groq", "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("%s provider requires an api key", cfg.Provider)
		}
		return openai.NewProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	case "ollama":
		return ollama.NewProvider(cfg.BaseURL, cfg.Model, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
