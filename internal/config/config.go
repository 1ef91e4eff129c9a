package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Assistant AssistantConfig
	Cache     CacheConfig
	Catalog   CatalogConfig
	Search    SearchConfig
	Ai        AIConfig
	Tracing   TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	TurnLogFilePath    string
	CorsAllowedOrigins string
	NatsURL            string
	NatsEnabled        bool
	RedisURL           string
	TurnTopic          string
}

type AssistantConfig struct {
	SessionTTL         time.Duration
	SessionHistorySize int
	MaxRecommendations int
	WorkingSetSize     int
}

type CacheConfig struct {
	Driver          string // "memory" or "redis"
	TTL             time.Duration
	CleanupInterval time.Duration
	KeyPrefix       string
}

type CatalogConfig struct {
	Source          string // "sample", "file" or "postgres"
	Path            string
	DBConnection    string
	InCatalogBrands []string
}

type SearchConfig struct {
	Provider      string // "local" or "trieve"
	TrieveBaseURL string
	TrieveAPIKey  string
	TrieveDataset string
	Timeout       time.Duration
	FetchLimit    int
}

type AIConfig struct {
	LLMProvider    string // "groq", "openai", "ollama" or "none"
	LLMBaseURL     string
	LLMAPIKey      string
	LLMModel       string
	LLMTimeout     time.Duration
	LLMTemperature float64
	LLMMaxTokens   int
}

type TracingConfig struct {
	Enabled  bool
	Endpoint string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			TurnLogFilePath:    getEnv("TURN_LOG_FILE_PATH", "logs/turns.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			NatsEnabled:        getEnvAsBool("NATS_ENABLED", false),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			TurnTopic:          getEnv("CHAT_TURN_TOPIC_NAME", "CHAT_TURN_COMPLETED"),
		},
		Assistant: AssistantConfig{
			SessionTTL:         getEnvAsDuration("SESSION_TTL", time.Hour),
			SessionHistorySize: getEnvAsInt("SESSION_HISTORY_SIZE", 10),
			MaxRecommendations: getEnvAsInt("MAX_RECOMMENDATIONS", 5),
			WorkingSetSize:     getEnvAsInt("WORKING_SET_SIZE", 50),
		},
		Cache: CacheConfig{
			Driver:          getEnv("CACHE_DRIVER", "memory"),
			TTL:             getEnvAsDuration("CACHE_TTL", 5*time.Minute),
			CleanupInterval: getEnvAsDuration("CACHE_CLEANUP_INTERVAL", 10*time.Minute),
			KeyPrefix:       getEnv("CACHE_KEY_PREFIX", "albi:"),
		},
		Catalog: CatalogConfig{
			Source:          getEnv("CATALOG_SOURCE", "sample"),
			Path:            getEnv("CATALOG_PATH", ""),
			DBConnection:    getEnv("DB_CONNECTION_STRING", ""),
			InCatalogBrands: getEnvAsSlice("IN_CATALOG_BRANDS", nil),
		},
		Search: SearchConfig{
			Provider:      getEnv("SEARCH_PROVIDER", "local"),
			TrieveBaseURL: getEnv("TRIEVE_BASE_URL", "https://api.trieve.ai"),
			TrieveAPIKey:  getEnv("TRIEVE_API_KEY", ""),
			TrieveDataset: getEnv("TRIEVE_DATASET_ID", ""),
			Timeout:       getEnvAsDuration("SEARCH_TIMEOUT", 10*time.Second),
			FetchLimit:    getEnvAsInt("SEARCH_FETCH_LIMIT", 50),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "groq"),
			LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
			LLMAPIKey:      getEnv("LLM_API_KEY", ""),
			LLMModel:       getEnv("LLM_MODEL", ""),
			LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 15*time.Second),
			LLMTemperature: getEnvAsFloat("LLM_TEMPERATURE", 0.7),
			LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 500),
		},
		Tracing: TracingConfig{
			Enabled:  getEnvAsBool("OTEL_ENABLED", false),
			Endpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvAsSlice(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
