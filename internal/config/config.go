// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Embedding providers accepted by EMBEDDING_PROVIDER.
const (
	EmbeddingProviderVoyage = "voyage"
	EmbeddingProviderOpenAI = "openai"
	EmbeddingProviderGoogle = "google"
	EmbeddingProviderMock   = "mock"
)

// defaultEmbeddingModels are used when EMBEDDING_MODEL is unset. The corpus was embedded with voyage-3.
var defaultEmbeddingModels = map[string]string{
	EmbeddingProviderVoyage: "voyage-3",
	EmbeddingProviderOpenAI: "text-embedding-3-small",
	EmbeddingProviderGoogle: "gemini-embedding-001",
	EmbeddingProviderMock:   "mock",
}

// Configuration errors returned by Load.
var (
	ErrUnsupportedEmbeddingProvider = errors.New("unsupported EMBEDDING_PROVIDER")
	ErrMissingEmbeddingAPIKey       = errors.New("EMBEDDING_PROVIDER_API_KEY is required for the selected embedding provider")
	ErrInvalidValue                 = errors.New("invalid configuration value")
)

// Config holds all application configuration.
type Config struct {
	Port     string
	LogLevel string

	// Corpus datasets, loaded once at startup.
	TranscriptsFile string
	EmbeddingsFile  string

	// Query embedding provider
	EmbeddingProvider       string
	EmbeddingModel          string
	EmbeddingProviderAPIKey string
	EmbeddingBaseURL        string
	EmbeddingTimeout        time.Duration
	// EmbeddingRateLimit is the outbound provider budget in requests per second; <= 0 disables limiting.
	EmbeddingRateLimit float64

	// SearchQueryCacheSize is the number of query embeddings kept in memory; 0 disables the cache.
	SearchQueryCacheSize int
	SearchDefaultLimit   int
	SearchMaxLimit       int

	MaxRequestBodyBytes int64

	// StaticDir serves the presentation layer at / and /static/ when set.
	StaticDir string

	MetricsEnabled      bool
	OtelMetricsExporter string
	OtelTracesExporter  string
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsFloat retrieves an environment variable as a float or returns a default value.
func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

// getEnvAsDuration retrieves an environment variable as a time.Duration (e.g. "10s", "500ms").
// Unlike the other helpers an unparsable value is an error, so a typo cannot silently disable a timeout.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q: %w", ErrInvalidValue, key, valueStr, err)
	}

	return value, nil
}

// DefaultEmbeddingModel returns the model used for provider when EMBEDDING_MODEL is unset.
func DefaultEmbeddingModel(provider string) string {
	return defaultEmbeddingModels[provider]
}

// Load reads configuration from environment variables and returns a Config struct.
// It automatically loads .env file if it exists.
// Returns default values for any missing environment variables and an error for invalid ones.
func Load() (*Config, error) {
	// Load .env file if it exists. Skip logging when absent (e.g. env from secrets/parameter store).
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	provider := strings.ToLower(getEnv("EMBEDDING_PROVIDER", EmbeddingProviderVoyage))
	if _, ok := defaultEmbeddingModels[provider]; !ok {
		return nil, fmt.Errorf("%w: %q (want voyage, openai, google or mock)", ErrUnsupportedEmbeddingProvider, provider)
	}

	apiKey := os.Getenv("EMBEDDING_PROVIDER_API_KEY")
	if apiKey == "" && provider != EmbeddingProviderMock {
		return nil, ErrMissingEmbeddingAPIKey
	}

	timeout, err := getEnvAsDuration("EMBEDDING_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	if timeout <= 0 {
		return nil, fmt.Errorf("%w: EMBEDDING_TIMEOUT must be positive", ErrInvalidValue)
	}

	cacheSize := getEnvAsInt("SEARCH_QUERY_CACHE_SIZE", 1000)
	if cacheSize < 0 {
		return nil, fmt.Errorf("%w: SEARCH_QUERY_CACHE_SIZE must be >= 0", ErrInvalidValue)
	}

	defaultLimit := getEnvAsInt("SEARCH_DEFAULT_LIMIT", 20)
	maxLimit := getEnvAsInt("SEARCH_MAX_LIMIT", 100)

	if defaultLimit <= 0 || maxLimit <= 0 || defaultLimit > maxLimit {
		return nil, fmt.Errorf("%w: need 0 < SEARCH_DEFAULT_LIMIT (%d) <= SEARCH_MAX_LIMIT (%d)",
			ErrInvalidValue, defaultLimit, maxLimit)
	}

	maxBody := getEnvAsInt("MAX_REQUEST_BODY_BYTES", 64*1024)

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		TranscriptsFile: getEnv("TRANSCRIPTS_FILE", "data/transcripts.json"),
		EmbeddingsFile:  getEnv("EMBEDDINGS_FILE", "data/embeddings.json"),

		EmbeddingProvider:       provider,
		EmbeddingModel:          getEnv("EMBEDDING_MODEL", DefaultEmbeddingModel(provider)),
		EmbeddingProviderAPIKey: apiKey,
		EmbeddingBaseURL:        os.Getenv("EMBEDDING_BASE_URL"),
		EmbeddingTimeout:        timeout,
		EmbeddingRateLimit:      getEnvAsFloat("EMBEDDING_RATE_LIMIT", 5),

		SearchQueryCacheSize: cacheSize,
		SearchDefaultLimit:   defaultLimit,
		SearchMaxLimit:       maxLimit,

		MaxRequestBodyBytes: int64(maxBody),

		StaticDir: os.Getenv("STATIC_DIR"),

		MetricsEnabled:      getEnvAsBool("METRICS_ENABLED", true),
		OtelMetricsExporter: os.Getenv("OTEL_METRICS_EXPORTER"),
		OtelTracesExporter:  os.Getenv("OTEL_TRACES_EXPORTER"),
	}

	return cfg, nil
}
