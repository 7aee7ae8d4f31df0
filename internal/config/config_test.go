package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		shouldSet    bool
		want         string
	}{
		{
			name:         "returns environment variable when set",
			key:          "TEST_VAR",
			defaultValue: "default",
			envValue:     "custom",
			shouldSet:    true,
			want:         "custom",
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_VAR_MISSING",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    false,
			want:         "default",
		},
		{
			name:         "returns default when environment variable is empty string",
			key:          "TEST_VAR_EMPTY",
			defaultValue: "default",
			envValue:     "",
			shouldSet:    true,
			want:         "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnv(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue int
		envValue     string
		shouldSet    bool
		want         int
	}{
		{
			name:         "returns environment variable as int when set with valid integer",
			key:          "TEST_INT_VAR",
			defaultValue: 100,
			envValue:     "200",
			shouldSet:    true,
			want:         200,
		},
		{
			name:         "returns default when environment variable not set",
			key:          "TEST_INT_VAR_MISSING",
			defaultValue: 100,
			envValue:     "",
			shouldSet:    false,
			want:         100,
		},
		{
			name:         "returns default when environment variable is empty string",
			key:          "TEST_INT_VAR_EMPTY",
			defaultValue: 100,
			envValue:     "",
			shouldSet:    true,
			want:         100,
		},
		{
			name:         "returns default when environment variable is not a valid integer",
			key:          "TEST_INT_VAR_INVALID",
			defaultValue: 100,
			envValue:     "not_a_number",
			shouldSet:    true,
			want:         100,
		},
		{
			name:         "handles negative integers",
			key:          "TEST_INT_VAR_NEGATIVE",
			defaultValue: 100,
			envValue:     "-50",
			shouldSet:    true,
			want:         -50,
		},
		{
			name:         "handles zero",
			key:          "TEST_INT_VAR_ZERO",
			defaultValue: 100,
			envValue:     "0",
			shouldSet:    true,
			want:         0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.shouldSet {
				t.Setenv(tt.key, tt.envValue)
			}

			got := getEnvAsInt(tt.key, tt.defaultValue)
			if got != tt.want {
				t.Errorf("getEnvAsInt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetEnvAsBool(t *testing.T) {
	t.Setenv("TEST_BOOL_TRUE", "true")
	t.Setenv("TEST_BOOL_ZERO", "0")
	t.Setenv("TEST_BOOL_BAD", "maybe")

	assert.True(t, getEnvAsBool("TEST_BOOL_TRUE", false))
	assert.False(t, getEnvAsBool("TEST_BOOL_ZERO", true))
	assert.True(t, getEnvAsBool("TEST_BOOL_BAD", true))
	assert.False(t, getEnvAsBool("TEST_BOOL_MISSING", false))
}

func TestGetEnvAsFloat(t *testing.T) {
	t.Setenv("TEST_FLOAT", "2.5")
	t.Setenv("TEST_FLOAT_BAD", "fast")

	assert.InDelta(t, 2.5, getEnvAsFloat("TEST_FLOAT", 1), 1e-9)
	assert.InDelta(t, 1.0, getEnvAsFloat("TEST_FLOAT_BAD", 1), 1e-9)
	assert.InDelta(t, 1.0, getEnvAsFloat("TEST_FLOAT_MISSING", 1), 1e-9)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "250ms")
	t.Setenv("TEST_DURATION_BAD", "ten seconds")

	got, err := getEnvAsDuration("TEST_DURATION", time.Second)
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, got)

	got, err = getEnvAsDuration("TEST_DURATION_MISSING", time.Second)
	require.NoError(t, err)
	assert.Equal(t, time.Second, got)

	_, err = getEnvAsDuration("TEST_DURATION_BAD", time.Second)
	assert.ErrorIs(t, err, ErrInvalidValue)
}

// clearEnv blanks every variable Load reads so the host environment cannot leak into tests.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		"PORT", "LOG_LEVEL", "TRANSCRIPTS_FILE", "EMBEDDINGS_FILE",
		"EMBEDDING_PROVIDER", "EMBEDDING_MODEL", "EMBEDDING_PROVIDER_API_KEY", "EMBEDDING_BASE_URL",
		"EMBEDDING_TIMEOUT", "EMBEDDING_RATE_LIMIT", "SEARCH_QUERY_CACHE_SIZE",
		"SEARCH_DEFAULT_LIMIT", "SEARCH_MAX_LIMIT", "MAX_REQUEST_BODY_BYTES", "STATIC_DIR",
		"METRICS_ENABLED", "OTEL_METRICS_EXPORTER", "OTEL_TRACES_EXPORTER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "data/transcripts.json", cfg.TranscriptsFile)
	assert.Equal(t, "data/embeddings.json", cfg.EmbeddingsFile)
	assert.Equal(t, EmbeddingProviderVoyage, cfg.EmbeddingProvider)
	assert.Equal(t, "voyage-3", cfg.EmbeddingModel)
	assert.Equal(t, "test-key", cfg.EmbeddingProviderAPIKey)
	assert.Equal(t, 10*time.Second, cfg.EmbeddingTimeout)
	assert.InDelta(t, 5.0, cfg.EmbeddingRateLimit, 1e-9)
	assert.Equal(t, 1000, cfg.SearchQueryCacheSize)
	assert.Equal(t, 20, cfg.SearchDefaultLimit)
	assert.Equal(t, 100, cfg.SearchMaxLimit)
	assert.Equal(t, int64(65536), cfg.MaxRequestBodyBytes)
	assert.Empty(t, cfg.StaticDir)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "3000")
	t.Setenv("EMBEDDING_PROVIDER", "OpenAI")
	t.Setenv("EMBEDDING_PROVIDER_API_KEY", "sk-test")
	t.Setenv("EMBEDDING_TIMEOUT", "2s")
	t.Setenv("EMBEDDING_RATE_LIMIT", "0")
	t.Setenv("SEARCH_QUERY_CACHE_SIZE", "0")
	t.Setenv("STATIC_DIR", "static")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, EmbeddingProviderOpenAI, cfg.EmbeddingProvider)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, 2*time.Second, cfg.EmbeddingTimeout)
	assert.Zero(t, cfg.EmbeddingRateLimit)
	assert.Zero(t, cfg.SearchQueryCacheSize)
	assert.Equal(t, "static", cfg.StaticDir)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_MockNeedsNoAPIKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMBEDDING_PROVIDER", "mock")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.EmbeddingModel)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "missing api key",
			env:     map[string]string{"EMBEDDING_PROVIDER": "voyage"},
			wantErr: ErrMissingEmbeddingAPIKey,
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"EMBEDDING_PROVIDER": "cohere", "EMBEDDING_PROVIDER_API_KEY": "k"},
			wantErr: ErrUnsupportedEmbeddingProvider,
		},
		{
			name:    "zero timeout",
			env:     map[string]string{"EMBEDDING_PROVIDER": "mock", "EMBEDDING_TIMEOUT": "0s"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unparsable timeout",
			env:     map[string]string{"EMBEDDING_PROVIDER": "mock", "EMBEDDING_TIMEOUT": "soon"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative cache size",
			env:     map[string]string{"EMBEDDING_PROVIDER": "mock", "SEARCH_QUERY_CACHE_SIZE": "-1"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "default limit above max",
			env:     map[string]string{"EMBEDDING_PROVIDER": "mock", "SEARCH_DEFAULT_LIMIT": "50", "SEARCH_MAX_LIMIT": "10"},
			wantErr: ErrInvalidValue,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
