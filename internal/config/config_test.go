package config

import (
	"testing"
	"time"

	"storefront-api/internal/logging"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "ENVIRONMENT", "GEMINI_API_KEY", "API_KEY", "GEMINI_MODEL",
		"CHAT_TEMPERATURE", "CHAT_TIMEOUT", "STORE_NAME", "ASSISTANT_NAME",
		"EMPTY_STATE_MESSAGE", "METRICS_EXPORTER", "METRICS_PORT", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, logging.FormatText, cfg.LogFormat())
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.GeminiModel)
	assert.Equal(t, float32(0.7), cfg.Temperature())
	assert.Equal(t, 30*time.Second, cfg.ChatTimeoutDuration())
	assert.Equal(t, "Skyline Shop", cfg.StoreName)
	assert.Equal(t, "Sky", cfg.AssistantName)
	assert.Equal(t, "No products found matching your criteria.", cfg.EmptyStateMessage)
	assert.True(t, cfg.UseScraperMetrics())
	assert.Equal(t, "9080", cfg.MetricsPort)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeoutDuration())
}

func TestFromEnv_APIKeyFallback(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	assert.Equal(t, "legacy-key", FromEnv().GeminiAPIKey)

	t.Setenv("GEMINI_API_KEY", "primary-key")
	assert.Equal(t, "primary-key", FromEnv().GeminiAPIKey)
}

func TestConfig_ParsedValues(t *testing.T) {
	testCases := []struct {
		name        string
		cfg         Config
		temperature float32
		chatTimeout time.Duration
		scraper     bool
	}{
		{
			name:        "valid values",
			cfg:         Config{ChatTemperature: "0.2", ChatTimeout: "5s", MetricsExporter: "grpc"},
			temperature: 0.2,
			chatTimeout: 5 * time.Second,
			scraper:     false,
		},
		{
			name:        "invalid values fall back",
			cfg:         Config{ChatTemperature: "hot", ChatTimeout: "soon", MetricsExporter: "scraper"},
			temperature: 0.7,
			chatTimeout: 30 * time.Second,
			scraper:     true,
		},
		{
			name:        "out of range temperature",
			cfg:         Config{ChatTemperature: "5", ChatTimeout: "-1s", MetricsExporter: "GRPC"},
			temperature: 0.7,
			chatTimeout: 30 * time.Second,
			scraper:     false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.temperature, tc.cfg.Temperature())
			assert.Equal(t, tc.chatTimeout, tc.cfg.ChatTimeoutDuration())
			assert.Equal(t, tc.scraper, tc.cfg.UseScraperMetrics())
		})
	}
}

func TestLogFormat_ProductionUsesJSON(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	cfg := FromEnv()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, logging.FormatJSON, cfg.LogFormat())
}
