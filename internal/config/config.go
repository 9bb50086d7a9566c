package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"storefront-api/internal/logging"

	"github.com/joho/godotenv"
)

const (
	MetricsExporterScraper = "scraper"
	MetricsExporterGRPC    = "grpc"
)

// Config holds all configuration for the application
type Config struct {
	Port              string
	LogLevel          string
	Environment       string
	GeminiAPIKey      string
	GeminiModel       string
	ChatTemperature   string
	ChatTimeout       string
	StoreName         string
	AssistantName     string
	EmptyStateMessage string
	MetricsExporter   string
	MetricsPort       string
	ShutdownTimeout   string
}

// LoadConfig loads configuration from .env file and environment variables
func LoadConfig() *Config {
	// Existing environment variables are not overridden
	err := godotenv.Load()
	if err != nil {
		slog.Warn("Could not load .env file, continuing with system environment variables only", "error", err)
	} else {
		slog.Info("Successfully loaded .env file")
	}

	config := FromEnv()

	logging.SetupLogging(config.LogLevel, config.LogFormat())

	slog.Info("Configuration loaded",
		"port", config.Port,
		"environment", config.Environment,
		"logLevel", config.LogLevel,
		"geminiModel", config.GeminiModel,
		"geminiKeyConfigured", config.GeminiAPIKey != "",
		"chatTemperature", config.ChatTemperature,
		"chatTimeout", config.ChatTimeout,
		"storeName", config.StoreName,
		"metricsExporter", config.MetricsExporter,
		"metricsPort", config.MetricsPort)

	return config
}

// FromEnv reads every key from the process environment without touching .env or logging setup
func FromEnv() *Config {
	return &Config{
		Port:              getEnvWithDefault("PORT", "8080"),
		LogLevel:          getEnvWithDefault("LOG_LEVEL", "info"),
		Environment:       getEnvWithDefault("ENVIRONMENT", "development"),
		GeminiAPIKey:      getEnvWithDefault("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:       getEnvWithDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		ChatTemperature:   getEnvWithDefault("CHAT_TEMPERATURE", "0.7"),
		ChatTimeout:       getEnvWithDefault("CHAT_TIMEOUT", "30s"),
		StoreName:         getEnvWithDefault("STORE_NAME", "Skyline Shop"),
		AssistantName:     getEnvWithDefault("ASSISTANT_NAME", "Sky"),
		EmptyStateMessage: getEnvWithDefault("EMPTY_STATE_MESSAGE", "No products found matching your criteria."),
		MetricsExporter:   getEnvWithDefault("METRICS_EXPORTER", MetricsExporterScraper),
		MetricsPort:       getEnvWithDefault("METRICS_PORT", "9080"),
		ShutdownTimeout:   getEnvWithDefault("SHUTDOWN_TIMEOUT", "30s"),
	}
}

// getEnvWithDefault gets an environment variable with a default fallback
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// LogFormat returns JSON logs in production and text logs elsewhere
func (c *Config) LogFormat() string {
	if c.IsProduction() {
		return logging.FormatJSON
	}
	return logging.FormatText
}

// Temperature returns CHAT_TEMPERATURE as a float, 0.7 when unset or invalid
func (c *Config) Temperature() float32 {
	value, err := strconv.ParseFloat(strings.TrimSpace(c.ChatTemperature), 32)
	if err != nil || value < 0 || value > 2 {
		slog.Warn("Invalid CHAT_TEMPERATURE, using default", "value", c.ChatTemperature, "default", 0.7)
		return 0.7
	}
	return float32(value)
}

// ChatTimeoutDuration returns the per-request timeout for the conversational service
func (c *Config) ChatTimeoutDuration() time.Duration {
	return parseDuration("CHAT_TIMEOUT", c.ChatTimeout, 30*time.Second)
}

// ShutdownTimeoutDuration returns how long outstanding requests get on shutdown
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	return parseDuration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout, 30*time.Second)
}

// UseScraperMetrics reports whether metrics are served for scraping rather than pushed over gRPC
func (c *Config) UseScraperMetrics() bool {
	return !strings.EqualFold(strings.TrimSpace(c.MetricsExporter), MetricsExporterGRPC)
}

func parseDuration(key, raw string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || d <= 0 {
		slog.Warn("Invalid duration, using default", "key", key, "value", raw, "default", fallback.String())
		return fallback
	}
	return d
}
