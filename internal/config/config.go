package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Data files
	SensitiveWordsPath string
	HotTopicsPath      string
	IndustriesDir      string
	FormulasDir        string

	// Database
	DatabasePath string
	MaxHistory   int

	// Defaults
	DefaultIndustry string

	// AI enhancement
	AIProvider      string // "anthropic" or "openai"
	AIModel         string // empty means provider default
	AnthropicAPIKey string
	OpenAIAPIKey    string
	AIMaxTokens     int
	AITemperature   float64
	AITimeout       time.Duration

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		SensitiveWordsPath: getEnv("SENSITIVE_WORDS_PATH", "data/sensitive_words.json"),
		HotTopicsPath:      getEnv("HOT_TOPICS_PATH", "data/hot_topics.json"),
		IndustriesDir:      getEnv("INDUSTRIES_DIR", "data/industries"),
		FormulasDir:        getEnv("FORMULAS_DIR", "data/formulas"),
		DatabasePath:       getEnv("DATABASE_PATH", "data/redcopy.db"),
		DefaultIndustry:    getEnv("DEFAULT_INDUSTRY", "beauty"),
		AIProvider:         getEnv("AI_PROVIDER", "anthropic"),
		AIModel:            getEnv("AI_MODEL", ""),
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		OpenAIAPIKey:       getEnv("OPENAI_API_KEY", ""),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
	}

	// Parse integers
	maxHistory, err := strconv.Atoi(getEnv("MAX_HISTORY", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_HISTORY: %w", err)
	}
	cfg.MaxHistory = maxHistory

	maxTokens, err := strconv.Atoi(getEnv("AI_MAX_TOKENS", "900"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_MAX_TOKENS: %w", err)
	}
	cfg.AIMaxTokens = maxTokens

	temp, err := strconv.ParseFloat(getEnv("AI_TEMPERATURE", "0.6"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TEMPERATURE: %w", err)
	}
	cfg.AITemperature = temp

	cfg.AITimeout, err = time.ParseDuration(getEnv("AI_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid AI_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// ValidateForEnhance checks configuration needed for AI enhancement.
func (c *Config) ValidateForEnhance() error {
	switch c.AIProvider {
	case "anthropic", "":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required when AI_PROVIDER is anthropic")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AI_PROVIDER is openai")
		}
	default:
		return fmt.Errorf("invalid AI_PROVIDER: %s (must be 'anthropic' or 'openai')", c.AIProvider)
	}
	return nil
}

// ValidateForHistory checks configuration needed for the history store.
func (c *Config) ValidateForHistory() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.MaxHistory <= 0 {
		return fmt.Errorf("MAX_HISTORY must be positive")
	}
	return nil
}

// APIKey returns the key for the configured AI provider.
func (c *Config) APIKey() string {
	if c.AIProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.AnthropicAPIKey
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
