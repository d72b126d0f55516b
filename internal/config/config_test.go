package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env and restore after test
	origEnv := os.Environ()
	t.Cleanup(func() {
		os.Clearenv()
		for _, e := range origEnv {
			for i := 0; i < len(e); i++ {
				if e[i] == '=' {
					os.Setenv(e[:i], e[i+1:])
					break
				}
			}
		}
	})

	t.Run("defaults", func(t *testing.T) {
		os.Clearenv()
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "data/redcopy.db", cfg.DatabasePath)
		assert.Equal(t, "data/sensitive_words.json", cfg.SensitiveWordsPath)
		assert.Equal(t, "data/hot_topics.json", cfg.HotTopicsPath)
		assert.Equal(t, "beauty", cfg.DefaultIndustry)
		assert.Equal(t, "anthropic", cfg.AIProvider)
		assert.Equal(t, 100, cfg.MaxHistory)
		assert.Equal(t, 900, cfg.AIMaxTokens)
		assert.Equal(t, 0.6, cfg.AITemperature)
		assert.Equal(t, 30*time.Second, cfg.AITimeout)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("custom values", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("DATABASE_PATH", "/custom/path.db")
		os.Setenv("DEFAULT_INDUSTRY", "tech")
		os.Setenv("ANTHROPIC_API_KEY", "sk-test")
		os.Setenv("MAX_HISTORY", "50")
		os.Setenv("AI_TIMEOUT", "1m")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "/custom/path.db", cfg.DatabasePath)
		assert.Equal(t, "tech", cfg.DefaultIndustry)
		assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
		assert.Equal(t, 50, cfg.MaxHistory)
		assert.Equal(t, time.Minute, cfg.AITimeout)
	})

	t.Run("invalid integer", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("MAX_HISTORY", "notanumber")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MAX_HISTORY")
	})

	t.Run("invalid duration", func(t *testing.T) {
		os.Clearenv()
		os.Setenv("AI_TIMEOUT", "invalid")

		_, err := Load()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AI_TIMEOUT")
	})
}

func TestValidateForEnhance(t *testing.T) {
	t.Run("anthropic requires key", func(t *testing.T) {
		cfg := &Config{AIProvider: "anthropic"}
		assert.Error(t, cfg.ValidateForEnhance())

		cfg.AnthropicAPIKey = "sk-test"
		assert.NoError(t, cfg.ValidateForEnhance())
	})

	t.Run("openai requires key", func(t *testing.T) {
		cfg := &Config{AIProvider: "openai"}
		assert.Error(t, cfg.ValidateForEnhance())

		cfg.OpenAIAPIKey = "sk-test"
		assert.NoError(t, cfg.ValidateForEnhance())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := &Config{AIProvider: "cohere"}
		err := cfg.ValidateForEnhance()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AI_PROVIDER")
	})
}

func TestAPIKey(t *testing.T) {
	cfg := &Config{
		AIProvider:      "openai",
		AnthropicAPIKey: "sk-ant",
		OpenAIAPIKey:    "sk-oai",
	}
	assert.Equal(t, "sk-oai", cfg.APIKey())

	cfg.AIProvider = "anthropic"
	assert.Equal(t, "sk-ant", cfg.APIKey())
}
