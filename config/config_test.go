package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		for _, key := range []string{
			"AI_PLUGIN", "GEMINI_API_KEY", "GEMINI_MODEL",
			"AMADEUS_BASE_URL", "AMADEUS_CLIENT_ID", "AMADEUS_CLIENT_SECRET",
			"ACCESS_TOKEN_URL", "PORT", "SESSION_DB_PATH",
		} {
			// t.Setenv registers the restore; the var stays unset for the test.
			t.Setenv(key, "")
			os.Unsetenv(key)
		}

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		assert.Equal(t, "gemini", cfg.AI.Plugin)
		assert.Equal(t, "gemini-2.5-flash", cfg.AI.Gemini.Model)
		assert.Equal(t, "qwen3:4b", cfg.AI.Ollama.Model)
		assert.Equal(t, "http://localhost:11434", cfg.AI.Ollama.BaseURL)
		assert.Equal(t, "https://test.api.amadeus.com", cfg.Amadeus.BaseURL)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "smarttrip.db", cfg.Store.Path)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		t.Setenv("AI_PLUGIN", "ollama")
		t.Setenv("GEMINI_API_KEY", "test-key")
		t.Setenv("AMADEUS_CLIENT_ID", "client-id")
		t.Setenv("AMADEUS_CLIENT_SECRET", "client-secret")
		t.Setenv("PORT", "9090")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "ollama", cfg.AI.Plugin)
		assert.Equal(t, "test-key", cfg.AI.Gemini.APIKey)
		assert.Equal(t, "client-id", cfg.Amadeus.ClientID)
		assert.Equal(t, "client-secret", cfg.Amadeus.ClientSecret)
		assert.Equal(t, "9090", cfg.Server.Port)
	})

	t.Run("TokenURLDerivedFromBaseURL", func(t *testing.T) {
		t.Setenv("AMADEUS_BASE_URL", "https://api.amadeus.com")
		t.Setenv("ACCESS_TOKEN_URL", "")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "https://api.amadeus.com/v1/security/oauth2/token", cfg.Amadeus.TokenURL)
	})

	t.Run("ExplicitTokenURL", func(t *testing.T) {
		t.Setenv("ACCESS_TOKEN_URL", "http://localhost:9999/token")

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "http://localhost:9999/token", cfg.Amadeus.TokenURL)
	})
}
