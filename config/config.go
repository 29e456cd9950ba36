package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	AI      AIConfig      `yaml:"ai"`
	Amadeus AmadeusConfig `yaml:"amadeus"`
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
}

type AIConfig struct {
	Plugin string       `yaml:"plugin" env:"AI_PLUGIN" env-default:"gemini"`
	Gemini GeminiConfig `yaml:"gemini"`
	Ollama OllamaConfig `yaml:"ollama"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.5-flash"`
}

type OllamaConfig struct {
	Model   string `yaml:"model" env:"OLLAMA_MODEL" env-default:"qwen3:4b"`
	BaseURL string `yaml:"base_url" env:"OLLAMA_BASE_URL" env-default:"http://localhost:11434"`
}

type AmadeusConfig struct {
	BaseURL      string `yaml:"base_url" env:"AMADEUS_BASE_URL" env-default:"https://test.api.amadeus.com"`
	ClientID     string `yaml:"client_id" env:"AMADEUS_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"AMADEUS_CLIENT_SECRET"`
	TokenURL     string `yaml:"token_url" env:"ACCESS_TOKEN_URL"`
}

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT" env-default:"8080"`
}

type StoreConfig struct {
	Path string `yaml:"path" env:"SESSION_DB_PATH" env-default:"smarttrip.db"`
}

// Load reads configuration from config.yaml and environment variables
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		// If file doesn't exist, just read env vars
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	// The token endpoint defaults to the standard path on the API host.
	if cfg.Amadeus.TokenURL == "" {
		cfg.Amadeus.TokenURL = cfg.Amadeus.BaseURL + "/v1/security/oauth2/token"
	}

	return &cfg, nil
}
