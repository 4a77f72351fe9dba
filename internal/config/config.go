// Package config loads server configuration from an optional YAML file
// with environment variable overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all server settings.
type Config struct {
	Addr    string `yaml:"addr"`
	DBPath  string `yaml:"db"`
	LogFile string `yaml:"log"`

	AI AIConfig `yaml:"ai"`
}

// AIConfig configures the OpenAI-compatible assistant backend. When APIKey
// is empty, AI-backed features are disabled and the server falls back to
// plain text search.
type AIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	ChatModel   string `yaml:"chat_model"`
	VisionModel string `yaml:"vision_model"`
}

// Enabled reports whether an AI backend is configured.
func (c AIConfig) Enabled() bool {
	return c.APIKey != ""
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Addr:   ":8080",
		DBPath: "findez.sqlite3",
		AI: AIConfig{
			BaseURL:     "https://api.openai.com/v1",
			ChatModel:   "gpt-4o-mini",
			VisionModel: "gpt-4o-mini",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty or the file does not exist), then FINDEZ_*
// environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Addr = getenv("FINDEZ_ADDR", cfg.Addr)
	cfg.DBPath = getenv("FINDEZ_DB", cfg.DBPath)
	cfg.LogFile = getenv("FINDEZ_LOG", cfg.LogFile)
	cfg.AI.BaseURL = getenv("FINDEZ_AI_BASE_URL", cfg.AI.BaseURL)
	cfg.AI.APIKey = getenv("FINDEZ_AI_API_KEY", cfg.AI.APIKey)
	cfg.AI.ChatModel = getenv("FINDEZ_AI_CHAT_MODEL", cfg.AI.ChatModel)
	cfg.AI.VisionModel = getenv("FINDEZ_AI_VISION_MODEL", cfg.AI.VisionModel)

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
