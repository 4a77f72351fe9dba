package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.DBPath != "findez.sqlite3" {
		t.Errorf("DBPath = %q, want findez.sqlite3", cfg.DBPath)
	}
	if cfg.AI.Enabled() {
		t.Error("AI should be disabled without an API key")
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `addr: ":9090"
db: /tmp/test.sqlite3
ai:
  api_key: sk-test
  chat_model: test-model
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" {
		t.Errorf("Addr = %q, want :9090", cfg.Addr)
	}
	if cfg.DBPath != "/tmp/test.sqlite3" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if !cfg.AI.Enabled() {
		t.Error("AI should be enabled with an API key")
	}
	if cfg.AI.ChatModel != "test-model" {
		t.Errorf("ChatModel = %q", cfg.AI.ChatModel)
	}
	// Unset file values keep their defaults.
	if cfg.AI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL = %q", cfg.AI.BaseURL)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("FINDEZ_ADDR", ":7070")
	t.Setenv("FINDEZ_AI_API_KEY", "sk-env")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, want :7070", cfg.Addr)
	}
	if cfg.AI.APIKey != "sk-env" {
		t.Errorf("APIKey = %q", cfg.AI.APIKey)
	}
}

func TestLoadMissingFileIgnored(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
}
