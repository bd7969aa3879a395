package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for k := range defaults {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("Port=%q", cfg.Port)
	}
	if cfg.StorageDriver != "mongo" || cfg.DatabaseName != "mindscope_db" {
		t.Errorf("storage=%q db=%q", cfg.StorageDriver, cfg.DatabaseName)
	}
	if cfg.LLMTimeout != 20*time.Second {
		t.Errorf("LLMTimeout=%v", cfg.LLMTimeout)
	}
	if cfg.TokenTTL() != 24*time.Hour {
		t.Errorf("TokenTTL=%v", cfg.TokenTTL())
	}
	if cfg.SecretKey != devSecret {
		t.Errorf("SecretKey=%q", cfg.SecretKey)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	env := "PORT=9001\nSTORAGE_DRIVER=sqlite\nLLM_TIMEOUT=3s\nCHAT_RATE_LIMIT=5\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "9001" || cfg.StorageDriver != "sqlite" {
		t.Errorf("Port=%q StorageDriver=%q", cfg.Port, cfg.StorageDriver)
	}
	if cfg.LLMTimeout != 3*time.Second || cfg.ChatRateLimit != 5 {
		t.Errorf("LLMTimeout=%v ChatRateLimit=%d", cfg.LLMTimeout, cfg.ChatRateLimit)
	}
	if cfg.LLMProvider != "openai" || cfg.APIKey() != "sk-test" {
		t.Errorf("provider=%q key=%q", cfg.LLMProvider, cfg.APIKey())
	}
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		Environment:              "production",
		Port:                     "8000",
		StorageDriver:            "mongo",
		MongoURL:                 "mongodb://localhost:27017",
		DatabaseName:             "mindscope_db",
		LLMProvider:              "gemini",
		SecretKey:                "s3cret",
		AccessTokenExpireMinutes: 60,
		LLMTimeout:               time.Second,
		DBTimeout:                time.Second,
	}
	if err := base.Validate(); err != nil {
		t.Fatalf("base config invalid: %v", err)
	}

	cases := map[string]func(c *Config){
		"unknown driver":      func(c *Config) { c.StorageDriver = "postgres" },
		"unknown provider":    func(c *Config) { c.LLMProvider = "claude" },
		"compatible no url":   func(c *Config) { c.LLMProvider = "compatible" },
		"dev secret in prod":  func(c *Config) { c.SecretKey = devSecret },
		"missing secret":      func(c *Config) { c.SecretKey = "" },
		"bad ttl":             func(c *Config) { c.AccessTokenExpireMinutes = 0 },
		"negative rate limit": func(c *Config) { c.ChatRateLimit = -1 },
		"sqlite without path": func(c *Config) { c.StorageDriver = "sqlite" },
	}
	for name, mutate := range cases {
		c := base
		mutate(&c)
		if err := c.Validate(); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestAllowedOrigins(t *testing.T) {
	c := Config{CORSOrigins: " https://a.example , https://b.example,"}
	got := c.AllowedOrigins()
	if len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Fatalf("AllowedOrigins=%v", got)
	}
	if got := (Config{}).AllowedOrigins(); len(got) != 1 || got[0] != "*" {
		t.Fatalf("empty AllowedOrigins=%v", got)
	}
}
