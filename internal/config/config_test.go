package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"RFQ_LISTEN_ADDR", "RFQ_LLM_PROVIDER", "RFQ_LLM_MODEL", "OPENAI_API_KEY", "GEMINI_API_KEY",
		"SMTP_HOST", "SMTP_USERNAME", "SMTP_PASSWORD", "SMTP_PORT", "REDIS_ADDR", "REDIS_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.ListenAddr != ServerListenAddr {
		t.Errorf("listen addr = %q", cfg.Server.ListenAddr)
	}
	if cfg.Delivery.Reviewer != ReviewerAddress || cfg.Delivery.Subject != ReviewSubject {
		t.Errorf("delivery defaults = %+v", cfg.Delivery)
	}
	if cfg.LLM.Timeout != LLMTimeout {
		t.Errorf("llm timeout = %v", cfg.LLM.Timeout)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rfq.toml")
	file := `
[llm]
provider = "gemini"
api_key = "from-file"

[delivery]
smtp_host = "smtp.example.com"
smtp_username = "bot@example.com"
`
	if err := os.WriteFile(path, []byte(file), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("SMTP_PORT", "2525")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Errorf("api key = %q, env should win", cfg.LLM.APIKey)
	}
	if cfg.LLM.Model != GeminiModelName {
		t.Errorf("model = %q, want gemini default", cfg.LLM.Model)
	}
	if cfg.Delivery.Port != 2525 {
		t.Errorf("port = %d", cfg.Delivery.Port)
	}
	if cfg.Delivery.From != "bot@example.com" {
		t.Errorf("from = %q, want the smtp username", cfg.Delivery.From)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "rfq.toml")
	if err := os.WriteFile(path, []byte("[llm\nprovider="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected a read error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"dry run needs no smtp", func(c *Config) { c.LLM.APIKey = "k"; c.Delivery.DryRun = true }, ""},
		{"missing api key", func(c *Config) { c.Delivery.DryRun = true }, "llm.api_key"},
		{"unknown provider", func(c *Config) { c.LLM.APIKey = "k"; c.LLM.Provider = "local"; c.Delivery.DryRun = true }, "llm.provider"},
		{"smtp host required", func(c *Config) { c.LLM.APIKey = "k" }, "delivery.smtp_host"},
		{"reviewer required", func(c *Config) { c.LLM.APIKey = "k"; c.Delivery.DryRun = true; c.Delivery.Reviewer = "" }, "delivery.reviewer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}
