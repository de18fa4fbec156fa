package app_test

import (
	"context"
	"strings"
	"testing"

	"github.com/akolanti/rfqflow/internal/app"
	"github.com/akolanti/rfqflow/internal/config"
	"github.com/alicebob/miniredis/v2"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.LLM.APIKey = "sk-test"
	cfg.Delivery.DryRun = true
	return cfg
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantName string
		wantErr  bool
	}{
		{provider: config.LLMProviderOpenAI, wantName: "openai:"},
		{provider: config.LLMProviderGemini, wantName: "gemini:"},
		{provider: "anthropic", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := testConfig().LLM
			cfg.Provider = tt.provider

			provider, err := app.NewProvider(context.Background(), cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.HasPrefix(provider.Name(), tt.wantName) {
				t.Errorf("name got %s, want prefix %s", provider.Name(), tt.wantName)
			}
		})
	}
}

func TestNew_RunStoreSelection(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.DB = 3

	withRedis, err := app.New(context.Background(), cfg, app.Options{UseRedis: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withRedis.RunStoreName != app.RunStoreRedis {
		t.Errorf("run store got %s, want redis", withRedis.RunStoreName)
	}

	withoutRedis, err := app.New(context.Background(), cfg, app.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withoutRedis.RunStoreName != app.RunStoreMemory {
		t.Errorf("run store got %s, want memory", withoutRedis.RunStoreName)
	}
}
