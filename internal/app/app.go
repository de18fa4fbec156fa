package app

import (
	"context"
	"fmt"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/customHttpClient"
	"github.com/akolanti/rfqflow/internal/data/store"
	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
	"github.com/akolanti/rfqflow/internal/rfq/llm"
	"github.com/akolanti/rfqflow/internal/rfq/llm/gemini"
	"github.com/akolanti/rfqflow/internal/rfq/llm/openaiLLM"
	"github.com/akolanti/rfqflow/internal/rfq/render"
	"github.com/akolanti/rfqflow/internal/rfq/textextract"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

const (
	RunStoreRedis  = "redis"
	RunStoreMemory = "memory"
)

type Options struct {
	// UseRedis records runs in Redis when it is reachable.
	UseRedis bool
	// SendMail selects the configured mailer; otherwise mail is only logged.
	SendMail bool
}

type App struct {
	Service      rfq.Service
	RunStoreName string
}

// New wires the pipeline from one explicit configuration.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	logger := logger_i.NewLogger("app")

	provider, err := NewProvider(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}

	var mailer delivery.Mailer = delivery.NewLogMailer()
	if opts.SendMail {
		mailer, err = delivery.New(cfg.Delivery)
		if err != nil {
			return nil, err
		}
	}

	var runs runModel.RunStore
	runStoreName := RunStoreMemory
	if opts.UseRedis && cfg.Redis.Enabled {
		if redisRuns := store.GetRedisRunStore(ctx, cfg.Redis); redisRuns != nil {
			runs = redisRuns
			runStoreName = RunStoreRedis
		}
	}
	if runs == nil {
		logger.Warn("Recording runs in memory")
		// same record lifetime as the Redis keys
		runs = store.InitInMemoryRunStore(cfg.Redis.TTL)
	}

	service := rfq.NewService(rfq.Dependencies{
		TextExtractor:  textextract.New(),
		FieldExtractor: fields.NewExtractor(provider, cfg.LLM.Timeout),
		Renderer:       render.New(),
		Mailer:         mailer,
		RunStore:       runs,
		Delivery:       cfg.Delivery,
	})
	logger.Info("Pipeline ready", "provider", provider.Name(), "run_store", runStoreName, "send_mail", opts.SendMail && !cfg.Delivery.DryRun)
	return &App{Service: service, RunStoreName: runStoreName}, nil
}

// NewProvider selects the language model client named by cfg.Provider.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (llm.Provider, error) {
	httpClient := customHttpClient.New(cfg.Timeout)
	switch cfg.Provider {
	case config.LLMProviderOpenAI:
		return openaiLLM.NewClient(cfg, httpClient)
	case config.LLMProviderGemini:
		return gemini.NewClient(ctx, cfg, httpClient)
	default:
		return nil, fmt.Errorf("llm provider %q is not supported", cfg.Provider)
	}
}
