package openaiLLM

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/rfq/llm"
	"github.com/akolanti/rfqflow/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

type llmClient struct {
	api         openai.Client
	modelName   string
	temperature float64
	logger      *logger_i.Logger
}

// NewClient builds the chat-completions provider. Retries are disabled: a failed
// call surfaces immediately to the pipeline.
func NewClient(cfg config.LLMConfig, httpClient *http.Client) (llm.Provider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}

	logger := logger_i.NewLogger("llm_openai")
	logger.Info("OpenAI client created", "model", cfg.Model)
	return &llmClient{
		api:         openai.NewClient(opts...),
		modelName:   cfg.Model,
		temperature: cfg.Temperature,
		logger:      logger,
	}, nil
}

func (c *llmClient) Name() string {
	return config.LLMProviderOpenAI + ":" + c.modelName
}

func (c *llmClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	log := c.logger.WithTrace(ctx)
	log.Debug("Sending chat completion", "model", c.modelName, "prompt_chars", len(userPrompt))

	completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.modelName),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Temperature: openai.Float(c.temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			log.Error("OpenAI rejected the request", "status", apiErr.StatusCode)
			return "", fmt.Errorf("openai status %d: %w", apiErr.StatusCode, err)
		}
		log.Error("OpenAI request failed", "error", err)
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	choice := completion.Choices[0]
	log.Debug("Chat completion received", "finish_reason", choice.FinishReason, "total_tokens", completion.Usage.TotalTokens)
	return choice.Message.Content, nil
}
