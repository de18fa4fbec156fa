package fields

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/rfq/llm"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

// FieldExtractor turns document text into RfqFields through a language model.
type FieldExtractor interface {
	Extract(ctx context.Context, text string) (rfqModel.RfqFields, error)
}

type Extractor struct {
	provider llm.Provider
	timeout  time.Duration
	logger   *logger_i.Logger
}

func NewExtractor(provider llm.Provider, timeout time.Duration) *Extractor {
	return &Extractor{
		provider: provider,
		timeout:  timeout,
		logger:   logger_i.NewLogger("FieldExtractor"),
	}
}

// Extract makes exactly one model call. Every failure, including a malformed answer or
// the call outliving the timeout, is reported as ErrExtractionFailed.
func (e *Extractor) Extract(ctx context.Context, text string) (rfqModel.RfqFields, error) {
	log := e.logger.WithTrace(ctx).With("provider", e.provider.Name())

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.provider.Complete(callCtx, SystemPrompt, BuildUserPrompt(text))
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			err = fmt.Errorf("model call timed out after %s: %w", e.timeout, err)
		}
		log.Error("Model call failed", "error", err, "elapsed", time.Since(start))
		return nil, failed(err)
	}
	log.Debug("Model answered", "response_chars", len(raw), "elapsed", time.Since(start))

	fields, ignored, err := ParseFields(StripCodeFence([]byte(raw)))
	if err != nil {
		log.Error("Malformed model response", "error", err)
		return nil, failed(fmt.Errorf("malformed model response: %w", err))
	}
	if len(fields) == 0 && len(ignored) > 0 {
		log.Error("Model response has no RFQ field", "keys", ignored)
		return nil, failed(fmt.Errorf("model response has none of the RFQ fields, got keys: %s", strings.Join(ignored, ", ")))
	}
	if len(ignored) > 0 {
		log.Warn("Dropped unknown keys from model response", "keys", ignored)
	}
	return fields, nil
}

func failed(err error) error {
	return rfqModel.NewStageError(rfqModel.StageFieldExtraction, rfqModel.ErrExtractionFailed, err)
}
