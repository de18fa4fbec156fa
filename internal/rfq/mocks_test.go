package rfq_test

import (
	"context"
	"errors"
	"sync"

	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
)

// MockTextExtractor implements textextract.TextExtractor
type MockTextExtractor struct {
	OnExtract func(ctx context.Context, content []byte, format rfqModel.FormatTag) (string, error)
	Calls     int
}

func (m *MockTextExtractor) Extract(ctx context.Context, content []byte, format rfqModel.FormatTag) (string, error) {
	m.Calls++
	if m.OnExtract != nil {
		return m.OnExtract(ctx, content, format)
	}
	return "mocked text", nil
}

// MockFieldExtractor implements fields.FieldExtractor
type MockFieldExtractor struct {
	OnExtract func(ctx context.Context, text string) (rfqModel.RfqFields, error)
	Calls     int
}

func (m *MockFieldExtractor) Extract(ctx context.Context, text string) (rfqModel.RfqFields, error) {
	m.Calls++
	if m.OnExtract != nil {
		return m.OnExtract(ctx, text)
	}
	return rfqModel.RfqFields{rfqModel.Products: rfqModel.StringField("mocked product")}, nil
}

// MockMailer implements delivery.Mailer
type MockMailer struct {
	OnSend func(ctx context.Context, msg delivery.Message) error
	Sent   []delivery.Message
}

func (m *MockMailer) Send(ctx context.Context, msg delivery.Message) error {
	m.Sent = append(m.Sent, msg)
	if m.OnSend != nil {
		return m.OnSend(ctx, msg)
	}
	return nil
}

// FailingRunStore implements runModel.RunStore and refuses every write.
type FailingRunStore struct {
	mu    sync.Mutex
	saves int
}

func (f *FailingRunStore) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	return runModel.Run{}, false
}

func (f *FailingRunStore) SaveRun(ctx context.Context, run runModel.Run) error {
	f.mu.Lock()
	f.saves++
	f.mu.Unlock()
	return errors.New("redis: connection refused")
}

func (f *FailingRunStore) DeleteRun(ctx context.Context, runId string) {}
