package delivery

import (
	"context"
	"sync"

	"github.com/akolanti/rfqflow/pkg/logger_i"
)

// LogMailer records messages instead of sending them. Used for dry runs.
type LogMailer struct {
	logger *logger_i.Logger

	mu   sync.Mutex
	sent []Message
}

func NewLogMailer() *LogMailer {
	return &LogMailer{logger: logger_i.NewLogger("LogMailer")}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()

	m.logger.WithTrace(ctx).Info("Dry run, review email not sent",
		"to", msg.To, "subject", msg.Subject, "attachment", msg.Attachment.Filename,
		"attachment_bytes", len(msg.Attachment.Body))
	return nil
}

func (m *LogMailer) Sent() []Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Message(nil), m.sent...)
}
