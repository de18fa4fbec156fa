package delivery

import (
	"context"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
)

// Message is one review email with the rendered RFQ attached.
type Message struct {
	From       string
	To         string
	Subject    string
	Body       string
	Attachment rfqModel.RfqDocument
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// ReviewMessage builds the fixed review email for a rendered document.
func ReviewMessage(cfg config.DeliveryConfig, doc rfqModel.RfqDocument) Message {
	return Message{
		From:       cfg.From,
		To:         cfg.Reviewer,
		Subject:    cfg.Subject,
		Body:       cfg.Body,
		Attachment: doc,
	}
}

// New picks the SMTP mailer, or the log-only one when dry_run is set.
func New(cfg config.DeliveryConfig) (Mailer, error) {
	if cfg.DryRun {
		return NewLogMailer(), nil
	}
	return NewSMTPMailer(cfg)
}
