package delivery

import (
	"context"
	"fmt"
	"strings"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/pkg/logger_i"
	"github.com/wneessen/go-mail"
)

type SMTPMailer struct {
	client *mail.Client
	cfg    config.DeliveryConfig
	logger *logger_i.Logger
}

func NewSMTPMailer(cfg config.DeliveryConfig) (*SMTPMailer, error) {
	options := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		options = append(options,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, options...)
	if err != nil {
		return nil, fmt.Errorf("creating smtp client for %s: %w", cfg.Host, err)
	}
	return &SMTPMailer{
		client: client,
		cfg:    cfg,
		logger: logger_i.NewLogger("SMTPMailer"),
	}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	log := m.logger.WithTrace(ctx).With("to", msg.To, "attachment", msg.Attachment.Filename)

	built, err := BuildMessage(msg)
	if err != nil {
		return deliveryFailed(err)
	}

	sendCtx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(sendCtx, built); err != nil {
		log.Error("Sending review email failed", "error", err)
		return deliveryFailed(fmt.Errorf("smtp %s:%d: %w", m.cfg.Host, m.cfg.Port, err))
	}
	log.Info("Review email sent")
	return nil
}

// BuildMessage turns a Message into a MIME message with the document as a text/plain attachment.
func BuildMessage(msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", msg.To, err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)

	if err := m.AttachReader(msg.Attachment.Filename, strings.NewReader(msg.Attachment.Body),
		mail.WithFileContentType(mail.TypeTextPlain)); err != nil {
		return nil, fmt.Errorf("attaching %s: %w", msg.Attachment.Filename, err)
	}
	return m, nil
}

func deliveryFailed(err error) error {
	return rfqModel.NewStageError(rfqModel.StageDelivery, rfqModel.ErrDeliveryFailed, err)
}
