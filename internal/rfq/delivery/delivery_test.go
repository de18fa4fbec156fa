package delivery_test

import (
	"bytes"
	"context"
	"errors"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
)

func testDeliveryConfig() config.DeliveryConfig {
	cfg := config.Default().Delivery
	cfg.From = "rfq-bot@yourcompany.com"
	return cfg
}

func TestReviewMessage(t *testing.T) {
	doc := rfqModel.RfqDocument{Filename: "rfq_draft.txt", Body: "REQUEST FOR QUOTE\n"}
	msg := delivery.ReviewMessage(testDeliveryConfig(), doc)

	if msg.To != "procurement@yourcompany.com" {
		t.Errorf("To got %s", msg.To)
	}
	if msg.Subject != "New RFQ for Review" {
		t.Errorf("Subject got %s", msg.Subject)
	}
	if msg.Body != "Please review the attached RFQ document." {
		t.Errorf("Body got %s", msg.Body)
	}
	if msg.Attachment != doc {
		t.Errorf("Attachment got %+v", msg.Attachment)
	}
}

func TestBuildMessage(t *testing.T) {
	doc := rfqModel.RfqDocument{Filename: "rfq_draft.txt", Body: "REQUEST FOR QUOTE\n\nQuantities: 50\n"}
	built, err := delivery.BuildMessage(delivery.ReviewMessage(testDeliveryConfig(), doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var buf bytes.Buffer
	if _, err := built.WriteTo(&buf); err != nil {
		t.Fatalf("writing message: %v", err)
	}
	raw := buf.String()

	for _, want := range []string{
		"procurement@yourcompany.com",
		"rfq-bot@yourcompany.com",
		"Subject: New RFQ for Review",
		`filename="rfq_draft.txt"`,
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message is missing %q", want)
		}
	}
}

func TestBuildMessage_InvalidRecipient(t *testing.T) {
	msg := delivery.ReviewMessage(testDeliveryConfig(), rfqModel.RfqDocument{Filename: "rfq_draft.txt"})
	msg.To = "not an address"

	if _, err := delivery.BuildMessage(msg); err == nil {
		t.Fatal("expected an error for an invalid recipient")
	}
}

func TestSMTPMailer_Unreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := listener.Addr().(*net.TCPAddr)
	listener.Close()

	cfg := testDeliveryConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = addr.Port
	cfg.Timeout = 2 * time.Second

	mailer, err := delivery.NewSMTPMailer(cfg)
	if err != nil {
		t.Fatalf("creating mailer: %v", err)
	}
	err = mailer.Send(context.Background(), delivery.ReviewMessage(cfg, rfqModel.RfqDocument{Filename: "rfq_draft.txt", Body: "x"}))

	if !errors.Is(err, rfqModel.ErrDeliveryFailed) {
		t.Fatalf("error got %v, want ErrDeliveryFailed", err)
	}
}

func TestNew_DryRun(t *testing.T) {
	cfg := testDeliveryConfig()
	cfg.DryRun = true

	mailer, err := delivery.New(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	logMailer, ok := mailer.(*delivery.LogMailer)
	if !ok {
		t.Fatalf("mailer got %T, want *delivery.LogMailer", mailer)
	}

	msg := delivery.ReviewMessage(cfg, rfqModel.RfqDocument{Filename: "rfq_draft.txt", Body: "x"})
	if err := logMailer.Send(context.Background(), msg); err != nil {
		t.Fatalf("send: %v", err)
	}
	if sent := logMailer.Sent(); len(sent) != 1 || sent[0].To != cfg.Reviewer {
		t.Errorf("sent got %+v", sent)
	}
}
