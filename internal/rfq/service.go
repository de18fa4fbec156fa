package rfq

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/internal/metrics"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
	"github.com/akolanti/rfqflow/internal/rfq/render"
	"github.com/akolanti/rfqflow/internal/rfq/textextract"
	"github.com/akolanti/rfqflow/pkg/logger_i"
	"github.com/google/uuid"
)

// Service sequences the two pipeline runs. It holds no per-request state; every
// document, text, field set and rendered RFQ lives only inside one call.
type Service interface {
	// ProcessDocument runs upload -> text -> fields and hands the fields back for review.
	ProcessDocument(ctx context.Context, doc rfqModel.SourceDocument) (ProcessResult, error)
	// GenerateRFQ re-parses reviewed fields, renders them and mails the draft.
	GenerateRFQ(ctx context.Context, payload json.RawMessage) (GenerateResult, error)
	// PreviewRFQ is GenerateRFQ without delivery.
	PreviewRFQ(ctx context.Context, payload json.RawMessage) (rfqModel.RfqDocument, error)
	GetRun(ctx context.Context, runId string) (runModel.Run, bool)
}

type ProcessResult struct {
	RunId      string
	Fields     rfqModel.RfqFields
	TextLength int
}

type GenerateResult struct {
	RunId     string
	Document  rfqModel.RfqDocument
	Recipient string
}

type Dependencies struct {
	TextExtractor  textextract.TextExtractor
	FieldExtractor fields.FieldExtractor
	Renderer       render.RfqRenderer
	Mailer         delivery.Mailer
	RunStore       runModel.RunStore
	Delivery       config.DeliveryConfig
}

type service struct {
	text     textextract.TextExtractor
	fields   fields.FieldExtractor
	renderer render.RfqRenderer
	mailer   delivery.Mailer
	runs     runModel.RunStore
	delivery config.DeliveryConfig
	logger   *logger_i.Logger
}

func NewService(deps Dependencies) Service {
	return &service{
		text:     deps.TextExtractor,
		fields:   deps.FieldExtractor,
		renderer: deps.Renderer,
		mailer:   deps.Mailer,
		runs:     deps.RunStore,
		delivery: deps.Delivery,
		logger:   logger_i.NewLogger("RFQ Service"),
	}
}

func (s *service) ProcessDocument(ctx context.Context, doc rfqModel.SourceDocument) (ProcessResult, error) {
	run := s.startRun(ctx, runModel.RunKindProcess)
	run.Filename = doc.Filename
	log := s.logger.WithTrace(ctx).With("runId", run.Id, "filename", doc.Filename)

	metrics.IncrementActiveRuns()
	defer metrics.DecrementActiveRuns()

	format, err := s.executeFormatStep(ctx, log, &run, doc)
	if err != nil {
		return ProcessResult{RunId: run.Id}, s.runError(ctx, log, &run, err)
	}
	run.Format = format

	text, err := s.executeTextStep(ctx, log, &run, doc.Content, format)
	if err != nil {
		return ProcessResult{RunId: run.Id}, s.runError(ctx, log, &run, err)
	}

	if strings.TrimSpace(text) == "" {
		log.Warn("Document has no text, skipping the model call")
		s.completeRun(ctx, log, &run)
		return ProcessResult{RunId: run.Id, Fields: rfqModel.RfqFields{}}, nil
	}

	extracted, err := s.executeFieldStep(ctx, log, &run, text)
	if err != nil {
		return ProcessResult{RunId: run.Id}, s.runError(ctx, log, &run, err)
	}

	s.completeRun(ctx, log, &run)
	return ProcessResult{RunId: run.Id, Fields: extracted, TextLength: len(text)}, nil
}

func (s *service) GenerateRFQ(ctx context.Context, payload json.RawMessage) (GenerateResult, error) {
	run := s.startRun(ctx, runModel.RunKindGenerate)
	log := s.logger.WithTrace(ctx).With("runId", run.Id)

	metrics.IncrementActiveRuns()
	defer metrics.DecrementActiveRuns()

	doc, err := s.executeRenderStep(ctx, log, &run, payload)
	if err != nil {
		return GenerateResult{RunId: run.Id}, s.runError(ctx, log, &run, err)
	}
	run.Filename = doc.Filename

	msg := delivery.ReviewMessage(s.delivery, doc)
	if err := s.executeDeliveryStep(ctx, log, &run, msg); err != nil {
		return GenerateResult{RunId: run.Id}, s.runError(ctx, log, &run, err)
	}

	s.completeRun(ctx, log, &run)
	return GenerateResult{RunId: run.Id, Document: doc, Recipient: msg.To}, nil
}

func (s *service) PreviewRFQ(ctx context.Context, payload json.RawMessage) (rfqModel.RfqDocument, error) {
	parsed, err := s.parsePayload(ctx, payload)
	if err != nil {
		return rfqModel.RfqDocument{}, err
	}
	return s.renderer.Render(parsed)
}

func (s *service) GetRun(ctx context.Context, runId string) (runModel.Run, bool) {
	if runId == "" {
		return runModel.Run{}, false
	}
	return s.runs.GetRun(ctx, runId)
}

func (s *service) startRun(ctx context.Context, kind runModel.RunKind) runModel.Run {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	run := runModel.Run{
		Id:          uuid.New().String(),
		TraceId:     trace,
		Kind:        kind,
		Stage:       rfqModel.StageUpload,
		Status:      runModel.RunStatusRunning,
		CreatedTime: time.Now(),
	}
	if kind == runModel.RunKindGenerate {
		run.Stage = rfqModel.StageRender
	}
	s.saveRun(ctx, run)
	return run
}
