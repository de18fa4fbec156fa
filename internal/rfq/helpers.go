package rfq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/internal/metrics"
	"github.com/akolanti/rfqflow/internal/rfq/delivery"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

// StatusCode maps a pipeline error onto the HTTP status class the front end answers with.
func StatusCode(err error) int {
	se, ok := rfqModel.AsStageError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch {
	case errors.Is(se.Kind, rfqModel.ErrUnsupportedFormat), errors.Is(se.Kind, rfqModel.ErrRenderFailed):
		return http.StatusBadRequest
	case errors.Is(se.Kind, rfqModel.ErrExtractionFailed) && se.Stage == rfqModel.StageTextExtraction:
		return http.StatusUnprocessableEntity
	case errors.Is(se.Kind, rfqModel.ErrExtractionFailed), errors.Is(se.Kind, rfqModel.ErrDeliveryFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func logStage(run *runModel.Run, stage rfqModel.Stage, log *logger_i.Logger) {
	run.Stage = stage
	log.Debug("Pipeline step", "stage", stage)
}

func (s *service) saveRun(ctx context.Context, run runModel.Run) {
	if s.runs == nil {
		return
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.logger.WithTrace(ctx).Warn("Could not record run", "runId", run.Id, "error", err)
	}
}

func (s *service) completeRun(ctx context.Context, log *logger_i.Logger, run *runModel.Run) {
	run.Status = runModel.RunStatusComplete
	run.EndTime = time.Now()
	s.saveRun(ctx, *run)
	metrics.CaptureRunMetrics(string(run.Kind), string(run.Status), run.EndTime.Sub(run.CreatedTime))
	log.Info("Run complete", "kind", run.Kind)
}

func (s *service) runError(ctx context.Context, log *logger_i.Logger, run *runModel.Run, err error) error {
	stage := run.Stage
	message := err.Error()
	if se, ok := rfqModel.AsStageError(err); ok {
		stage = se.Stage
		message = se.Cause()
	}
	log.Error("Run failed", "stage", stage, "error", err)

	run.Stage = stage
	run.Status = runModel.RunStatusError
	run.EndTime = time.Now()
	run.Error = runModel.RunError{
		Code:    StatusCode(err),
		Message: message,
		Stage:   stage,
	}
	s.saveRun(ctx, *run)
	metrics.CaptureRunMetrics(string(run.Kind), string(run.Status), run.EndTime.Sub(run.CreatedTime))
	return err
}

func (s *service) executeFormatStep(ctx context.Context, log *logger_i.Logger, run *runModel.Run, doc rfqModel.SourceDocument) (rfqModel.FormatTag, error) {
	logStage(run, rfqModel.StageUpload, log)

	format, err := rfqModel.DetectFormat(doc.Filename)
	if err != nil {
		return "", err
	}
	if doc.Format != "" && doc.Format != format {
		return "", rfqModel.NewStageError(rfqModel.StageUpload, rfqModel.ErrUnsupportedFormat,
			&rfqModel.FormatError{Filename: doc.Filename})
	}
	return format, nil
}

func (s *service) executeTextStep(ctx context.Context, log *logger_i.Logger, run *runModel.Run, content []byte, format rfqModel.FormatTag) (string, error) {
	logStage(run, rfqModel.StageTextExtraction, log)
	s.saveRun(ctx, *run)

	start := time.Now()
	defer func() { metrics.CaptureStageMetrics(string(rfqModel.StageTextExtraction), time.Since(start)) }()

	return s.text.Extract(ctx, content, format)
}

func (s *service) executeFieldStep(ctx context.Context, log *logger_i.Logger, run *runModel.Run, text string) (rfqModel.RfqFields, error) {
	logStage(run, rfqModel.StageFieldExtraction, log)
	s.saveRun(ctx, *run)

	start := time.Now()
	defer func() { metrics.CaptureStageMetrics(string(rfqModel.StageFieldExtraction), time.Since(start)) }()

	extracted, err := s.fields.Extract(ctx, text)
	if err != nil {
		if _, ok := rfqModel.AsStageError(err); !ok {
			err = rfqModel.NewStageError(rfqModel.StageFieldExtraction, rfqModel.ErrExtractionFailed, err)
		}
		return nil, err
	}
	return extracted, nil
}

func (s *service) executeRenderStep(ctx context.Context, log *logger_i.Logger, run *runModel.Run, payload json.RawMessage) (rfqModel.RfqDocument, error) {
	logStage(run, rfqModel.StageRender, log)

	start := time.Now()
	defer func() { metrics.CaptureStageMetrics(string(rfqModel.StageRender), time.Since(start)) }()

	parsed, err := s.parsePayload(ctx, payload)
	if err != nil {
		return rfqModel.RfqDocument{}, err
	}
	return s.renderer.Render(parsed)
}

func (s *service) executeDeliveryStep(ctx context.Context, log *logger_i.Logger, run *runModel.Run, msg delivery.Message) error {
	logStage(run, rfqModel.StageDelivery, log)
	s.saveRun(ctx, *run)

	start := time.Now()
	defer func() { metrics.CaptureStageMetrics(string(rfqModel.StageDelivery), time.Since(start)) }()

	if err := s.mailer.Send(ctx, msg); err != nil {
		if _, ok := rfqModel.AsStageError(err); !ok {
			err = rfqModel.NewStageError(rfqModel.StageDelivery, rfqModel.ErrDeliveryFailed, err)
		}
		return err
	}
	return nil
}

// parsePayload is the strict re-parse of caller-supplied fields.
func (s *service) parsePayload(ctx context.Context, payload json.RawMessage) (rfqModel.RfqFields, error) {
	parsed, ignored, err := fields.ParsePayload(payload)
	if err != nil {
		return nil, rfqModel.NewStageError(rfqModel.StageRender, rfqModel.ErrRenderFailed, err)
	}
	if len(parsed) == 0 && len(ignored) > 0 {
		return nil, rfqModel.NewStageError(rfqModel.StageRender, rfqModel.ErrRenderFailed,
			fmt.Errorf("payload has none of the RFQ fields, got keys: %s", strings.Join(ignored, ", ")))
	}
	if len(ignored) > 0 {
		s.logger.WithTrace(ctx).Warn("Dropped unknown keys from payload", "keys", ignored)
	}
	return parsed, nil
}
