package textextract

import (
	"context"
	"time"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

// TextExtractor turns an uploaded document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, content []byte, format rfqModel.FormatTag) (string, error)
}

type Extractor struct {
	logger      *logger_i.Logger
	pageTimeout time.Duration
}

func New() *Extractor {
	return &Extractor{
		logger:      logger_i.NewLogger("TextExtractor"),
		pageTimeout: config.PDFPageExtractLimit,
	}
}

// DetectFormat is the upload gate, it runs before anything is read or staged.
func DetectFormat(filename string) (rfqModel.FormatTag, error) {
	return rfqModel.DetectFormat(filename)
}

// Extract is a pure transformation over content. Empty content yields "" for every
// supported format.
func (e *Extractor) Extract(ctx context.Context, content []byte, format rfqModel.FormatTag) (string, error) {
	log := e.logger.WithTrace(ctx)

	var extract func(context.Context, []byte, *logger_i.Logger) (string, error)
	switch format {
	case rfqModel.PDF:
		extract = e.extractPDF
	case rfqModel.DOCX:
		extract = extractDOCX
	default:
		log.Warn("Refusing unsupported format", "format", format)
		return "", rfqModel.NewStageError(rfqModel.StageTextExtraction, rfqModel.ErrUnsupportedFormat, nil)
	}

	if len(content) == 0 {
		log.Debug("Empty document", "format", format)
		return "", nil
	}

	log.Debug("Extracting text", "format", format, "bytes", len(content))
	text, err := extract(ctx, content, log)
	if err != nil {
		log.Error("Text extraction failed", "format", format, "error", err)
		return "", rfqModel.NewStageError(rfqModel.StageTextExtraction, rfqModel.ErrExtractionFailed, err)
	}
	log.Debug("Extracted text", "format", format, "chars", len(text))
	return text, nil
}
