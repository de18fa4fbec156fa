package textextract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/akolanti/rfqflow/pkg/logger_i"
	"github.com/dslipak/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	//pdfcpu would otherwise write its config under the user's home
	api.DisableConfigDir()
}

func (e *Extractor) extractPDF(ctx context.Context, content []byte, log *logger_i.Logger) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	expected, preflightErr := countPages(content)
	if preflightErr != nil {
		log.Warn("pdf preflight could not count pages", "error", preflightErr)
	}

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	numPages := reader.NumPage()
	log.Debug("extractPDF", "number of pages", numPages)
	if preflightErr == nil && expected != numPages {
		log.Warn("pdf page count mismatch", "preflight", expected, "reader", numPages)
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			log.Debug("extractPDF", "page", i, "skipped", "null page")
			continue
		}

		pageText, err := e.protectExtract(ctx, page)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			// a page without extractable text contributes nothing
			log.Warn("Error parsing page content", "page", i, "error", err)
			continue
		}
		b.WriteString(pageText)
	}
	return b.String(), nil
}

func (e *Extractor) protectExtract(ctx context.Context, page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				resChan <- result{"", fmt.Errorf("page decode panic: %v", r)}
			}
		}()
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()

	timer := time.NewTimer(e.pageTimeout)
	defer timer.Stop()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-timer.C:
		return "", errors.New("page extraction timeout")
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func countPages(content []byte) (int, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return api.PageCount(bytes.NewReader(content), conf)
}
