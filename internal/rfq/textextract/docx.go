package textextract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/akolanti/rfqflow/pkg/logger_i"
)

const (
	wordNS           = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	markupCompatNS   = "http://schemas.openxmlformats.org/markup-compatibility/2006"
	documentPart     = "word/document.xml"
	maxDocumentBytes = 64 << 20
)

var errNoDocumentPart = errors.New("docx has no " + documentPart)

func extractDOCX(_ context.Context, content []byte, log *logger_i.Logger) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("failed to open %s: %w", documentPart, err)
		}
		defer rc.Close()

		paragraphs, err := readParagraphs(io.LimitReader(rc, maxDocumentBytes))
		if err != nil {
			return "", err
		}
		log.Debug("extractDOCX", "paragraphs", len(paragraphs))
		return strings.Join(paragraphs, "\n"), nil
	}
	return "", errNoDocumentPart
}

// readParagraphs walks document.xml and returns every w:p in document order, table
// cells included. A paragraph takes its slot when it opens, so one nested in a text box
// follows the paragraph holding it. Runs inside mc:Fallback duplicate their mc:Choice
// and are skipped.
func readParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		open       []openParagraph
		inText     bool
		skipDepth  int
	)

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed %s: %w", documentPart, err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if skipDepth > 0 || (t.Name.Space == markupCompatNS && t.Name.Local == "Fallback") {
				skipDepth++
				continue
			}
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				paragraphs = append(paragraphs, "")
				open = append(open, openParagraph{slot: len(paragraphs) - 1, text: &strings.Builder{}})
			case "t":
				inText = true
			case "tab":
				writeCurrent(open, "\t")
			case "br", "cr":
				writeCurrent(open, "\n")
			}

		case xml.EndElement:
			if skipDepth > 0 {
				skipDepth--
				continue
			}
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(open) == 0 {
					continue
				}
				last := open[len(open)-1]
				open = open[:len(open)-1]
				paragraphs[last.slot] = last.text.String()
			}

		case xml.CharData:
			if inText && skipDepth == 0 {
				writeCurrent(open, string(t))
			}
		}
	}
	return paragraphs, nil
}

type openParagraph struct {
	slot int
	text *strings.Builder
}

func writeCurrent(open []openParagraph, s string) {
	if len(open) == 0 {
		return
	}
	open[len(open)-1].text.WriteString(s)
}
