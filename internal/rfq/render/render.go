package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
)

const (
	title        = "REQUEST FOR QUOTE"
	notAvailable = "N/A"
)

var headers = map[rfqModel.FieldKey]string{
	rfqModel.VendorInfo:   "Vendor Information",
	rfqModel.Products:     "Products/Services",
	rfqModel.Quantities:   "Quantities",
	rfqModel.Timeline:     "Timeline",
	rfqModel.Requirements: "Special Requirements",
}

// RfqRenderer fills the fixed RFQ template.
type RfqRenderer interface {
	Render(fields rfqModel.RfqFields) (rfqModel.RfqDocument, error)
}

type Renderer struct{}

func New() *Renderer {
	return &Renderer{}
}

// Render is pure: the same fields always produce the same bytes.
func (r *Renderer) Render(fields rfqModel.RfqFields) (rfqModel.RfqDocument, error) {
	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")

	for _, key := range rfqModel.FieldKeys {
		value := notAvailable
		if raw, ok := fields.Get(key); ok {
			formatted, err := formatValue(raw)
			if err != nil {
				return rfqModel.RfqDocument{}, rfqModel.NewStageError(rfqModel.StageRender, rfqModel.ErrRenderFailed,
					fmt.Errorf("field %s: %w", key, err))
			}
			if formatted != "" {
				value = formatted
			}
		}

		b.WriteString("\n")
		b.WriteString(headers[key])
		if strings.Contains(value, "\n") {
			b.WriteString(":\n")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(value)
		b.WriteString("\n")
	}

	return rfqModel.RfqDocument{Filename: config.RFQDraftFilename, Body: b.String()}, nil
}

func formatValue(raw json.RawMessage) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return "", fmt.Errorf("value is not valid JSON: %w", err)
	}

	switch v := value.(type) {
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			text := inline(item)
			if text == "" {
				continue
			}
			lines = append(lines, "- "+text)
		}
		return strings.Join(lines, "\n"), nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			text := inline(v[k])
			if text == "" {
				text = notAvailable
			}
			lines = append(lines, k+": "+text)
		}
		return strings.Join(lines, "\n"), nil
	default:
		return inline(v), nil
	}
}

// inline renders a value on one line; nested containers keep their JSON form.
func inline(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
