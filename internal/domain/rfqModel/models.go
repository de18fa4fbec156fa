package rfqModel

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

type FormatTag string

const (
	PDF  FormatTag = "PDF"
	DOCX FormatTag = "DOCX"
)

// DetectFormat maps a filename extension onto a format tag.
func DetectFormat(filename string) (FormatTag, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF, nil
	case ".docx":
		return DOCX, nil
	default:
		return "", NewStageError(StageUpload, ErrUnsupportedFormat,
			&FormatError{Filename: filepath.Base(filename)})
	}
}

type FormatError struct {
	Filename string
}

func (e *FormatError) Error() string {
	ext := filepath.Ext(e.Filename)
	if ext == "" {
		return "file " + e.Filename + " has no extension, expected .pdf or .docx"
	}
	return "extension " + ext + " is not accepted, expected .pdf or .docx"
}

// SourceDocument lives only for the duration of one process request.
type SourceDocument struct {
	Filename string
	Content  []byte
	Format   FormatTag
}

type FieldKey string

const (
	VendorInfo   FieldKey = "vendor_info"
	Products     FieldKey = "products"
	Quantities   FieldKey = "quantities"
	Timeline     FieldKey = "timeline"
	Requirements FieldKey = "requirements"
)

// FieldKeys is the fixed field list, in template order.
var FieldKeys = []FieldKey{VendorInfo, Products, Quantities, Timeline, Requirements}

func (k FieldKey) Known() bool {
	for _, known := range FieldKeys {
		if k == known {
			return true
		}
	}
	return false
}

// RfqFields holds the model's values verbatim as compact JSON. A missing key means N/A.
type RfqFields map[FieldKey]json.RawMessage

func (f RfqFields) Get(key FieldKey) (json.RawMessage, bool) {
	v, ok := f[key]
	return v, ok && len(v) > 0
}

// StringField is a convenience for building fields in code and tests.
func StringField(value string) json.RawMessage {
	b, _ := json.Marshal(value)
	return b
}

type RfqDocument struct {
	Filename string
	Body     string
}

type Stage string

const (
	StageUpload          Stage = "upload"
	StageTextExtraction  Stage = "text_extraction"
	StageFieldExtraction Stage = "field_extraction"
	StageRender          Stage = "render"
	StageDelivery        Stage = "delivery"
)
