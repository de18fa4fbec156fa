package fields

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
)

var (
	errEmptyPayload = errors.New("no data provided")
	codeFence       = []byte("```")
)

// ParseFields is the only way text becomes RfqFields. It is a strict JSON decode followed
// by a schema check; nothing in the payload is ever evaluated. It returns the unknown keys
// it dropped so callers can log them.
func ParseFields(raw []byte) (rfqModel.RfqFields, []string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil, errEmptyPayload
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var document any
	if err := decoder.Decode(&document); err != nil {
		return nil, nil, fmt.Errorf("payload is not valid JSON: %w", err)
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, nil, errors.New("payload has trailing data after the JSON object")
	}
	if err := rfqFieldsSchema.Validate(document); err != nil {
		return nil, nil, fmt.Errorf("payload does not match the RFQ field contract: %w", err)
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &members); err != nil {
		return nil, nil, fmt.Errorf("payload is not a JSON object: %w", err)
	}

	fields := make(rfqModel.RfqFields, len(rfqModel.FieldKeys))
	var ignored []string
	for name, value := range members {
		key := rfqModel.FieldKey(name)
		if !key.Known() {
			ignored = append(ignored, name)
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, value); err != nil {
			return nil, nil, fmt.Errorf("field %s: %w", name, err)
		}
		if compact.String() == "null" {
			continue
		}
		fields[key] = compact.Bytes()
	}
	sort.Strings(ignored)
	return fields, ignored, nil
}

// ParsePayload accepts what a caller resubmits: either the JSON object itself or a JSON
// string holding the object's text (as shown to the user for editing).
func ParsePayload(raw json.RawMessage) (rfqModel.RfqFields, []string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || string(trimmed) == "null" {
		return nil, nil, errEmptyPayload
	}
	if trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return nil, nil, fmt.Errorf("payload string is not valid JSON: %w", err)
		}
		trimmed = []byte(text)
	}
	return ParseFields(StripCodeFence(trimmed))
}

// MarshalFields is the inverse of ParseFields. Keys come out sorted.
func MarshalFields(f rfqModel.RfqFields) ([]byte, error) {
	members := make(map[string]json.RawMessage, len(f))
	for key, value := range f {
		if len(value) == 0 {
			continue
		}
		members[string(key)] = value
	}
	return json.Marshal(members)
}

// StripCodeFence removes one surrounding Markdown fence (```json ... ```), which models
// add even when told not to.
func StripCodeFence(b []byte) []byte {
	s := bytes.TrimSpace(b)
	if !bytes.HasPrefix(s, codeFence) {
		return s
	}
	newline := bytes.IndexByte(s, '\n')
	if newline < 0 {
		return s
	}
	body := bytes.TrimSpace(s[newline+1:])
	if !bytes.HasSuffix(body, codeFence) {
		return s
	}
	return bytes.TrimSpace(body[:len(body)-len(codeFence)])
}
