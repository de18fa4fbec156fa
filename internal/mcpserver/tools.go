package mcpserver

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ExtractInput struct {
	Filename      string `json:"filename" jsonschema:"document name, its extension (.pdf or .docx) selects the format"`
	ContentBase64 string `json:"content_base64" jsonschema:"the document bytes, base64 encoded"`
}

type ExtractOutput struct {
	RunId  string         `json:"run_id"`
	Fields map[string]any `json:"fields"`
}

type RenderInput struct {
	Fields map[string]any `json:"fields" jsonschema:"RFQ fields keyed by vendor_info, products, quantities, timeline and requirements"`
}

type RenderOutput struct {
	Filename string `json:"filename"`
	Body     string `json:"body"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "extract_rfq_fields",
		Description: "Extract RFQ fields (vendor info, products, quantities, timeline, requirements) from a PDF or DOCX document",
	}, s.handleExtract)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "render_rfq",
		Description: "Render RFQ fields into the plain-text RFQ draft. Nothing is sent",
	}, s.handleRender)
}

func (s *Server) handleExtract(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExtractInput,
) (*mcp.CallToolResult, ExtractOutput, error) {
	content, err := base64.StdEncoding.DecodeString(input.ContentBase64)
	if err != nil {
		return nil, ExtractOutput{}, fmt.Errorf("content_base64 is not valid base64: %w", err)
	}

	result, err := s.service.ProcessDocument(ctx, rfqModel.SourceDocument{
		Filename: input.Filename,
		Content:  content,
	})
	if err != nil {
		return nil, ExtractOutput{}, err
	}

	output := ExtractOutput{
		RunId:  result.RunId,
		Fields: make(map[string]any, len(result.Fields)),
	}
	for key, raw := range result.Fields {
		value, err := decodeField(raw)
		if err != nil {
			return nil, ExtractOutput{}, fmt.Errorf("field %s: %w", key, err)
		}
		output.Fields[string(key)] = value
	}
	return nil, output, nil
}

// decodeField keeps numbers as json.Number so they re-encode as the literal the model wrote.
func decodeField(raw json.RawMessage) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var value any
	if err := decoder.Decode(&value); err != nil {
		return nil, err
	}
	return value, nil
}

func (s *Server) handleRender(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RenderInput,
) (*mcp.CallToolResult, RenderOutput, error) {
	payload, err := json.Marshal(input.Fields)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	if input.Fields == nil {
		payload = []byte("{}")
	}

	doc, err := s.service.PreviewRFQ(ctx, payload)
	if err != nil {
		return nil, RenderOutput{}, err
	}
	return nil, RenderOutput{Filename: doc.Filename, Body: doc.Body}, nil
}
