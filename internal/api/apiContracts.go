package api

import (
	"encoding/json"
	"time"
)

type RunExternalStatus string

const (
	RunStatusError    RunExternalStatus = "Error"
	RunStatusComplete RunExternalStatus = "COMPLETE"
)

type ErrorResponse struct {
	Error OutgoingError `json:"error"`
}

type OutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Kind    string `json:"kind" example:"unsupported format"`
	Message string `json:"message" example:"extension .txt is not accepted, expected .pdf or .docx"`
	Stage   string `json:"stage,omitempty" example:"upload"`
}

type ProcessResponse struct {
	RunId         string          `json:"run_id" example:"5b0c7c1e-6f1a-4d8e-9a57-2f0d3c1b8e11"`
	Status        string          `json:"status" example:"COMPLETE"`
	Filename      string          `json:"filename" example:"request.docx"`
	TextLength    int             `json:"text_length" example:"1824"`
	ExtractedData json.RawMessage `json:"extracted_data" swaggertype:"object"`
}

type GenerateResponse struct {
	RunId     string `json:"run_id"`
	Status    string `json:"status" example:"COMPLETE"`
	Filename  string `json:"filename" example:"rfq_draft.txt"`
	Recipient string `json:"recipient" example:"procurement@yourcompany.com"`
}

type RunResponse struct {
	Id        string         `json:"id"`
	Kind      string         `json:"kind" example:"process"`
	Status    string         `json:"status" example:"RUNNING"`
	Stage     string         `json:"stage" example:"field_extraction"`
	Filename  string         `json:"filename,omitempty"`
	Format    string         `json:"format,omitempty" example:"DOCX"`
	Error     *OutgoingError `json:"error,omitempty"`
	StartTime time.Time      `json:"start_time"`
	EndTime   *time.Time     `json:"end_time,omitempty"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	RunStore string `json:"run_store" example:"redis"`
}

// requests---------------------

// GenerateRequest carries the reviewed fields, either as a JSON object or as a
// string holding the object's JSON text.
type GenerateRequest struct {
	ExtractedData json.RawMessage `json:"extracted_data" swaggertype:"object"`
}
