package runModel

import (
	"context"
	"time"

	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
)

type RunStatus string

type RunKind string

const (
	RunStatusRunning  RunStatus = "RUNNING"
	RunStatusComplete RunStatus = "COMPLETE"
	RunStatusError    RunStatus = "Error"

	RunKindProcess  RunKind = "process"
	RunKindGenerate RunKind = "generate"
)

// Run is the outcome record of one pipeline invocation. It never carries document
// text, extracted fields or the rendered RFQ.
type Run struct {
	Id          string             `json:"id"`
	TraceId     string             `json:"trace_id"`
	Kind        RunKind            `json:"kind"`
	Filename    string             `json:"filename,omitempty"`
	Format      rfqModel.FormatTag `json:"format,omitempty"`
	Stage       rfqModel.Stage     `json:"stage"`
	Status      RunStatus          `json:"status"`
	Error       RunError           `json:"error,omitempty"`
	CreatedTime time.Time          `json:"created_time"`
	EndTime     time.Time          `json:"end_time,omitempty"`
}

type RunError struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Stage   rfqModel.Stage `json:"stage,omitempty"`
}

type RunStore interface {
	GetRun(ctx context.Context, runId string) (Run, bool)
	SaveRun(ctx context.Context, run Run) error
	DeleteRun(ctx context.Context, runId string)
}
