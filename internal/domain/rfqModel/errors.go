package rfqModel

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrRenderFailed      = errors.New("render failed")
	ErrDeliveryFailed    = errors.New("delivery failed")
)

// StageError names the pipeline stage that failed, the failure kind and the cause.
// errors.Is matches both the kind and anything in the cause chain.
type StageError struct {
	Stage Stage
	Kind  error
	Err   error
}

func NewStageError(stage Stage, kind error, err error) *StageError {
	return &StageError{Stage: stage, Kind: kind, Err: err}
}

func (e *StageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Stage, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %v", e.Stage, e.Kind, e.Err)
}

func (e *StageError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Cause is the upstream message without the stage and kind prefix.
func (e *StageError) Cause() string {
	if e.Err == nil {
		return e.Kind.Error()
	}
	return e.Err.Error()
}

func AsStageError(err error) (*StageError, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
