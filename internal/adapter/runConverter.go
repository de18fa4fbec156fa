package adapter

import (
	"net/http"

	"github.com/akolanti/rfqflow/internal/api"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/domain/runModel"
	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/akolanti/rfqflow/internal/rfq/fields"
)

func ToProcessResponse(filename string, result rfq.ProcessResult) (api.ProcessResponse, error) {
	data, err := fields.MarshalFields(result.Fields)
	if err != nil {
		return api.ProcessResponse{}, err
	}
	return api.ProcessResponse{
		RunId:         result.RunId,
		Status:        string(api.RunStatusComplete),
		Filename:      filename,
		TextLength:    result.TextLength,
		ExtractedData: data,
	}, nil
}

func ToGenerateResponse(result rfq.GenerateResult) api.GenerateResponse {
	return api.GenerateResponse{
		RunId:     result.RunId,
		Status:    string(api.RunStatusComplete),
		Filename:  result.Document.Filename,
		Recipient: result.Recipient,
	}
}

func ToRunResponse(run runModel.Run) api.RunResponse {
	var errorPtr *api.OutgoingError
	if run.Error.Message != "" || run.Error.Code != 0 {
		errorPtr = &api.OutgoingError{
			Code:    run.Error.Code,
			Message: run.Error.Message,
			Stage:   string(run.Error.Stage),
		}
	}

	response := api.RunResponse{
		Id:        run.Id,
		Kind:      string(run.Kind),
		Status:    string(run.Status),
		Stage:     string(run.Stage),
		Filename:  run.Filename,
		Format:    string(run.Format),
		Error:     errorPtr,
		StartTime: run.CreatedTime,
	}
	if !run.EndTime.IsZero() {
		end := run.EndTime
		response.EndTime = &end
	}
	return response
}

// ToErrorResponse translates a pipeline error into a status code and body naming the
// failed stage and the upstream cause.
func ToErrorResponse(err error) (int, api.ErrorResponse) {
	code := rfq.StatusCode(err)
	se, ok := rfqModel.AsStageError(err)
	if !ok {
		return code, BadRequest("", http.StatusText(code), code)
	}

	return code, api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    code,
			Kind:    se.Kind.Error(),
			Message: se.Cause(),
			Stage:   string(se.Stage),
		},
	}
}

func BadRequest(stage string, message string, code int) api.ErrorResponse {
	return api.ErrorResponse{
		Error: api.OutgoingError{
			Code:    code,
			Kind:    http.StatusText(code),
			Message: message,
			Stage:   stage,
		},
	}
}
