package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/akolanti/rfqflow/internal/adapter"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

var logRH = logger_i.NewLogger("RequestHandler")

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but can't send a clean status code now
		logRH.Error("Error encoding response", "error", err)
	}
}

func validateContext(ctx context.Context, log *logger_i.Logger) bool {
	if ctx.Err() != nil {
		log.WithTrace(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func closeBody(r *http.Request, log *logger_i.Logger) {
	if err := r.Body.Close(); err != nil {
		log.Error("Couldn't close the request body", "error", err)
	}
}

func WriteErrorResponse(w http.ResponseWriter, httpCode int, stage string, message string) {
	writeJsonResponse(w, httpCode, adapter.BadRequest(stage, message, httpCode))
}

func writePipelineError(w http.ResponseWriter, err error) {
	code, body := adapter.ToErrorResponse(err)
	writeJsonResponse(w, code, body)
}
