package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/akolanti/rfqflow/internal/adapter"
	"github.com/akolanti/rfqflow/internal/adapter/utils"
	"github.com/akolanti/rfqflow/internal/api"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/staging"
)

// HealthHandler godoc
// @Summary      Liveness check
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /healthz [get]
func (h *RFQHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok", RunStore: h.runStoreName})
}

// ProcessHandler godoc
// @Summary      Extract RFQ fields from a document
// @Description  Accepts one PDF or DOCX upload, extracts its text and asks the language model for the RFQ fields. The fields are returned for review; nothing is sent.
// @Tags         RFQ
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "The PDF or DOCX document"
// @Success      200  {object}  api.ProcessResponse  "Extracted fields"
// @Failure      400  {object}  api.ErrorResponse    "Unsupported format or bad upload"
// @Failure      413  {object}  api.ErrorResponse    "Upload too large"
// @Failure      422  {object}  api.ErrorResponse    "Text could not be extracted"
// @Failure      502  {object}  api.ErrorResponse    "Language model call failed"
// @Router       /process [post]
func (h *RFQHandler) ProcessHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context(), h.logger) {
		return
	}
	log := h.logger.WithTrace(r.Context())
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)

	staged, err := h.stageUpload(r)
	if err != nil {
		h.writeUploadError(w, err)
		return
	}
	defer func() {
		if err := staged.Remove(); err != nil {
			log.Error("Could not remove staged upload", "path", staged.Path, "error", err)
		}
	}()

	content, err := staged.Bytes()
	if err != nil {
		log.Error("Could not read staged upload", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, string(rfqModel.StageUpload), "Storage error")
		return
	}

	result, err := h.service.ProcessDocument(r.Context(), rfqModel.SourceDocument{
		Filename: staged.Filename,
		Content:  content,
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}

	response, err := adapter.ToProcessResponse(staged.Filename, result)
	if err != nil {
		log.Error("Could not encode extracted fields", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, string(rfqModel.StageFieldExtraction), "Internal Server Error")
		return
	}
	writeJsonResponse(w, http.StatusOK, response)
}

// GenerateRFQHandler godoc
// @Summary      Render and send the RFQ draft
// @Description  Takes the reviewed fields back, renders rfq_draft.txt and emails it to the reviewer.
// @Tags         RFQ
// @Accept       json
// @Produce      json
// @Param        request  body      api.GenerateRequest   true  "Reviewed fields, as an object or a JSON string"
// @Success      200      {object}  api.GenerateResponse  "Draft sent"
// @Failure      400      {object}  api.ErrorResponse     "Fields could not be parsed"
// @Failure      502      {object}  api.ErrorResponse     "Email delivery failed"
// @Router       /generate-rfq [post]
func (h *RFQHandler) GenerateRFQHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context(), h.logger) {
		return
	}
	defer closeBody(r, h.logger)

	var request api.GenerateRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxGenerateRequest))
	if err := decoder.Decode(&request); err != nil {
		h.logger.WithTrace(r.Context()).Warn("Bad generate request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, string(rfqModel.StageRender), "Request body must be a JSON object with extracted_data")
		return
	}

	result, err := h.service.GenerateRFQ(r.Context(), request.ExtractedData)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToGenerateResponse(result))
}

// GetStatusHandler godoc
// @Summary      Get run status
// @Description  Retrieves the outcome record of one pipeline run. Records hold no document content.
// @Tags         Run Status
// @Produce      json
// @Param        id   path      string  true  "Run ID"
// @Success      200  {object}  api.RunResponse    "The run record"
// @Failure      404  {object}  api.ErrorResponse  "Run not found"
// @Router       /status/{id} [get]
func (h *RFQHandler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context(), h.logger) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	run, isFound := h.service.GetRun(r.Context(), idString)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, "", "Run not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToRunResponse(run))
}

func (h *RFQHandler) writeUploadError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr), errors.Is(err, staging.ErrTooLarge):
		WriteErrorResponse(w, http.StatusRequestEntityTooLarge, string(rfqModel.StageUpload), "File too large")
	case errors.Is(err, rfqModel.ErrUnsupportedFormat):
		writePipelineError(w, err)
	case errors.Is(err, errNoFile), errors.Is(err, http.ErrNotMultipart):
		WriteErrorResponse(w, http.StatusBadRequest, string(rfqModel.StageUpload), err.Error())
	default:
		h.logger.Warn("Bad upload", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, string(rfqModel.StageUpload), "Could not read the upload")
	}
}
