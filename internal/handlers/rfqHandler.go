package handlers

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/domain/rfqModel"
	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/akolanti/rfqflow/internal/staging"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

const (
	uploadField        = "file"
	multipartOverhead  = 1 << 20
	maxGenerateRequest = 1 << 20
)

var errNoFile = errors.New("multipart field \"file\" is required")

type RFQHandler struct {
	service       rfq.Service
	area          *staging.Area
	maxUploadSize int64
	runStoreName  string
	logger        *logger_i.Logger
}

func NewRFQHandler(service rfq.Service, area *staging.Area, cfg config.ServerConfig, runStoreName string) *RFQHandler {
	return &RFQHandler{
		service:       service,
		area:          area,
		maxUploadSize: cfg.MaxUploadSize,
		runStoreName:  runStoreName,
		logger:        logger_i.NewLogger("RFQHandler"),
	}
}

// stageUpload streams the "file" part into the staging area. The extension is checked
// before a single byte is written.
func (h *RFQHandler) stageUpload(r *http.Request) (*staging.File, error) {
	reader, err := r.MultipartReader()
	if err != nil {
		return nil, err
	}
	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, errNoFile
		}
		if err != nil {
			return nil, err
		}
		if part.FormName() != uploadField {
			_ = part.Close()
			continue
		}
		return h.stagePart(part)
	}
}

func (h *RFQHandler) stagePart(part *multipart.Part) (*staging.File, error) {
	defer part.Close()
	filename := part.FileName()
	if _, err := rfqModel.DetectFormat(filename); err != nil {
		return nil, err
	}
	return h.area.Stage(part, filename, h.maxUploadSize)
}
