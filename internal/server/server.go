package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/akolanti/rfqflow/internal/adapter/utils"
	"github.com/akolanti/rfqflow/internal/config"
	"github.com/akolanti/rfqflow/internal/handlers"
	"github.com/akolanti/rfqflow/internal/middleware"
	"github.com/akolanti/rfqflow/pkg/logger_i"
)

type Server struct {
	httpServer *http.Server
	logger     *logger_i.Logger
	cfg        config.ServerConfig
}

type ShutdownParams struct {
	GracefulShutdown chan os.Signal
	StopExecution    chan bool
	CloseServices    context.CancelFunc
}

// NewRouter registers every route; exported so tests can drive it with httptest.
func NewRouter(cfg config.ServerConfig, h *handlers.RFQHandler) http.Handler {
	r := utils.NewRouter()
	chain := middleware.New(cfg)

	r.Router.Get("/healthz", h.HealthHandler)
	r.Router.Post("/process", chain.Wrap(h.ProcessHandler))
	r.Router.Post("/generate-rfq", chain.Wrap(h.GenerateRFQHandler))
	r.Router.Get("/status/{id}", chain.Wrap(h.GetStatusHandler))
	return r.Router
}

func CreateServer(cfg config.ServerConfig, h *handlers.RFQHandler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.ListenAddr,
			Handler:      NewRouter(cfg, h),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
		},
		logger: logger_i.NewLogger("Server"),
		cfg:    cfg,
	}
}

func (s *Server) ListenAndServe() {
	s.logger.Info("Server is listening at", "address", s.cfg.ListenAddr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Server crashed", "error", err.Error(), "addr", s.cfg.ListenAddr)
	}
}

func (s *Server) ShutDownHandler(shutdownParams ShutdownParams) {
	state := <-shutdownParams.GracefulShutdown
	s.logger.Info("Server is shutting down", "signal", state.String())

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	done := make(chan struct{})

	go func() {
		s.httpServer.SetKeepAlivesEnabled(false)

		//in-flight requests finish and remove their staged uploads before this returns
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("Could not shutdown gracefully", "error", err)
		}

		shutdownParams.CloseServices()
		close(shutdownParams.StopExecution)
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Gracefully shut down")
	case <-ctx.Done():
		s.logger.Info("Force Shut down")
		os.Exit(1)
	}
}
