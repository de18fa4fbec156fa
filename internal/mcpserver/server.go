// Package mcpserver exposes the RFQ pipeline as Model Context Protocol tools.
package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/akolanti/rfqflow/internal/rfq"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const Version = "0.1.0"

var ErrMissingService = errors.New("mcp: rfq service is required")

type Server struct {
	service rfq.Service
	server  *mcp.Server
}

func NewServer(service rfq.Service) (*Server, error) {
	if service == nil {
		return nil, ErrMissingService
	}

	impl := &mcp.Implementation{
		Name:    "rfqflow",
		Version: Version,
	}

	s := &Server{
		service: service,
		server:  mcp.NewServer(impl, nil),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves the streamable HTTP transport on addr.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = httpServer.Shutdown(context.Background())
	}()

	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
