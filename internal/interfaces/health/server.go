package health

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"
	"github.com/valyala/fasthttp"

	"github.com/DFR0S7/CMR-Bot/internal/platform/logging"
)

// Server exposes the liveness endpoints free-tier hosts and the self-pinger
// hit. It carries no bot state; a 200 only means the process is up.
type Server struct {
	addr    string
	service string
	version string
	logger  *logging.Logger
	httpd   *fasthttp.Server
}

func NewServer(addr, service, version string, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}

	s := &Server{
		addr:    addr,
		service: service,
		version: version,
		logger:  logger,
	}
	s.httpd = &fasthttp.Server{
		Handler: s.handle,
		Name:    service,
	}
	return s
}

// Run serves until the context is canceled.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpd.ListenAndServe(s.addr)
	}()

	s.logger.Info("health server listening", "addr", s.addr)

	select {
	case <-ctx.Done():
		if err := s.httpd.Shutdown(); err != nil {
			return fmt.Errorf("shutdown health server: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	}
}

func (s *Server) handle(ctx *fasthttp.RequestCtx) {
	switch string(ctx.Path()) {
	case "/":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetStatusCode(fasthttp.StatusOK)
		ctx.SetBodyString("OK")
	case "/healthz":
		s.handleHealthz(ctx)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
	}
}

func (s *Server) handleHealthz(ctx *fasthttp.RequestCtx) {
	body, err := sonic.Marshal(map[string]string{
		"status":  "ok",
		"service": s.service,
		"version": s.version,
	})
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}
