// Package httpapi is the HTTP boundary of the server: routing, request
// binding and validation, bearer authentication and error responses.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo   *echo.Echo
	addr   string
	logger logging.Logger
}

// NewServer builds the echo instance with middleware and routes registered.
func NewServer(addr string, users UserService, verifier TokenVerifier, logger logging.Logger) *Server {
	logger = logger.With("module", "http")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = newHTTPErrorHandler(logger)

	e.Use(middleware.RequestID())
	e.Use(NewLoggerMiddleware(logger).Handle)
	e.Use(middleware.Recover())

	NewRouter(NewUserHandler(users), NewAuthMiddleware(verifier)).RegisterRoutes(e)

	return &Server{echo: e, addr: addr, logger: logger}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	s.logger.Info(context.Background(), "starting HTTP server", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down HTTP server")
	return s.echo.Shutdown(ctx)
}
