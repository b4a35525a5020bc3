// Package http wires the echo server for the REST delivery.
package http

import (
	"context"
	"log/slog"
	"net"
	"strconv"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	slogecho "github.com/samber/slog-echo"
	"go.uber.org/fx"

	"mediarating/config"
	"mediarating/internal/delivery"
	"mediarating/internal/delivery/http/middleware"
	"mediarating/internal/delivery/http/router"
	"mediarating/internal/delivery/http/validator"
	deliverymiddleware "mediarating/internal/delivery/middleware"
	"mediarating/internal/domain/lifecycle"
)

// HTTPParams holds everything the server needs, injected by Fx.
type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config          *config.Config
	Logger          *slog.Logger
	RouterParams    router.RouterParams
	PathMiddleware  *middleware.PathMiddleware
	CORSMiddleware  *middleware.CORSMiddleware
	ErrorMiddleware *middleware.ErrorMiddleware
	RequestID       *deliverymiddleware.RequestIDMiddleware
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// NewServer builds the echo server with the full middleware chain and
// registers the shutdown hook.
func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.Validator = validator.New()
	echoServer.HTTPErrorHandler = params.ErrorMiddleware.HandleHTTPError

	// Path normalization and CORS run pre-routing: matching stays
	// case-insensitive and trailing-slash tolerant, OPTIONS never reaches
	// the router, and every response, 404s included, carries the headers.
	echoServer.Pre(params.PathMiddleware.Handle)
	echoServer.Pre(params.CORSMiddleware.Handle)
	echoServer.Use(params.RequestID.Process)
	echoServer.Use(slogecho.New(params.Logger))
	echoServer.Use(echomiddleware.Recover())

	appRouter := router.NewRouter(params.RouterParams)
	appRouter.RegisterRoutes(echoServer)

	if params.Config.HTTP.Timeouts.ReadTimeout > 0 {
		echoServer.Server.ReadTimeout = params.Config.HTTP.Timeouts.ReadTimeout
	}
	if params.Config.HTTP.Timeouts.ReadHeaderTimeout > 0 {
		echoServer.Server.ReadHeaderTimeout = params.Config.HTTP.Timeouts.ReadHeaderTimeout
	}
	if params.Config.HTTP.Timeouts.WriteTimeout > 0 {
		echoServer.Server.WriteTimeout = params.Config.HTTP.Timeouts.WriteTimeout
	}
	if params.Config.HTTP.Timeouts.IdleTimeout > 0 {
		echoServer.Server.IdleTimeout = params.Config.HTTP.Timeouts.IdleTimeout
	}

	srv := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

func (s *httpServer) Serve(_ context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))
	if err := s.server.Start(hostPort); err != nil {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
