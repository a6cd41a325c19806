package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/pkg/log"
)

// Server is the HTTP transport. It implements srv.Service.
type Server struct {
	echo *echo.Echo
	addr string
}

func NewServer(ctx context.Context, cfg *config.AppConfig, analyzer Analyzer, metrics *Metrics) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Use(requestContext(log.FromCtx(ctx), cfg.RequestTimeout))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		Skipper: func(c echo.Context) bool {
			return !strings.HasPrefix(c.Request().URL.Path, "/api/")
		},
		AllowOrigins: []string{cfg.AllowedOrigin},
		AllowMethods: []string{http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	e.Use(middleware.BodyLimit(cfg.MaxBody))

	NewHandler(analyzer, cfg.ExposeErrors).Register(e)
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	}

	return &Server{echo: e, addr: cfg.Addr()}
}

func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("http server listening")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("http server shutting down")
	return s.echo.Shutdown(ctx)
}

// errorHandler renders framework errors (404, 405, 413, panics) in the API error shape.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, errorBody{Status: "error", Message: msg})
}
