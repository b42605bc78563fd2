// Package server exposes chart and summary parsing over a local HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Zuo-Peng/karte/internal/config"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

const bodyLimit = "10M"

// New builds the echo instance with middleware and routes installed.
func New(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(Recovery(logger))
	e.Use(RequestID())
	e.Use(Logger(logger))
	e.Use(echomw.BodyLimit(bodyLimit))

	e.GET("/healthz", Healthz)

	h := NewHandler(cfg.Layout(), cfg.MinInputChars, cfg.MaxInputChars)
	h.RegisterRoutes(e.Group("/api"))
	return e
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, e *echo.Echo, addr string, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}
