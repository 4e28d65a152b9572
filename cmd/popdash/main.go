package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"popdash/internal/app"
	"popdash/internal/config"
	"popdash/internal/handler"
	"popdash/internal/logger"
	"popdash/internal/worldbank"
)

func main() {
	ctx := context.Background()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"port", cfg.Port,
		"world_boundaries", cfg.WorldBoundariesPath,
		"county_data", cfg.CountyDataPath,
		"worldbank_url", cfg.WorldBankBaseURL,
		"indicator", cfg.WorldBankIndicator,
		"years", fmt.Sprintf("%d-%d", cfg.WorldBankStart, cfg.WorldBankEnd))

	client := worldbank.NewClient(cfg.WorldBankBaseURL, cfg.WorldBankTimeout)

	dashboard, err := app.Build(ctx, cfg, client)
	if err != nil {
		slog.ErrorContext(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(ctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(ctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	handler.Register(e, dashboard)

	address := fmt.Sprintf(":%s", cfg.Port)

	go func() {
		slog.InfoContext(ctx, "starting popdash server", "address", address)
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.InfoContext(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(ctx, "server shutdown failed", "error", err)
	}
}
