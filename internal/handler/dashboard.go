package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"popdash/internal/trend"
	"popdash/internal/view"
)

// Dashboard is the read-only state the HTTP layer serves from.
type Dashboard struct {
	Outputs view.Registry
	Tables  view.Tables
	Trend   trend.Fit
}

// Register mounts every dashboard route on e.
func Register(e *echo.Echo, d *Dashboard) {
	page := NewPageHandler()
	plots := NewPlotHandler(d.Outputs)
	exports := NewExportHandler(d.Tables, d.Trend)
	health := NewHealthHandler()

	e.GET("/", page.Handle)
	e.GET("/plot/:slot", plots.Handle)
	e.GET("/trend", exports.HandleTrend)
	e.GET("/export.xlsx", exports.HandleWorkbook)
	e.GET("/health", health.Handle)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
