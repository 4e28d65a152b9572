package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"popdash/internal/chart"
	"popdash/internal/domain"
	"popdash/internal/metrics"
	"popdash/internal/view"
)

var contentTypes = map[string]string{
	"png": "image/png",
	"svg": "image/svg+xml",
}

// PlotHandler renders one output slot per request.
type PlotHandler struct {
	outputs view.Registry
}

// NewPlotHandler creates a handler serving the given registry.
func NewPlotHandler(outputs view.Registry) *PlotHandler {
	return &PlotHandler{outputs: outputs}
}

// Handle serves GET /plot/:slot. A failing render still returns an image,
// annotated with the error, so the other slots on the page are unaffected.
func (h *PlotHandler) Handle(c echo.Context) error {
	ctx := c.Request().Context()
	slot := c.Param("slot")
	if _, ok := h.outputs[slot]; !ok {
		return mapDomainError(view.ErrUnknownSlot)
	}

	format := c.QueryParam("format")
	if format == "" {
		format = "png"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported format")
	}

	start := time.Now()
	status := http.StatusOK

	in := domain.RawInputs{WorldValue: c.QueryParam("world"), CountryValue: c.QueryParam("country")}
	p, err := h.outputs.Render(slot, in)
	if err != nil {
		status = mapDomainError(err).Code
		slog.WarnContext(ctx, "render failed", "slot", slot, "status", status, "error", err)
		p = chart.Error(slot, err)
	}

	img, err := chart.Encode(p, format)
	if err != nil {
		metrics.RenderTotal.WithLabelValues(slot, "encode_error").Inc()
		slog.ErrorContext(ctx, "encode failed", "slot", slot, "format", format, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	metrics.RenderTotal.WithLabelValues(slot, strconv.Itoa(status)).Inc()
	metrics.RenderDuration.WithLabelValues(slot).Observe(time.Since(start).Seconds())

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(status, contentType, img)
}
