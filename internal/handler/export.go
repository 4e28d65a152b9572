package handler

import (
	"bytes"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"popdash/internal/report"
	"popdash/internal/trend"
	"popdash/internal/view"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves the derived tables and the trend diagnostics.
type ExportHandler struct {
	tables view.Tables
	fit    trend.Fit
}

// NewExportHandler creates a new export handler.
func NewExportHandler(tables view.Tables, fit trend.Fit) *ExportHandler {
	return &ExportHandler{tables: tables, fit: fit}
}

// HandleWorkbook serves GET /export.xlsx.
func (h *ExportHandler) HandleWorkbook(c echo.Context) error {
	f, err := report.Workbook(h.tables, h.fit)
	if err != nil {
		slog.ErrorContext(c.Request().Context(), "workbook build failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		slog.ErrorContext(c.Request().Context(), "workbook write failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="popdash.xlsx"`)
	return c.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

// HandleTrend serves GET /trend with the regression summary as text.
func (h *ExportHandler) HandleTrend(c echo.Context) error {
	return c.String(http.StatusOK, h.fit.Summary())
}
