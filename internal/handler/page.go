package handler

import (
	"bytes"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"

	"popdash/internal/domain"
	"popdash/internal/view"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type plotSlot struct {
	Name string
	Src  template.URL
}

type pageData struct {
	Inputs    domain.UIInputState
	Countries []string
	Plots     []plotSlot
	Error     string
}

// PageHandler renders the dashboard page with its input widgets.
type PageHandler struct{}

// NewPageHandler creates a new page handler.
func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Handle serves GET /.
func (h *PageHandler) Handle(c echo.Context) error {
	data := pageData{Countries: domain.SelectableCountries}

	in, err := domain.ParseInputState(c.QueryParam("world"), c.QueryParam("country"))
	if err != nil {
		data.Error = err.Error()
		in = domain.DefaultInputState()
	}
	data.Inputs = in
	query := inputQuery(in).Encode()
	for _, slot := range []string{view.SlotShow, view.SlotInitEpidemic, view.SlotPopContinent} {
		data.Plots = append(data.Plots, plotSlot{
			Name: slot,
			Src:  template.URL("/plot/" + slot + "?" + query),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		slog.ErrorContext(c.Request().Context(), "template error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func inputQuery(in domain.UIInputState) url.Values {
	q := url.Values{}
	q.Set("world", strconv.FormatBool(in.ShowWorld))
	q.Set("country", in.SelectedCountry)
	return q
}
