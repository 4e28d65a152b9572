package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"popdash/internal/domain"
	"popdash/internal/view"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrUnknownCountry),
		errors.Is(err, view.ErrUnknownSlot):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())

	case errors.Is(err, domain.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())

	case errors.Is(err, domain.ErrInsufficientData),
		errors.Is(err, domain.ErrPivotConflict):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}
}
