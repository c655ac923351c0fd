// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"inkwell-server/models"

	"github.com/labstack/echo/v4"
)

// storeHTTPError maps store-level failures onto the HTTP taxonomy without
// leaking internals.
func storeHTTPError(err error, notFoundMsg string) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return &echo.HTTPError{Code: http.StatusNotFound, Message: notFoundMsg}
	case errors.Is(err, models.ErrForbidden):
		return &echo.HTTPError{Code: http.StatusForbidden, Message: "Not authorized"}
	case errors.Is(err, models.ErrConflict):
		return &echo.HTTPError{Code: http.StatusConflict, Message: "Resource already exists"}
	case errors.Is(err, models.ErrInvalidOrExpired):
		return &echo.HTTPError{Code: http.StatusBadRequest, Message: "Invalid or expired"}
	default:
		return echo.ErrInternalServerError
	}
}

func paramUint(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: name + " must be a positive integer",
		}
	}
	return uint(id), nil
}
