// Package httperr maps storage errors onto HTTP error responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
)

// NotFoundOr returns 404 with msg when err indicates a missing row.
// Any other error becomes a 500 so storage failures are not reported
// as absent records.
func NotFoundOr(err error, msg string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return echo.NewHTTPError(http.StatusNotFound, msg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
