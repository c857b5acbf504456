package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// StatusClientClosedRequest is reported when the caller abandoned the search.
const StatusClientClosedRequest = 499

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			body := map[string]string{"error": ve.Error(), "title": "validation error"}
			if ve.Param != "" {
				body["param"] = ve.Param
			}
			_ = c.JSON(http.StatusBadRequest, body)
			return
		}

		var nf *NotFoundError
		if errors.As(err, &nf) {
			_ = c.JSON(http.StatusNotFound, map[string]string{"error": nf.Error(), "title": "not found"})
			return
		}

		if errors.Is(err, ErrCancelled) {
			slog.Warn("Search cancelled", "error", err, "uri", c.Request().RequestURI)
			_ = c.JSON(StatusClientClosedRequest, map[string]string{"error": "request cancelled"})
			return
		}

		if errors.Is(err, ErrBackendUnavailable) {
			slog.Error("Search backend unavailable", "error", err)
			_ = c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "search backend unavailable"})
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			msg := fmt.Sprintf("%v", he.Message)
			_ = c.JSON(he.Code, map[string]string{"error": msg})
			return
		}

		slog.Error("Unhandled error", "error", err)
		_ = c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
