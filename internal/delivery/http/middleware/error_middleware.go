package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"mediarating/internal/delivery/http/response"
	domainerrors "mediarating/internal/domain/errors"
)

// ErrorMiddleware converts every error reaching echo into the wire format.
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{logger: logger}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler. Expected
// conditions carry their own status and message; anything else is logged
// in full and surfaced as a generic 500.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logError(err, c)
			_ = response.Error(c, appErr.HTTPCode(), domainerrors.ErrInternalError.Message())

			return
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch httpErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			// Unmatched (method, path) pairs share one answer.
			_ = response.Error(c, http.StatusNotFound, domainerrors.ErrInvalidPath.Message())
		case http.StatusInternalServerError:
			m.logError(err, c)
			_ = response.Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.Message())
		default:
			_ = response.Error(c, httpErr.Code, http.StatusText(httpErr.Code))
		}

		return
	}

	m.logError(err, c)
	_ = response.Error(c, http.StatusInternalServerError, domainerrors.ErrInternalError.Message())
}

func (m *ErrorMiddleware) logError(err error, c echo.Context) {
	m.logger.Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
