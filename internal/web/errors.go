package web

import (
	"errors"
	"net/http"

	"delservice/internal/apperr"
	"delservice/internal/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// errorHandler turns application errors that escape the handlers into
// plain error pages. Validation errors never get here: handlers re-render
// their forms instead.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Something went wrong"

	var httpErr *echo.HTTPError
	var notFound *apperr.NotFoundError
	var conflict *apperr.ConflictError

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		}
	case errors.As(err, &notFound):
		code = http.StatusNotFound
		message = notFound.Error()
	case errors.As(err, &conflict):
		code = http.StatusConflict
		message = conflict.Reason
	case apperr.IsDependencyUnavailable(err):
		code = http.StatusServiceUnavailable
		message = "A required service is unavailable, try again later"
	}

	if code >= http.StatusInternalServerError {
		logger.FromCtx(c.Request().Context()).Error("request failed", zap.Error(err))
	}

	renderErr := c.Render(code, "error", echo.Map{
		"Title":   http.StatusText(code),
		"Code":    code,
		"Message": message,
	})
	if renderErr != nil {
		_ = c.String(code, message)
	}
}
