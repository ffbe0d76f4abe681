package logger

import (
	"delservice/internal/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

var requestCount metrics.Counter

// RequestIDMiddleware tags every request with an ID so log lines can be
// correlated. An inbound X-Request-ID is honored if present.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		reqID := req.Header.Get("X-Request-ID")
		if reqID == "" {
			reqID = uuid.New().String()
		}

		ctx := WithRequestID(req.Context(), reqID)
		c.Response().Header().Set("X-Request-ID", reqID)
		c.SetRequest(req.WithContext(ctx))

		return next(c)
	}
}

// LoggingMiddleware logs every HTTP request in structured form.
func LoggingMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		timer := metrics.StartTimer()
		log := FromCtx(c.Request().Context())

		err := next(c)

		requestCount.Inc()
		log.Info("incoming request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.String("ip", c.RealIP()),
			zap.Duration("duration_ms", timer.Duration()),
			zap.Uint64("request_count", requestCount.Load()),
		)

		return err
	}
}
