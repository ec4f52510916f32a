package middleware

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/qcar/dispatch/internal/pkg/logger"
)

type contextKey string

// requestIDKey is the context key carrying the request id down into
// usecases and repositories
const requestIDKey contextKey = "request_id"

// RequestID assigns every request an id, propagates it through the
// request context and the X-Request-ID response header, and logs one
// line per completed request.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.New().String()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			ctx := context.WithValue(c.Request().Context(), requestIDKey, requestID)
			c.SetRequest(c.Request().WithContext(ctx))

			start := time.Now()
			err := next(c)

			logger.Info("request completed",
				logger.String("request_id", requestID),
				logger.String("method", c.Request().Method),
				logger.String("path", c.Path()),
				logger.Int("status", c.Response().Status),
				logger.Duration("duration", time.Since(start)))
			return err
		}
	}
}

// RequestIDFromContext returns the request id carried by the context,
// empty when the call did not originate from an HTTP request
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
