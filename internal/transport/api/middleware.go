package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// requestContext tags every request with an id, a child logger and a deadline.
func requestContext(logger *zerolog.Logger, timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			l := logger.With().Str("request_id", id).Logger()
			ctx := l.WithContext(req.Context())
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			c.SetRequest(req.WithContext(ctx))

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			l.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("elapsed", time.Since(start)).
				Msg("request")
			return nil
		}
	}
}
