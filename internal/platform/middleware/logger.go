package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bhwcare/ncdtrack/internal/platform/session"
)

// Logger returns middleware that writes one structured line per request.
// It inspects the request after the handler ran, so it sees the identity the
// session middleware attached and can attribute the call to a health worker.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}

			rid, _ := c.Get("request_id").(string)
			evt = evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP())

			if id := session.FromContext(req.Context()); id.Username != "" {
				evt = evt.Str("username", id.Username).Str("role", id.Role)
			}

			evt.Msg("request")
			return err
		}
	}
}
