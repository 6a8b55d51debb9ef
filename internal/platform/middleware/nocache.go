package middleware

import (
	"github.com/labstack/echo/v4"
)

// NoCache returns middleware that forbids caching on every response. The
// front end is an installable mobile shell that aggressively caches; stale
// patient lists on a health worker's phone are worse than the extra requests.
func NoCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-cache, no-store, must-revalidate")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
			return next(c)
		}
	}
}
