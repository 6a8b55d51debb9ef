package session

import (
	"context"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
)

type contextKey string

const identityKey contextKey = "session_identity"

// Middleware validates the session cookie and puts the Identity on the
// request context. Unauthenticated requests are redirected to the login page
// with the originally requested URL preserved in the next parameter.
func (m *Manager) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(CookieName)
			if err != nil {
				return redirectToLogin(c)
			}
			id, err := m.Parse(cookie.Value)
			if err != nil {
				return redirectToLogin(c)
			}

			ctx := context.WithValue(c.Request().Context(), identityKey, id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func redirectToLogin(c echo.Context) error {
	next := c.Request().URL.RequestURI()
	return c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(next))
}

// RequireRole returns middleware that rejects identities lacking all of the
// given roles. Unlike the unauthenticated case this is not a redirect: the
// caller is logged in but not allowed, and gets a 403 body the front end can
// surface.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := FromContext(c.Request().Context())
			for _, role := range roles {
				if id.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "Unauthorized"})
		}
	}
}

// FromContext returns the Identity stored by Middleware, or the zero Identity
// when the request is unauthenticated.
func FromContext(ctx context.Context) Identity {
	id, _ := ctx.Value(identityKey).(Identity)
	return id
}

// NewContext returns a context carrying the given identity. Used by tests to
// exercise handlers without the full middleware chain.
func NewContext(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}
