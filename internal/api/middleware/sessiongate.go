package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gestionusuarios/admin-console/internal/session"
)

// SessionState is what the gate consults on every protected request.
type SessionState interface {
	State() session.State
}

// SessionGate protects every non-login route:
//   - while the session is still loading, requests get a blocking "loading"
//     placeholder instead of content or a redirect, so a refresh never
//     flashes the login screen;
//   - unauthenticated navigation is redirected to /login; non-GET requests
//     get a plain 401.
func SessionGate(sess SessionState) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch sess.State() {
			case session.StateLoading:
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusServiceUnavailable, echo.Map{"status": "loading"})
			case session.StateAuthenticated:
				return next(c)
			default:
				if c.Request().Method == http.MethodGet {
					return c.Redirect(http.StatusFound, "/login")
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "no autenticado"})
			}
		}
	}
}
