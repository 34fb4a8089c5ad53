package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

// Context keys set by CurrentUser for downstream handlers.
const (
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyToken    = "token"
)

// CurrentUser resolves the bearer token on every inbound request and attaches
// the authenticated user to the context. A missing, expired, revoked or
// otherwise invalid token leaves the request anonymous; rejecting is the job
// of RequireUser on the routes that need it.
func CurrentUser(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			user, err := auth.VerifyToken(c.Request().Context(), token)
			if err != nil {
				return next(c)
			}

			c.Set(KeyUserID, user.ID)
			c.Set(KeyUsername, user.Username)
			c.Set(KeyToken, token)
			return next(c)
		}
	}
}

// RequireUser rejects requests that CurrentUser left anonymous.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if id, _ := c.Get(KeyUserID).(string); id == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "login required")
			}
			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header, or "" when
// the header is absent or not a bearer scheme.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
