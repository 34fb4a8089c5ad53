package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorialhub/tutorial-platform/internal/api/middleware"
)

// currentUserID extracts the user id attached by the CurrentUser middleware.
// Routes behind RequireUser always have one; the check here is a fast-fail
// guard against misconfigured route groups.
func currentUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.KeyUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}
	return id, nil
}
