package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorialhub/tutorial-platform/internal/api/middleware"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account and returns a bearer token.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toAuthResponse(result))
}

// Login authenticates a user and returns a fresh bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Logout revokes the presented token for the rest of its lifetime.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get(middleware.KeyToken).(string)
	if token == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "login required")
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out"})
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{
		Token: r.Token,
		User: userSummary{
			ID:       r.User.ID,
			Username: r.User.Username,
			Email:    r.User.Email,
		},
	}
}
