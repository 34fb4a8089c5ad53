package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    string `json:"email"    validate:"omitempty,email"`
	// Password is bound but deliberately never forwarded: credentials are
	// not editable through the profile route.
	Password string `json:"password"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Profile returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  messageResponse
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.Profile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(user))
}

// UpdateProfile edits username and/or email. A password field in the payload
// is silently ignored.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), userID, ports.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(user))
}

func toProfileResponse(u *domain.User) profileResponse {
	return profileResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
