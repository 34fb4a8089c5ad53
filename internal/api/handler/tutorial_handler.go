package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

// TutorialHandler handles HTTP requests for authoring and browsing tutorials.
type TutorialHandler struct {
	service ports.TutorialService
}

func NewTutorialHandler(service ports.TutorialService) *TutorialHandler {
	return &TutorialHandler{service: service}
}

// Create handles POST /api/tutorials.
//
// @Summary      Create a tutorial
// @Tags         tutorials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTutorialRequest  true  "Tutorial details"
// @Success      201   {object}  tutorialResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /api/tutorials [post]
func (h *TutorialHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req createTutorialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tutorial, err := h.service.Create(c.Request().Context(), userID, toCreateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toTutorialResponse(tutorial))
}

// ListOwned handles GET /api/tutorials. The optional published query
// parameter narrows the list to published ("true") or drafts ("false").
//
// @Summary      List own tutorials
// @Tags         tutorials
// @Produce      json
// @Security     BearerAuth
// @Param        published  query     string  false  "Filter by published state (true/false)"
// @Success      200        {array}   tutorialResponse
// @Failure      401        {object}  messageResponse
// @Router       /api/tutorials [get]
func (h *TutorialHandler) ListOwned(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var published *bool
	switch c.QueryParam("published") {
	case "true":
		v := true
		published = &v
	case "false":
		v := false
		published = &v
	}

	list, err := h.service.ListOwned(c.Request().Context(), userID, published)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTutorialListResponse(list))
}

// GetOwned handles GET /api/tutorials/:id, owner-scoped.
//
// @Summary      Get one of your tutorials
// @Tags         tutorials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tutorial id"
// @Success      200  {object}  tutorialResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/tutorials/{id} [get]
func (h *TutorialHandler) GetOwned(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tutorial, err := h.service.GetOwned(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTutorialResponse(tutorial))
}

// Update handles PUT /api/tutorials/:id, owner-scoped. Provided fields
// replace the stored values; absent fields are untouched.
//
// @Summary      Update one of your tutorials
// @Tags         tutorials
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Tutorial id"
// @Param        body  body      updateTutorialRequest  true  "Fields to replace"
// @Success      200   {object}  tutorialResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /api/tutorials/{id} [put]
func (h *TutorialHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req updateTutorialRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	tutorial, err := h.service.Update(c.Request().Context(), userID, c.Param("id"), toUpdateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTutorialResponse(tutorial))
}

// Delete handles DELETE /api/tutorials/:id, owner-scoped.
//
// @Summary      Delete one of your tutorials
// @Tags         tutorials
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Tutorial id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/tutorials/{id} [delete]
func (h *TutorialHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Tutorial deleted successfully"})
}

// ListPublic handles GET /api/tutorials/public: the 10 newest published
// tutorials across all authors, no auth required.
//
// @Summary      List newest published tutorials
// @Tags         public
// @Produce      json
// @Success      200  {array}  tutorialResponse
// @Router       /api/tutorials/public [get]
func (h *TutorialHandler) ListPublic(c echo.Context) error {
	list, err := h.service.ListPublic(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTutorialListResponse(list))
}

// GetPublic handles GET /api/tutorials/public/:id. Every successful fetch
// counts a view.
//
// @Summary      Read a published tutorial
// @Tags         public
// @Produce      json
// @Param        id   path      string  true  "Tutorial id"
// @Success      200  {object}  tutorialResponse
// @Failure      400  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /api/tutorials/public/{id} [get]
func (h *TutorialHandler) GetPublic(c echo.Context) error {
	tutorial, err := h.service.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toTutorialResponse(tutorial))
}

// Stats handles GET /api/stats: platform-wide aggregate counters.
//
// @Summary      Platform statistics
// @Tags         public
// @Produce      json
// @Success      200  {object}  statsResponse
// @Router       /api/stats [get]
func (h *TutorialHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, statsResponse{
		Tutorials: stats.Tutorials,
		Authors:   stats.Authors,
		Views:     stats.Views,
	})
}
