package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// WorkHandler serves the public project pages and the dashboard CRUD.
type WorkHandler struct {
	service ports.WorkService
}

func NewWorkHandler(service ports.WorkService) *WorkHandler {
	return &WorkHandler{service: service}
}

// ListPublic handles GET /api/works.
//
// @Summary      List active works
// @Tags         works
// @Produce      json
// @Param        category  query     string  false  "Work category"
// @Param        featured  query     string  false  "Only featured works when true"
// @Param        limit     query     int     false  "Maximum number of works (1-100)"
// @Success      200       {array}   domain.Work
// @Failure      400       {object}  messageResponse
// @Failure      500       {object}  messageResponse
// @Router       /works [get]
func (h *WorkHandler) ListPublic(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	works, err := h.service.ListPublic(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(works))
}

// GetPublic handles GET /api/works/:id.
//
// @Summary      Get an active work
// @Tags         works
// @Produce      json
// @Param        id   path      string  true  "Work id"
// @Success      200  {object}  domain.Work
// @Failure      404  {object}  messageResponse
// @Router       /works/{id} [get]
func (h *WorkHandler) GetPublic(c echo.Context) error {
	work, err := h.service.GetPublic(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, work)
}

// ListAll handles GET /api/dashboard/works.
//
// @Summary      List all works
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.Work
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /dashboard/works [get]
func (h *WorkHandler) ListAll(c echo.Context) error {
	works, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(works))
}

// Get handles GET /api/dashboard/works/:id.
//
// @Summary      Get a work
// @Tags         dashboard
// @Produce      json
// @Param        id   path      string  true  "Work id"
// @Success      200  {object}  domain.Work
// @Failure      404  {object}  messageResponse
// @Router       /dashboard/works/{id} [get]
func (h *WorkHandler) Get(c echo.Context) error {
	work, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, work)
}

// Create handles POST /api/dashboard/works.
//
// @Summary      Create a work
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      createWorkRequest  true  "Work"
// @Success      201   {object}  domain.Work
// @Failure      400   {object}  messageResponse
// @Router       /dashboard/works [post]
func (h *WorkHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createWorkRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	work, err := h.service.Create(c.Request().Context(), toWorkInput(req), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, work)
}

// Update handles PUT /api/dashboard/works/:id.
//
// @Summary      Update a work
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Work id"
// @Param        body  body      updateWorkRequest  true  "Fields to change"
// @Success      200   {object}  domain.Work
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /dashboard/works/{id} [put]
func (h *WorkHandler) Update(c echo.Context) error {
	var req updateWorkRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	work, err := h.service.Update(c.Request().Context(), c.Param("id"), toWorkPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, work)
}

// Delete handles DELETE /api/dashboard/works/:id.
//
// @Summary      Delete a work
// @Tags         dashboard
// @Produce      json
// @Param        id   path      string  true  "Work id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /dashboard/works/{id} [delete]
func (h *WorkHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Work deleted successfully"})
}
