package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// StackHandler serves the public skills listing and the dashboard CRUD.
type StackHandler struct {
	service ports.StackService
}

func NewStackHandler(service ports.StackService) *StackHandler {
	return &StackHandler{service: service}
}

// ListPublic handles GET /api/stacks.
//
// @Summary      List active stacks
// @Tags         stacks
// @Produce      json
// @Param        category  query     string  false  "Stack category"
// @Param        featured  query     string  false  "Only featured stacks when true"
// @Success      200       {array}   domain.Stack
// @Failure      400       {object}  messageResponse
// @Failure      500       {object}  messageResponse
// @Router       /stacks [get]
func (h *StackHandler) ListPublic(c echo.Context) error {
	in, err := listInput(c)
	if err != nil {
		return err
	}
	stacks, err := h.service.ListPublic(c.Request().Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(stacks))
}

// ListAll handles GET /api/dashboard/stacks.
//
// @Summary      List all stacks
// @Tags         dashboard
// @Produce      json
// @Success      200  {array}   domain.Stack
// @Failure      401  {object}  messageResponse
// @Failure      403  {object}  messageResponse
// @Router       /dashboard/stacks [get]
func (h *StackHandler) ListAll(c echo.Context) error {
	stacks, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, nonNil(stacks))
}

// Get handles GET /api/dashboard/stacks/:id.
//
// @Summary      Get a stack
// @Tags         dashboard
// @Produce      json
// @Param        id   path      string  true  "Stack id"
// @Success      200  {object}  domain.Stack
// @Failure      404  {object}  messageResponse
// @Router       /dashboard/stacks/{id} [get]
func (h *StackHandler) Get(c echo.Context) error {
	stack, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stack)
}

// Create handles POST /api/dashboard/stacks.
//
// @Summary      Create a stack
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        body  body      createStackRequest  true  "Stack"
// @Success      201   {object}  domain.Stack
// @Failure      400   {object}  messageResponse
// @Router       /dashboard/stacks [post]
func (h *StackHandler) Create(c echo.Context) error {
	id, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req createStackRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stack, err := h.service.Create(c.Request().Context(), toStackInput(req), id.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, stack)
}

// Update handles PUT /api/dashboard/stacks/:id.
//
// @Summary      Update a stack
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Stack id"
// @Param        body  body      updateStackRequest  true  "Fields to change"
// @Success      200   {object}  domain.Stack
// @Failure      400   {object}  messageResponse
// @Failure      404   {object}  messageResponse
// @Router       /dashboard/stacks/{id} [put]
func (h *StackHandler) Update(c echo.Context) error {
	var req updateStackRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	stack, err := h.service.Update(c.Request().Context(), c.Param("id"), toStackPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stack)
}

// Delete handles DELETE /api/dashboard/stacks/:id.
//
// @Summary      Delete a stack
// @Tags         dashboard
// @Produce      json
// @Param        id   path      string  true  "Stack id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /dashboard/stacks/{id} [delete]
func (h *StackHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Stack deleted successfully"})
}
