package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

type ContactHandler struct {
	service ports.ContactService
}

func NewContactHandler(service ports.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit relays a contact-form message to the site owner by email.
//
// @Summary      Send a contact message
// @Description  Accepts {name, email, subject, message} or the legacy {visitorEmail, message}.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        body  body      contactRequest  true  "Contact form"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /contact [post]
func (h *ContactHandler) Submit(c echo.Context) error {
	var req contactRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.service.Submit(c.Request().Context(), ports.ContactInput{
		Name:         req.Name,
		Email:        req.Email,
		Subject:      req.Subject,
		Message:      req.Message,
		VisitorEmail: req.VisitorEmail,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Message sent successfully!"})
}
