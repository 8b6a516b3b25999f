package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/api/cookie"
	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	jar         *cookie.Jar
	log         zerolog.Logger
}

func NewAuthHandler(authService ports.AuthService, jar *cookie.Jar, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, jar: jar, log: log}
}

// SignIn authenticates a user and starts a cookie session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signInRequest  true  "Username or email, and password"
// @Success      200   {object}  signInResponse
// @Failure      400   {object}  messageResponse
// @Failure      401   {object}  messageResponse
// @Router       /signin [post]
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req signInRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	token, user, err := h.authService.SignIn(ctx, req.Username, req.Password)
	if err != nil {
		return err
	}

	if err := h.jar.Issue(c, token); err != nil {
		_ = h.authService.SignOut(ctx, token)
		return err
	}

	return c.JSON(http.StatusOK, signInResponse{
		Message: "Logged in successfully",
		User:    user.Profile(),
	})
}

// SignOut destroys the current session, if any, and clears the cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /signout [post]
func (h *AuthHandler) SignOut(c echo.Context) error {
	if token, err := h.jar.Token(c); err == nil {
		if err := h.authService.SignOut(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("failed to destroy session on sign-out")
		}
	}
	h.jar.Clear(c)

	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// CheckAuth reports whether the request carries a live session.
//
// @Summary      Check authentication
// @Tags         auth
// @Produce      json
// @Success      200  {object}  checkAuthResponse
// @Failure      401  {object}  checkAuthResponse
// @Router       /check-auth [get]
func (h *AuthHandler) CheckAuth(c echo.Context) error {
	token, err := h.jar.Token(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, checkAuthResponse{Authenticated: false})
	}

	id, err := h.authService.Authenticate(c.Request().Context(), token)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			h.jar.Clear(c)
			return c.JSON(http.StatusUnauthorized, checkAuthResponse{Authenticated: false})
		}
		return err
	}

	profile := profileOf(id)
	return c.JSON(http.StatusOK, checkAuthResponse{Authenticated: true, User: &profile})
}
