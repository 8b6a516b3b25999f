package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/api/cookie"
	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// Context keys set by Session.
const (
	KeyIdentity = "identity"
	KeyUserID   = "user_id"
	KeyUsername = "username"
	KeyRole     = "role"
)

// Authenticator resolves a session token to the caller's identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.Identity, error)
}

// Session rejects requests without a valid session with 401 and injects the
// caller's identity into the context otherwise.
func Session(auth Authenticator, jar *cookie.Jar) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := jar.Token(c)
			if err != nil {
				return err
			}

			id, err := auth.Authenticate(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					jar.Clear(c)
				}
				return err
			}

			c.Set(KeyIdentity, id)
			c.Set(KeyUserID, id.UserID)
			c.Set(KeyUsername, id.Username)
			c.Set(KeyRole, string(id.Role))

			return next(c)
		}
	}
}
