package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/enzocoder/portfolio-api/internal/api/middleware"
	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Session middleware. A
// missing identity means the route was mounted without the middleware; it is
// reported as unauthenticated rather than trusted.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := c.Get(middleware.KeyIdentity).(*domain.Identity)
	if !ok || id == nil || id.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return id, nil
}

// profileOf prefers the freshly loaded user and falls back to the session
// snapshot when the credential store was unreachable.
func profileOf(id *domain.Identity) domain.UserProfile {
	if id.User != nil {
		return id.User.Profile()
	}
	return domain.UserProfile{ID: id.UserID, Username: id.Username, Role: id.Role}
}
