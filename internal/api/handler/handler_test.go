package handler

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/api/httperr"
	"github.com/enzocoder/portfolio-api/internal/api/middleware"
	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = httperr.NewHandler(zerolog.Nop(), false)
	return e
}

// call runs h against a recorded request and renders any returned error the
// way the router would.
func call(e *echo.Echo, h echo.HandlerFunc, method, target, body string, setup ...func(echo.Context)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	for _, fn := range setup {
		fn(c)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func withID(id string) func(echo.Context) {
	return func(c echo.Context) {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
}

func asUser(userID string, role domain.Role) func(echo.Context) {
	return func(c echo.Context) {
		c.Set(middleware.KeyIdentity, &domain.Identity{UserID: userID, Username: "alice", Role: role})
		c.Set(middleware.KeyRole, string(role))
	}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return v
}
