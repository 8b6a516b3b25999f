package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", domain.Invalid("name", "is required"), http.StatusBadRequest},
		{"wrapped validation", fmt.Errorf("create: %w", domain.Invalid("color", "bad")), http.StatusBadRequest},
		{"duplicate", domain.ErrUserExists, http.StatusBadRequest},
		{"credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"stack not found", fmt.Errorf("get: %w", domain.ErrStackNotFound), http.StatusNotFound},
		{"work not found", domain.ErrWorkNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"notifier", domain.ErrNotifier, http.StatusInternalServerError},
		{"notifier timeout", domain.ErrNotifierTimeout, http.StatusInternalServerError},
		{"echo bind", echo.NewHTTPError(http.StatusBadRequest, "bad json"), http.StatusBadRequest},
		{"unknown", errors.New("mongo: connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if code, _ := Resolve(tc.err); code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestResolve_Messages(t *testing.T) {
	if _, msg := Resolve(domain.ErrWorkNotFound); msg != "Work not found" {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, msg := Resolve(domain.ErrNotifierTimeout); msg != "Failed to send message. Please try again." {
		t.Fatalf("unexpected message %q", msg)
	}
	if _, msg := Resolve(domain.Invalid("limit", "must be a positive integer")); msg != "limit: must be a positive integer" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func render(t *testing.T, debug bool, err error) (int, Response) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHandler(zerolog.Nop(), debug)(err, c)

	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, resp
}

func TestNewHandler_HidesCauseOutsideDebug(t *testing.T) {
	code, resp := render(t, false, errors.New("dial tcp: refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if resp.Message != "Internal server error" || resp.Error != "" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestNewHandler_DebugAddsCause(t *testing.T) {
	_, resp := render(t, true, errors.New("dial tcp: refused"))
	if resp.Error != "dial tcp: refused" {
		t.Fatalf("expected cause in debug mode, got %+v", resp)
	}
}

func TestNewHandler_ClientErrorsCarryNoCause(t *testing.T) {
	code, resp := render(t, true, domain.ErrStackNotFound)
	if code != http.StatusNotFound || resp.Message != "Stack not found" || resp.Error != "" {
		t.Fatalf("unexpected response %d %+v", code, resp)
	}
}
