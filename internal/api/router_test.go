package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enzocoder/portfolio-api/internal/api/cookie"
	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/core/service"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/db/memory"
)

const cookieName = "portfolio.sid"

type captureNotifier struct {
	mu   sync.Mutex
	sent []ports.ContactMessage
}

func (n *captureNotifier) Send(_ context.Context, msg ports.ContactMessage) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

type testServer struct {
	e        *echo.Echo
	notifier *captureNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()
	ctx := context.Background()

	userRepo := memory.NewUserRepository()
	stackRepo := memory.NewStackRepository()
	workRepo := memory.NewWorkRepository()

	users := service.NewUserService(userRepo, log)
	sessions := service.NewSessionManager(memory.NewSessionStore(), time.Hour, log)
	notifier := &captureNotifier{}

	for _, u := range []ports.CreateUserInput{
		{FirstName: "Ada", LastName: "Admin", Username: "admin", Email: "admin@example.com", Password: "admin-pass", Role: domain.RoleAdmin},
		{FirstName: "Mo", LastName: "Mod", Username: "mod", Email: "mod@example.com", Password: "mod-pass", Role: domain.RoleModerator},
		{FirstName: "Uma", LastName: "User", Username: "user", Email: "user@example.com", Password: "user-pass", Role: domain.RoleUser},
	} {
		_, err := users.Create(ctx, u)
		require.NoError(t, err)
	}

	e := NewRouter(Options{
		Logger:         log,
		AllowedOrigins: []string{"http://localhost:5173"},
		BodyLimit:      "1M",
		Auth:           service.NewAuthService(users, sessions, log),
		Users:          users,
		Stacks:         service.NewStackService(stackRepo, userRepo, log),
		Works:          service.NewWorkService(workRepo, stackRepo, userRepo, log),
		Contact:        service.NewContactService(notifier, nil, time.Second, log),
		Jar:            cookie.NewJar(cookieName, "router-test-secret-0123456789abcdef", time.Hour, false),
		Registry:       prometheus.NewRegistry(),
	})
	return &testServer{e: e, notifier: notifier}
}

func (s *testServer) do(method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) signIn(t *testing.T, username, password string) *http.Cookie {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/signin", `{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return sessionCookie(t, rec)
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", cookieName)
	return nil
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestRouter_SessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/api/check-auth", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"authenticated":false}`, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/signin", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	ck := s.signIn(t, "ADMIN@example.com", "admin-pass")
	assert.True(t, ck.HttpOnly)

	rec = s.do(http.MethodGet, "/api/check-auth", "", ck)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[map[string]any](t, rec)
	assert.Equal(t, true, body["authenticated"])
	assert.Equal(t, "admin", body["user"].(map[string]any)["username"])

	rec = s.do(http.MethodPost, "/api/signout", "", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -1, sessionCookie(t, rec).MaxAge)

	// The old cookie still verifies but its session is gone.
	rec = s.do(http.MethodGet, "/api/check-auth", "", ck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = s.do(http.MethodGet, "/api/dashboard/profile", "", ck)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_DashboardAccess(t *testing.T) {
	s := newTestServer(t)
	admin := s.signIn(t, "admin", "admin-pass")
	mod := s.signIn(t, "mod", "mod-pass")
	user := s.signIn(t, "user", "user-pass")

	cases := []struct {
		name   string
		target string
		ck     *http.Cookie
		want   int
	}{
		{"anonymous stacks", "/api/dashboard/stacks", nil, http.StatusUnauthorized},
		{"user stacks", "/api/dashboard/stacks", user, http.StatusForbidden},
		{"moderator stacks", "/api/dashboard/stacks", mod, http.StatusOK},
		{"moderator works", "/api/dashboard/works", mod, http.StatusOK},
		{"moderator users", "/api/dashboard/users", mod, http.StatusForbidden},
		{"admin users", "/api/dashboard/users", admin, http.StatusOK},
		{"user profile", "/api/dashboard/profile", user, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var cookies []*http.Cookie
			if tc.ck != nil {
				cookies = append(cookies, tc.ck)
			}
			rec := s.do(http.MethodGet, tc.target, "", cookies...)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_ContentFlow(t *testing.T) {
	s := newTestServer(t)
	ck := s.signIn(t, "mod", "mod-pass")

	rec := s.do(http.MethodPost, "/api/dashboard/stacks", `{"name":"Go","category":"Backend","featured":true}`, ck)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	stack := decodeBody[map[string]any](t, rec)
	stackID := stack["_id"].(string)
	assert.Equal(t, "Mo", stack["createdBy"].(map[string]any)["firstName"])

	rec = s.do(http.MethodPost, "/api/dashboard/stacks", `{"name":"Hidden","isActive":false}`, ck)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/dashboard/works", `{
		"title":"Portfolio API",
		"description":"Backend for the site",
		"category":"API",
		"technologies":["`+stackID+`"],
		"images":[{"url":"https://img.example.com/a.png","isMain":true}],
		"duration":{"startDate":"2024-01-01"}
	}`, ck)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	workID := decodeBody[map[string]any](t, rec)["_id"].(string)

	rec = s.do(http.MethodGet, "/api/stacks", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stacks := decodeBody[[]map[string]any](t, rec)
	require.Len(t, stacks, 1, "inactive stacks are not public")
	assert.Equal(t, "Go", stacks[0]["name"])

	rec = s.do(http.MethodGet, "/api/works?featured=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeBody[[]map[string]any](t, rec))

	rec = s.do(http.MethodGet, "/api/works/"+workID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	work := decodeBody[map[string]any](t, rec)
	assert.Equal(t, "https://img.example.com/a.png", work["mainImage"].(map[string]any)["url"])
	techs := work["technologies"].([]any)
	require.Len(t, techs, 1)
	assert.Equal(t, "Go", techs[0].(map[string]any)["name"])

	rec = s.do(http.MethodGet, "/api/works?limit=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/dashboard/works/"+workID, "", ck)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodGet, "/api/works/"+workID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Contact(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/contact", `{"name":"Grace","email":"grace@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"message":"Message sent successfully!"}`, rec.Body.String())
	require.Len(t, s.notifier.sent, 1)
	assert.Equal(t, "grace@example.com", s.notifier.sent[0].Email)

	rec = s.do(http.MethodPost, "/api/contact", `{"name":"Grace"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	s.do(http.MethodGet, "/api/stacks", "")
	rec = s.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "requests_total")
}

func TestRouter_CORSPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/signin", nil)
	req.Header.Set(echo.HeaderOrigin, "http://localhost:5173")
	req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodPost)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	assert.Equal(t, "true", rec.Header().Get(echo.HeaderAccessControlAllowCredentials))
}
