package handler

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

type stubUserService struct {
	created      *ports.CreateUserInput
	profileID    string
	profilePatch *ports.UserPatch
	createErr    error
	deleteErr    error
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	return []*domain.User{{ID: "u1", Username: "alice", PasswordHash: "$2a$hash"}}, nil
}

func (s *stubUserService) Get(_ context.Context, id string) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (s *stubUserService) Create(_ context.Context, in ports.CreateUserInput) (*domain.User, error) {
	s.created = &in
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.User{ID: "u2", Username: in.Username, Role: in.Role}, nil
}

func (s *stubUserService) Update(_ context.Context, id string, _ ports.UserPatch) (*domain.User, error) {
	return &domain.User{ID: id}, nil
}

func (s *stubUserService) Delete(context.Context, string) error {
	return s.deleteErr
}

func (s *stubUserService) Profile(_ context.Context, userID string) (*domain.User, error) {
	s.profileID = userID
	return &domain.User{ID: userID, Username: "alice"}, nil
}

func (s *stubUserService) UpdateProfile(_ context.Context, userID string, p ports.UserPatch) (*domain.User, error) {
	s.profileID, s.profilePatch = userID, &p
	return &domain.User{ID: userID}, nil
}

func TestUserHandler_List_HidesPasswordHash(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	rec := call(newTestEcho(), h.List, http.MethodGet, "/api/dashboard/users", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	users := decode[[]map[string]any](t, rec)
	if len(users) != 1 || users[0]["_id"] != "u1" {
		t.Fatalf("unexpected users: %v", users)
	}
	for _, key := range []string{"password", "passwordHash", "PasswordHash"} {
		if _, ok := users[0][key]; ok {
			t.Fatalf("password hash leaked under %q", key)
		}
	}
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{}
	h := NewUserHandler(stub)

	rec := call(newTestEcho(), h.Create, http.MethodPost, "/api/dashboard/users",
		`{"firstName":"Bob","lastName":"B","username":"bob","email":"bob@example.com","password":"secret1","role":"moderator"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.created.Role != domain.RoleModerator || stub.created.Password != "secret1" {
		t.Fatalf("unexpected input: %+v", stub.created)
	}
}

func TestUserHandler_Create_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing email":  `{"firstName":"B","lastName":"B","username":"bob","password":"secret1"}`,
		"bad email":      `{"firstName":"B","lastName":"B","username":"bob","email":"bob","password":"secret1"}`,
		"short password": `{"firstName":"B","lastName":"B","username":"bob","email":"b@example.com","password":"123"}`,
		"unknown role":   `{"firstName":"B","lastName":"B","username":"bob","email":"b@example.com","password":"secret1","role":"root"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			stub := &stubUserService{}
			h := NewUserHandler(stub)

			rec := call(newTestEcho(), h.Create, http.MethodPost, "/api/dashboard/users", body)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if stub.created != nil {
				t.Fatalf("service must not be called")
			}
		})
	}
}

func TestUserHandler_Create_Duplicate(t *testing.T) {
	h := NewUserHandler(&stubUserService{createErr: domain.ErrUserExists})

	rec := call(newTestEcho(), h.Create, http.MethodPost, "/api/dashboard/users",
		`{"firstName":"B","lastName":"B","username":"bob","email":"b@example.com","password":"secret1"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if msg := decode[messageResponse](t, rec).Message; msg != "Username or email already exists" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	h := NewUserHandler(&stubUserService{deleteErr: domain.ErrUserNotFound})
	rec := call(newTestEcho(), h.Delete, http.MethodDelete, "/api/dashboard/users/x", "", withID("x"))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	h = NewUserHandler(&stubUserService{})
	rec = call(newTestEcho(), h.Delete, http.MethodDelete, "/api/dashboard/users/u1", "", withID("u1"))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Profile_UsesSessionUser(t *testing.T) {
	stub := &stubUserService{}
	h := NewUserHandler(stub)

	rec := call(newTestEcho(), h.Profile, http.MethodGet, "/api/dashboard/profile", "", asUser("u1", domain.RoleUser))

	if rec.Code != http.StatusOK || stub.profileID != "u1" {
		t.Fatalf("expected own profile, got %d for %q", rec.Code, stub.profileID)
	}
}

func TestUserHandler_Profile_WithoutSession(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	rec := call(newTestEcho(), h.Profile, http.MethodGet, "/api/dashboard/profile", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	stub := &stubUserService{}
	h := NewUserHandler(stub)

	rec := call(newTestEcho(), h.UpdateProfile, http.MethodPut, "/api/dashboard/profile",
		`{"bio":"Gopher","socialLinks":{"github":"https://github.com/alice"}}`, asUser("u1", domain.RoleUser))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := stub.profilePatch
	if stub.profileID != "u1" || p.Bio == nil || *p.Bio != "Gopher" || p.SocialLinks == nil || p.SocialLinks.Github == "" {
		t.Fatalf("unexpected patch for %q: %+v", stub.profileID, p)
	}
}

type stubContactService struct {
	got ports.ContactInput
	err error
}

func (s *stubContactService) Submit(_ context.Context, in ports.ContactInput) error {
	s.got = in
	return s.err
}

func TestContactHandler_Submit(t *testing.T) {
	stub := &stubContactService{}
	h := NewContactHandler(stub)

	rec := call(newTestEcho(), h.Submit, http.MethodPost, "/api/contact",
		`{"name":"Grace","email":"grace@example.com","subject":"Hi","message":"Hello"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decode[messageResponse](t, rec).Message; msg != "Message sent successfully!" {
		t.Fatalf("unexpected message %q", msg)
	}
	if stub.got.Name != "Grace" || stub.got.Subject != "Hi" {
		t.Fatalf("unexpected input: %+v", stub.got)
	}
}

func TestContactHandler_Submit_Legacy(t *testing.T) {
	stub := &stubContactService{}
	h := NewContactHandler(stub)

	rec := call(newTestEcho(), h.Submit, http.MethodPost, "/api/contact", `{"visitorEmail":"v@example.com","message":"Hi"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.got.VisitorEmail != "v@example.com" {
		t.Fatalf("legacy field not forwarded: %+v", stub.got)
	}
}

func TestContactHandler_Submit_InvalidEmail(t *testing.T) {
	for _, body := range []string{
		`{"name":"Grace","email":"not-an-email","subject":"Hi","message":"Hello"}`,
		`{"visitorEmail":"nope","message":"Hi"}`,
	} {
		stub := &stubContactService{err: errors.New("should not be called")}
		h := NewContactHandler(stub)

		rec := call(newTestEcho(), h.Submit, http.MethodPost, "/api/contact", body)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
		if stub.got != (ports.ContactInput{}) {
			t.Fatalf("%s: service must not be called, got %+v", body, stub.got)
		}
	}
}

func TestContactHandler_Submit_Errors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.Invalid("email", "is required"), http.StatusBadRequest},
		{domain.ErrNotifierTimeout, http.StatusInternalServerError},
		{errors.Join(domain.ErrNotifier, errors.New("535")), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		h := NewContactHandler(&stubContactService{err: tc.err})

		rec := call(newTestEcho(), h.Submit, http.MethodPost, "/api/contact", `{"message":"x"}`)

		if rec.Code != tc.code {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.code, rec.Code)
		}
	}
}
