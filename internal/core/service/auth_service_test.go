package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	findErr error // if set, FindByID returns this error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) conflicts(u *domain.User) bool {
	for _, other := range r.users {
		if other.ID == u.ID {
			continue
		}
		if other.Username == u.Username || other.Email == u.Email {
			return true
		}
	}
	return false
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.conflicts(user) {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("u%d", r.nextID)
	r.users[copy.ID] = copy
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == identifier || u.Email == identifier {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindSummaries(_ context.Context, ids []string) (map[string]domain.UserSummary, error) {
	out := make(map[string]domain.UserSummary)
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u.Summary()
		}
	}
	return out, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Replace(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if r.conflicts(user) {
		return domain.ErrUserExists
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	saveErr  error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Save(_ context.Context, key string, sess domain.Session, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[key] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, key string) (*domain.Session, error) {
	sess, ok := s.sessions[key]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &sess, nil
}

func (s *stubSessionStore) Delete(_ context.Context, key string) error {
	delete(s.sessions, key)
	return nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

type authFixture struct {
	users    *stubUserRepo
	store    *stubSessionStore
	userSvc  *UserService
	sessions *SessionManager
	auth     *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	f := &authFixture{users: newStubUserRepo(), store: newStubSessionStore()}
	f.userSvc = NewUserService(f.users, zerolog.Nop())
	f.userSvc.cost = bcrypt.MinCost
	f.sessions = NewSessionManager(f.store, time.Hour, zerolog.Nop())
	f.auth = NewAuthService(f.userSvc, f.sessions, zerolog.Nop())
	return f
}

func (f *authFixture) createUser(t *testing.T, username, password string, role domain.Role) *domain.User {
	t.Helper()
	u, err := f.userSvc.Create(context.Background(), ports.CreateUserInput{
		FirstName: "Test",
		LastName:  "User",
		Username:  username,
		Email:     username + "@example.com",
		Password:  password,
		Role:      role,
	})
	if err != nil {
		t.Fatalf("create user %q: %v", username, err)
	}
	return u
}

// ---------------------------------------------------------------------------
// SessionManager
// ---------------------------------------------------------------------------

func TestSessionManager_CreateResolveDestroy(t *testing.T) {
	store := newStubSessionStore()
	m := NewSessionManager(store, time.Hour, zerolog.Nop())
	user := &domain.User{ID: "u1", Username: "admin", Role: domain.RoleAdmin}

	token, err := m.Create(context.Background(), user)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if len(token) < 43 {
		t.Fatalf("token too short: %q", token)
	}
	if _, ok := store.sessions[token]; ok {
		t.Fatalf("raw token must not be used as store key")
	}

	sess, err := m.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if sess.UserID != "u1" || sess.Username != "admin" || sess.Role != domain.RoleAdmin {
		t.Fatalf("unexpected session: %+v", sess)
	}

	if err := m.Destroy(context.Background(), token); err != nil {
		t.Fatalf("Destroy returned error: %v", err)
	}
	if _, err := m.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after destroy, got %v", err)
	}
	if err := m.Destroy(context.Background(), token); err != nil {
		t.Fatalf("second Destroy should be a no-op, got %v", err)
	}
}

func TestSessionManager_TokensAreUnique(t *testing.T) {
	m := NewSessionManager(newStubSessionStore(), time.Hour, zerolog.Nop())
	user := &domain.User{ID: "u1"}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		token, err := m.Create(context.Background(), user)
		if err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated")
		}
		seen[token] = true
	}
}

func TestSessionManager_ExpiredSessionIsRemoved(t *testing.T) {
	store := newStubSessionStore()
	m := NewSessionManager(store, time.Hour, zerolog.Nop())
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	token, err := m.Create(context.Background(), &domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	now = now.Add(time.Hour)
	if _, err := m.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired session, got %v", err)
	}
	if len(store.sessions) != 0 {
		t.Fatalf("expected expired session to be deleted, store has %d", len(store.sessions))
	}
}

func TestSessionManager_UnknownAndEmptyToken(t *testing.T) {
	m := NewSessionManager(newStubSessionStore(), 0, zerolog.Nop())
	if m.TTL() != DefaultSessionTTL {
		t.Fatalf("expected default TTL, got %v", m.TTL())
	}
	for _, token := range []string{"", "not-a-session"} {
		if _, err := m.Resolve(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("token %q: expected ErrUnauthenticated, got %v", token, err)
		}
	}
}

func TestSessionManager_StoreFailure(t *testing.T) {
	store := newStubSessionStore()
	store.saveErr = errors.New("connection refused")
	m := NewSessionManager(store, time.Hour, zerolog.Nop())

	if _, err := m.Create(context.Background(), &domain.User{ID: "u1"}); err == nil {
		t.Fatalf("expected error when the store fails")
	}
}

// ---------------------------------------------------------------------------
// AuthService
// ---------------------------------------------------------------------------

func TestAuthService_SignIn_Success(t *testing.T) {
	f := newAuthFixture(t)
	created := f.createUser(t, "admin", "admin123", domain.RoleAdmin)

	for _, identifier := range []string{"admin", "ADMIN", " admin@example.com ", "Admin@Example.com"} {
		token, user, err := f.auth.SignIn(context.Background(), identifier, "admin123")
		if err != nil {
			t.Fatalf("SignIn(%q) returned error: %v", identifier, err)
		}
		if token == "" {
			t.Fatalf("expected token for %q", identifier)
		}
		if user.ID != created.ID {
			t.Fatalf("unexpected user: %+v", user)
		}

		id, err := f.auth.Authenticate(context.Background(), token)
		if err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		if id.UserID != created.ID || id.Username != "admin" || id.Role != domain.RoleAdmin || id.User == nil {
			t.Fatalf("unexpected identity: %+v", id)
		}
	}
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.createUser(t, "admin", "admin123", domain.RoleAdmin)

	_, _, err := f.auth.SignIn(context.Background(), "admin", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if len(f.store.sessions) != 0 {
		t.Fatalf("no session should be created on failed sign-in")
	}
}

func TestAuthService_SignIn_UnknownUser(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.auth.SignIn(context.Background(), "ghost", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if cost, err := bcrypt.Cost(f.userSvc.dummyHash); err != nil || cost != bcrypt.MinCost {
		t.Fatalf("unknown identifiers must still run a bcrypt comparison at the store cost, got cost %d (%v)", cost, err)
	}
}

func TestAuthService_SignIn_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	u := f.createUser(t, "mod", "secret99", domain.RoleModerator)
	inactive := false
	if _, err := f.userSvc.Update(context.Background(), u.ID, ports.UserPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	_, _, err := f.auth.SignIn(context.Background(), "mod", "secret99")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_SignIn_MissingFields(t *testing.T) {
	f := newAuthFixture(t)

	cases := []struct{ identifier, password string }{
		{"", "pass"},
		{"admin", ""},
		{"   ", "pass"},
	}
	for _, tc := range cases {
		_, _, err := f.auth.SignIn(context.Background(), tc.identifier, tc.password)
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("SignIn(%q, %q): expected ErrValidation, got %v", tc.identifier, tc.password, err)
		}
	}
}

func TestAuthService_Authenticate_DeactivatedUserDestroysSession(t *testing.T) {
	f := newAuthFixture(t)
	u := f.createUser(t, "editor", "secret99", domain.RoleModerator)

	token, _, err := f.auth.SignIn(context.Background(), "editor", "secret99")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	inactive := false
	if _, err := f.userSvc.Update(context.Background(), u.ID, ports.UserPatch{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	if _, err := f.auth.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if len(f.store.sessions) != 0 {
		t.Fatalf("expected session of deactivated user to be destroyed")
	}
}

func TestAuthService_Authenticate_DeletedUser(t *testing.T) {
	f := newAuthFixture(t)
	u := f.createUser(t, "temp", "secret99", domain.RoleUser)

	token, _, err := f.auth.SignIn(context.Background(), "temp", "secret99")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if err := f.userSvc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}

	if _, err := f.auth.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestAuthService_Authenticate_StoreUnavailableUsesSnapshot(t *testing.T) {
	f := newAuthFixture(t)
	u := f.createUser(t, "admin", "admin123", domain.RoleAdmin)

	token, _, err := f.auth.SignIn(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	f.users.findErr = errors.New("server selection timeout")
	id, err := f.auth.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if id.UserID != u.ID || id.Role != domain.RoleAdmin || id.User != nil {
		t.Fatalf("expected snapshot identity, got %+v", id)
	}
}

func TestAuthService_SignOut(t *testing.T) {
	f := newAuthFixture(t)
	f.createUser(t, "admin", "admin123", domain.RoleAdmin)

	token, _, err := f.auth.SignIn(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}

	if err := f.auth.SignOut(context.Background(), token); err != nil {
		t.Fatalf("SignOut returned error: %v", err)
	}
	if _, err := f.auth.Authenticate(context.Background(), token); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated after sign-out, got %v", err)
	}

	// Idempotent: unknown and empty tokens are fine.
	if err := f.auth.SignOut(context.Background(), token); err != nil {
		t.Fatalf("repeated SignOut returned error: %v", err)
	}
	if err := f.auth.SignOut(context.Background(), ""); err != nil {
		t.Fatalf("SignOut with empty token returned error: %v", err)
	}
}
