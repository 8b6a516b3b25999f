package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
	"github.com/enzocoder/portfolio-api/internal/infrastructure/metrics"
)

const (
	DefaultSessionTTL = 24 * time.Hour
	tokenBytes        = 32
)

// SessionManager owns the lifecycle of session tokens. Tokens are never
// stored; the backing store only sees their SHA-256.
type SessionManager struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

func NewSessionManager(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{store: store, ttl: ttl, now: time.Now, log: log}
}

// TTL is the lifetime of newly created sessions.
func (m *SessionManager) TTL() time.Duration { return m.ttl }

// Create starts a session for user and returns its token.
func (m *SessionManager) Create(ctx context.Context, user *domain.User) (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("session token: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	s := domain.Session{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		ExpiresAt: m.now().Add(m.ttl).UTC(),
	}
	if err := m.store.Save(ctx, storeKey(token), s, m.ttl); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return token, nil
}

// Resolve returns the live session behind token.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	key := storeKey(token)
	s, err := m.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, key); err != nil {
			m.log.Warn().Err(err).Msg("failed to delete expired session")
		}
		metrics.SessionsRevokedTotal.WithLabelValues("expired").Inc()
		return nil, domain.ErrUnauthenticated
	}
	return s, nil
}

// Destroy removes the session; unknown tokens are ignored.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := m.store.Delete(ctx, storeKey(token)); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}

func storeKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
