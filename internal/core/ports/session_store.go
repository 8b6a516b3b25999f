package ports

import (
	"context"
	"time"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// SessionStore persists session records keyed by an opaque key (the hashed token).
type SessionStore interface {
	Save(ctx context.Context, key string, s domain.Session, ttl time.Duration) error
	// Get returns domain.ErrSessionNotFound when the key is absent.
	Get(ctx context.Context, key string) (*domain.Session, error)
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
}
