package ports

import (
	"context"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Create and Replace return domain.ErrUserExists on a unique violation.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIdentifier matches a normalized identifier against username or email.
	FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error)
	// FindSummaries resolves createdBy references; unknown ids are left out of the map.
	FindSummaries(ctx context.Context, ids []string) (map[string]domain.UserSummary, error)
	List(ctx context.Context) ([]*domain.User, error)
	Replace(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
}
