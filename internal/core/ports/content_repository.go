package ports

import (
	"context"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
)

// SortOrder selects how a content listing is ordered.
type SortOrder int

const (
	// SortPublic orders by featured desc, order asc, createdAt desc.
	SortPublic SortOrder = iota
	// SortRecent orders by createdAt desc.
	SortRecent
)

// ContentFilter carries the query parameters shared by Stack and Work listings.
type ContentFilter struct {
	ActiveOnly   bool
	Category     string // empty = any
	FeaturedOnly bool
	Limit        int // 0 = unlimited
	Sort         SortOrder
}

// StackRepository defines persistence operations for stacks.
type StackRepository interface {
	Create(ctx context.Context, s *domain.Stack) error
	// FindByID returns domain.ErrStackNotFound for unknown or malformed ids and,
	// when activeOnly is set, for inactive documents.
	FindByID(ctx context.Context, id string, activeOnly bool) (*domain.Stack, error)
	// FindByIDs returns the stacks that exist among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.Stack, error)
	List(ctx context.Context, filter ContentFilter) ([]*domain.Stack, error)
	Replace(ctx context.Context, s *domain.Stack) error
	Delete(ctx context.Context, id string) error
}

// WorkRepository defines persistence operations for works.
type WorkRepository interface {
	Create(ctx context.Context, w *domain.Work) error
	FindByID(ctx context.Context, id string, activeOnly bool) (*domain.Work, error)
	List(ctx context.Context, filter ContentFilter) ([]*domain.Work, error)
	Replace(ctx context.Context, w *domain.Work) error
	Delete(ctx context.Context, id string) error
}
