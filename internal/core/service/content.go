package service

import (
	"context"
	"fmt"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// MaxListLimit caps the limit query parameter of public listings.
const MaxListLimit = 100

func publicFilter(in ports.ListInput) (ports.ContentFilter, error) {
	if in.Limit < 0 {
		return ports.ContentFilter{}, domain.Invalid("limit", "must be a positive integer")
	}
	limit := in.Limit
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return ports.ContentFilter{
		ActiveOnly:   true,
		Category:     in.Category,
		FeaturedOnly: in.Featured,
		Limit:        limit,
		Sort:         ports.SortPublic,
	}, nil
}

// creatorResolver fills the createdBy projection of dashboard responses.
type creatorResolver struct {
	users ports.UserRepository
}

// resolve looks up the creators of all docs in one round trip. Creators that no
// longer exist are left nil.
func (r creatorResolver) resolve(ctx context.Context, ids []string, assign func(i int, u *domain.UserSummary)) error {
	wanted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			wanted = append(wanted, id)
		}
	}
	if len(wanted) == 0 {
		return nil
	}

	summaries, err := r.users.FindSummaries(ctx, uniqueIDs(wanted))
	if err != nil {
		return fmt.Errorf("resolve createdBy: %w", err)
	}
	for i, id := range ids {
		if u, ok := summaries[id]; ok {
			assign(i, &u)
		}
	}
	return nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
