// Package memory provides process-local implementations of the repository and
// session store ports. They back DATA_STORE=memory and the end-to-end tests;
// nothing survives a restart.
package memory

import (
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// newID returns an ObjectID hex string so ids look the same in both data modes.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func sortDocs[T domain.Listable](docs []T, order ports.SortOrder) {
	less := domain.PublicLess
	if order == ports.SortRecent {
		less = domain.RecentLess
	}
	sort.SliceStable(docs, func(i, j int) bool { return less(docs[i], docs[j]) })
}

func matches(f ports.ContentFilter, active, featured bool, category string) bool {
	if f.ActiveOnly && !active {
		return false
	}
	if f.FeaturedOnly && !featured {
		return false
	}
	return f.Category == "" || f.Category == category
}

func limit[T any](docs []T, n int) []T {
	if n > 0 && len(docs) > n {
		return docs[:n]
	}
	return docs
}
