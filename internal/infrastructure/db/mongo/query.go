package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

// contentFilter builds the find filter shared by the stacks and works collections.
func contentFilter(f ports.ContentFilter) bson.M {
	filter := bson.M{}
	if f.ActiveOnly {
		filter["isActive"] = true
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.FeaturedOnly {
		filter["featured"] = true
	}
	return filter
}

func contentSort(order ports.SortOrder) bson.D {
	if order == ports.SortRecent {
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	return bson.D{
		{Key: "featured", Value: -1},
		{Key: "order", Value: 1},
		{Key: "createdAt", Value: -1},
	}
}

func contentFindOptions(f ports.ContentFilter) *options.FindOptions {
	opts := options.Find().SetSort(contentSort(f.Sort))
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	return opts
}

// identifierFilter matches a normalized identifier against username or email.
func identifierFilter(identifier string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}}
}
