package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/enzocoder/portfolio-api/internal/core/domain"
	"github.com/enzocoder/portfolio-api/internal/core/ports"
)

const collectionStacks = "stacks"

// StackRepository implements ports.StackRepository using MongoDB.
type StackRepository struct {
	col *mongo.Collection
}

func NewStackRepository(db *mongo.Database) *StackRepository {
	return &StackRepository{col: db.Collection(collectionStacks)}
}

// Create inserts s and assigns its id.
func (r *StackRepository) Create(ctx context.Context, s *domain.Stack) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newStackDoc(s)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert stack: %w", err)
	}
	s.ID = doc.ID.Hex()
	return nil
}

func (r *StackRepository) FindByID(ctx context.Context, id string, activeOnly bool) (*domain.Stack, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrStackNotFound
	}
	filter := bson.M{"_id": oid}
	if activeOnly {
		filter["isActive"] = true
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc stackDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrStackNotFound
		}
		return nil, fmt.Errorf("find stack: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *StackRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Stack, error) {
	oids := objectIDs(ids)
	if len(oids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": oids}}, nil)
}

func (r *StackRepository) List(ctx context.Context, f ports.ContentFilter) ([]*domain.Stack, error) {
	return r.find(ctx, contentFilter(f), &f)
}

func (r *StackRepository) Replace(ctx context.Context, s *domain.Stack) error {
	oid, ok := objectID(s.ID)
	if !ok {
		return domain.ErrStackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, newStackDoc(s))
	if err != nil {
		return fmt.Errorf("replace stack: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrStackNotFound
	}
	return nil
}

func (r *StackRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrStackNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete stack: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrStackNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes behind the public and dashboard stack listings.
func (r *StackRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "name", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "order", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// find runs filter, applying sort and limit from f when given.
func (r *StackRepository) find(ctx context.Context, filter bson.M, f *ports.ContentFilter) ([]*domain.Stack, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var (
		cur *mongo.Cursor
		err error
	)
	if f != nil {
		cur, err = r.col.Find(ctx, filter, contentFindOptions(*f))
	} else {
		cur, err = r.col.Find(ctx, filter)
	}
	if err != nil {
		return nil, fmt.Errorf("list stacks: %w", err)
	}

	var docs []stackDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode stacks: %w", err)
	}
	stacks := make([]*domain.Stack, len(docs))
	for i, d := range docs {
		stacks[i] = d.toDomain()
	}
	return stacks, nil
}
