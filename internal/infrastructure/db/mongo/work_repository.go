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

const collectionWorks = "works"

// WorkRepository implements ports.WorkRepository using MongoDB. Technologies
// are stored as ObjectID references into the stacks collection.
type WorkRepository struct {
	col *mongo.Collection
}

func NewWorkRepository(db *mongo.Database) *WorkRepository {
	return &WorkRepository{col: db.Collection(collectionWorks)}
}

func (r *WorkRepository) Create(ctx context.Context, w *domain.Work) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := newWorkDoc(w)
	doc.ID = primitive.NewObjectID()
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert work: %w", err)
	}
	w.ID = doc.ID.Hex()
	return nil
}

func (r *WorkRepository) FindByID(ctx context.Context, id string, activeOnly bool) (*domain.Work, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, domain.ErrWorkNotFound
	}
	filter := bson.M{"_id": oid}
	if activeOnly {
		filter["isActive"] = true
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc workDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrWorkNotFound
		}
		return nil, fmt.Errorf("find work: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *WorkRepository) List(ctx context.Context, f ports.ContentFilter) ([]*domain.Work, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, contentFilter(f), contentFindOptions(f))
	if err != nil {
		return nil, fmt.Errorf("list works: %w", err)
	}

	var docs []workDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode works: %w", err)
	}
	works := make([]*domain.Work, len(docs))
	for i, d := range docs {
		works[i] = d.toDomain()
	}
	return works, nil
}

func (r *WorkRepository) Replace(ctx context.Context, w *domain.Work) error {
	oid, ok := objectID(w.ID)
	if !ok {
		return domain.ErrWorkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, newWorkDoc(w))
	if err != nil {
		return fmt.Errorf("replace work: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrWorkNotFound
	}
	return nil
}

func (r *WorkRepository) Delete(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return domain.ErrWorkNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete work: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrWorkNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes behind the public and dashboard work listings.
func (r *WorkRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, workIndexes())
	return err
}

func workIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "title", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "featured", Value: -1}, {Key: "order", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
}
