package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tutorialhub/tutorial-platform/internal/core/domain"
	"github.com/tutorialhub/tutorial-platform/internal/core/ports"
)

const collectionTutorials = "tutorials"

type TutorialRepository struct {
	col *mongo.Collection
}

func NewTutorialRepository(db *mongo.Database) *TutorialRepository {
	return &TutorialRepository{col: db.Collection(collectionTutorials)}
}

type tutorialDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Sections  []domain.Section   `bson:"sections"`
	Tags      []string           `bson:"tags"`
	Author    primitive.ObjectID `bson:"author"`
	Views     int64              `bson:"views"`
	Published bool               `bson:"published"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d tutorialDoc) toDomain() *domain.Tutorial {
	return &domain.Tutorial{
		ID:        d.ID.Hex(),
		Title:     d.Title,
		Sections:  d.Sections,
		Tags:      d.Tags,
		AuthorID:  d.Author.Hex(),
		Views:     d.Views,
		Published: d.Published,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (r *TutorialRepository) Create(ctx context.Context, t *domain.Tutorial) (*domain.Tutorial, error) {
	author, err := primitive.ObjectIDFromHex(t.AuthorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := tutorialDoc{
		Title:     t.Title,
		Sections:  t.Sections,
		Tags:      t.Tags,
		Author:    author,
		Views:     0,
		Published: t.Published,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert tutorial: %w", err)
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toDomain(), nil
}

func (r *TutorialRepository) FindOwned(ctx context.Context, authorID, id string) (*domain.Tutorial, error) {
	filter, err := ownedFilter(authorID, id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tutorialDoc
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorialNotFound
		}
		return nil, fmt.Errorf("find tutorial: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TutorialRepository) ListOwned(ctx context.Context, authorID string, published *bool) ([]*domain.Tutorial, error) {
	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	filter := bson.M{"author": author}
	if published != nil {
		filter["published"] = *published
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list tutorials: %w", err)
	}
	return decodeAll(ctx, cur)
}

func (r *TutorialRepository) ListPublished(ctx context.Context, limit int64) ([]*domain.Tutorial, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.col.Find(ctx, bson.M{"published": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("list published tutorials: %w", err)
	}
	return decodeAll(ctx, cur)
}

// FindPublishedAndIncrementViews bumps the view counter and fetches the
// tutorial in a single FindOneAndUpdate, so concurrent fetches never lose an
// increment.
func (r *TutorialRepository) FindPublishedAndIncrementViews(ctx context.Context, id string) (*domain.Tutorial, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTutorialNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tutorialDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid, "published": true},
		bson.M{"$inc": bson.M{"views": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorialNotFound
		}
		return nil, fmt.Errorf("increment views: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TutorialRepository) Update(ctx context.Context, authorID, id string, patch ports.TutorialUpdate) (*domain.Tutorial, error) {
	filter, err := ownedFilter(authorID, id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Sections != nil {
		set["sections"] = patch.Sections
	}
	if patch.Tags != nil {
		set["tags"] = patch.Tags
	}
	if patch.Published != nil {
		set["published"] = *patch.Published
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc tutorialDoc
	err = r.col.FindOneAndUpdate(ctx, filter, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTutorialNotFound
		}
		return nil, fmt.Errorf("update tutorial: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TutorialRepository) Delete(ctx context.Context, authorID, id string) error {
	filter, err := ownedFilter(authorID, id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete tutorial: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTutorialNotFound
	}
	return nil
}

func (r *TutorialRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count tutorials: %w", err)
	}
	return n, nil
}

func (r *TutorialRepository) SumViews(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$views"}}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("sum views: %w", err)
	}
	defer cur.Close(ctx)

	var result struct {
		Total int64 `bson:"total"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&result); err != nil {
			return 0, fmt.Errorf("decode view total: %w", err)
		}
	}
	return result.Total, cur.Err()
}

// EnsureIndexes creates the indexes backing owner-scoped listings and the
// public feed.
func (r *TutorialRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// ownedFilter builds the {_id, author} filter that scopes every single-item
// operation to the requesting author. An unparseable id means the resource
// cannot exist, which is indistinguishable from not found.
func ownedFilter(authorID, id string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTutorialNotFound
	}
	author, err := primitive.ObjectIDFromHex(authorID)
	if err != nil {
		return nil, domain.ErrTutorialNotFound
	}
	return bson.M{"_id": oid, "author": author}, nil
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]*domain.Tutorial, error) {
	defer cur.Close(ctx)

	var list []*domain.Tutorial
	for cur.Next(ctx) {
		var doc tutorialDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode tutorial: %w", err)
		}
		list = append(list, doc.toDomain())
	}
	return list, cur.Err()
}
