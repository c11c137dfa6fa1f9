// Package mongo stores spy cats in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kiosk404/spycats/internal/hq/service/cats/domain/entity"
	"github.com/kiosk404/spycats/internal/hq/service/cats/pkg/errno"
)

const countersCollection = "counters"

// document is the stored shape of a cat; seq preserves insertion order.
type document struct {
	entity.Cat `bson:",inline"`
	Seq        int64 `bson:"seq"`
}

// CatStore implements repo.CatRepository on a MongoDB collection.
type CatStore struct {
	cats     *mongo.Collection
	counters *mongo.Collection
	name     string
}

// Connect dials uri and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, nil
}

// NewCatStore creates a store on database.collection and ensures its indexes.
func NewCatStore(ctx context.Context, client *mongo.Client, database, collection string) (*CatStore, error) {
	db := client.Database(database)
	s := &CatStore{
		cats:     db.Collection(collection),
		counters: db.Collection(countersCollection),
		name:     collection,
	}

	_, err := s.cats.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "seq", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create seq index: %w", err)
	}
	return s, nil
}

// Create inserts a new cat behind every existing one.
func (s *CatStore) Create(ctx context.Context, cat *entity.Cat) error {
	seq, err := s.nextSeq(ctx)
	if err != nil {
		return err
	}

	_, err = s.cats.InsertOne(ctx, document{Cat: *cat, Seq: seq})
	if mongo.IsDuplicateKeyError(err) {
		return errno.ErrCatExists
	}
	if err != nil {
		return fmt.Errorf("failed to create cat: %w", err)
	}
	return nil
}

// Get retrieves a cat by its ID.
func (s *CatStore) Get(ctx context.Context, id string) (*entity.Cat, error) {
	var doc document
	err := s.cats.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errno.ErrCatNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cat: %w", err)
	}
	return normalize(&doc.Cat), nil
}

// Update overwrites the mutable fields of an existing cat.
func (s *CatStore) Update(ctx context.Context, cat *entity.Cat) error {
	res, err := s.cats.UpdateOne(ctx, bson.M{"_id": cat.ID}, bson.M{"$set": bson.M{
		"name":                cat.Name,
		"breed":               cat.Breed,
		"years_of_experience": cat.YearsOfExperience,
		"salary":              cat.Salary,
		"updated_at":          cat.UpdatedAt,
	}})
	if err != nil {
		return fmt.Errorf("failed to update cat: %w", err)
	}
	if res.MatchedCount == 0 {
		return errno.ErrCatNotFound
	}
	return nil
}

// Delete removes a cat by ID.
func (s *CatStore) Delete(ctx context.Context, id string) error {
	res, err := s.cats.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete cat: %w", err)
	}
	if res.DeletedCount == 0 {
		return errno.ErrCatNotFound
	}
	return nil
}

// List returns all cats in insertion order.
func (s *CatStore) List(ctx context.Context) ([]*entity.Cat, error) {
	cur, err := s.cats.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list cats: %w", err)
	}
	defer cur.Close(ctx)

	cats := []*entity.Cat{}
	for cur.Next(ctx) {
		var doc document
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode cat: %w", err)
		}
		cats = append(cats, normalize(&doc.Cat))
	}
	return cats, cur.Err()
}

func (s *CatStore) nextSeq(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate sequence: %w", err)
	}
	return counter.Seq, nil
}

// BSON dates decode as local time; records are kept in UTC.
func normalize(cat *entity.Cat) *entity.Cat {
	cat.CreatedAt = cat.CreatedAt.UTC()
	cat.UpdatedAt = cat.UpdatedAt.UTC()
	return cat
}
