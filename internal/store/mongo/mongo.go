// Package mongo stores search counters as MongoDB documents, one per search term.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"reelfind/internal/domain"
)

type searchDoc struct {
	ID         string `bson:"_id"`
	SearchTerm string `bson:"searchTerm"`
	Count      int    `bson:"count"`
	MovieID    int    `bson:"movie_id"`
	Title      string `bson:"title"`
	PosterURL  string `bson:"poster_url"`
	CreatedAt  int64  `bson:"createdAt"`
}

type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	imageBase  string
}

// Connect dials uri. The returned client is owned by the caller unless handed to New.
func Connect(ctx context.Context, uri string, extra ...*options.ClientOptions) (*mongo.Client, error) {
	opts := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, extra...)
	client, err := mongo.Connect(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, nil
}

// New wraps a collection. Close disconnects client.
func New(client *mongo.Client, dbName, collectionName, imageBaseURL string) *Store {
	return &Store{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
		imageBase:  imageBaseURL,
	}
}

// EnsureIndexes creates the unique term index and the ranking index
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "searchTerm", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "count", Value: -1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := s.collection.Indexes().CreateMany(ctx, models); err != nil {
		return fmt.Errorf("create indexes: %w", err)
	}
	return nil
}

// UpdateSearchCount increments the counter for term, creating the document on first use
func (s *Store) UpdateSearchCount(ctx context.Context, term string, movie domain.Movie) error {
	update := bson.M{
		"$inc": bson.M{"count": 1},
		"$setOnInsert": bson.M{
			"_id":        uuid.NewString(),
			"movie_id":   movie.ID,
			"title":      movie.Title,
			"poster_url": movie.PosterURL(s.imageBase),
			"createdAt":  time.Now().UnixNano(),
		},
	}
	filter := bson.M{"searchTerm": term}
	opts := options.Update().SetUpsert(true)
	_, err := s.collection.UpdateOne(ctx, filter, update, opts)
	if mongo.IsDuplicateKeyError(err) {
		// A concurrent upsert inserted the term first; the retry matches it
		_, err = s.collection.UpdateOne(ctx, filter, update, opts)
	}
	if err != nil {
		return fmt.Errorf("update search count for %q: %w", term, err)
	}
	return nil
}

// TrendingMovies returns up to limit documents by descending count
func (s *Store) TrendingMovies(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}, {Key: "createdAt", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find trending: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []searchDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode trending: %w", err)
	}

	entries := make([]domain.TrendingEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, docToEntry(doc))
	}
	return entries, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func docToEntry(doc searchDoc) domain.TrendingEntry {
	return domain.TrendingEntry{
		ID:         doc.ID,
		SearchTerm: doc.SearchTerm,
		Count:      doc.Count,
		MovieID:    doc.MovieID,
		Title:      doc.Title,
		PosterURL:  doc.PosterURL,
	}
}
