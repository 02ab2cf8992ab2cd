// Package redis keeps search counters in a sorted set and per-term hashes.
//
//	<prefix>trending        ZSET  member=term score=count
//	<prefix>search:<term>   HASH  id, movie_id, title, poster_url (set once)
package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"reelfind/internal/domain"
)

const defaultPrefix = "reelfind:"

type Store struct {
	client    *redis.Client
	prefix    string
	imageBase string
}

// Connect parses a redis:// URL and returns a client. The connection is not checked.
func Connect(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return redis.NewClient(opts), nil
}

// New wraps client. Close closes it.
func New(client *redis.Client, prefix, imageBaseURL string) *Store {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Store{client: client, prefix: prefix, imageBase: imageBaseURL}
}

func (s *Store) trendingKey() string {
	return s.prefix + "trending"
}

func (s *Store) searchKey(term string) string {
	return s.prefix + "search:" + term
}

// UpdateSearchCount increments the counter for term and records the movie the first time
func (s *Store) UpdateSearchCount(ctx context.Context, term string, movie domain.Movie) error {
	key := s.searchKey(term)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, s.trendingKey(), 1, term)
		pipe.HSetNX(ctx, key, "id", uuid.NewString())
		pipe.HSetNX(ctx, key, "movie_id", strconv.Itoa(movie.ID))
		pipe.HSetNX(ctx, key, "title", movie.Title)
		pipe.HSetNX(ctx, key, "poster_url", movie.PosterURL(s.imageBase))
		return nil
	})
	if err != nil {
		return fmt.Errorf("update search count for %q: %w", term, err)
	}
	return nil
}

// TrendingMovies returns up to limit terms by descending count
func (s *Store) TrendingMovies(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}
	ranked, err := s.client.ZRevRangeWithScores(ctx, s.trendingKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("read trending set: %w", err)
	}
	if len(ranked) == 0 {
		return []domain.TrendingEntry{}, nil
	}

	pipe := s.client.Pipeline()
	details := make([]*redis.MapStringStringCmd, len(ranked))
	for i, z := range ranked {
		details[i] = pipe.HGetAll(ctx, s.searchKey(fmt.Sprint(z.Member)))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("read trending details: %w", err)
	}

	entries := make([]domain.TrendingEntry, 0, len(ranked))
	for i, z := range ranked {
		fields := details[i].Val()
		movieID, _ := strconv.Atoi(fields["movie_id"])
		entries = append(entries, domain.TrendingEntry{
			ID:         fields["id"],
			SearchTerm: fmt.Sprint(z.Member),
			Count:      int(z.Score),
			MovieID:    movieID,
			Title:      fields["title"],
			PosterURL:  fields["poster_url"],
		})
	}
	return entries, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close(context.Context) error {
	return s.client.Close()
}
