// Package store opens the search popularity store selected by configuration.
package store

import (
	"context"
	"errors"
	"fmt"

	"reelfind/internal/config"
	"reelfind/internal/domain"
	memstore "reelfind/internal/store/memory"
	mongostore "reelfind/internal/store/mongo"
	redisstore "reelfind/internal/store/redis"
)

// ErrUnknownBackend is returned by Open for an unsupported store.backend value
var ErrUnknownBackend = errors.New("unknown store backend")

// SearchStore records search popularity and serves the trending list
type SearchStore interface {
	// TrendingMovies returns up to limit entries ordered by descending count
	TrendingMovies(ctx context.Context, limit int) ([]domain.TrendingEntry, error)
	// UpdateSearchCount creates the counter for term or increments it
	UpdateSearchCount(ctx context.Context, term string, movie domain.Movie) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

var (
	_ SearchStore = (*memstore.Store)(nil)
	_ SearchStore = (*mongostore.Store)(nil)
	_ SearchStore = (*redisstore.Store)(nil)
)

// Open builds the configured backend and checks that it is reachable
func Open(ctx context.Context, cfg config.StoreConfig, imageBaseURL string) (SearchStore, error) {
	var (
		s   SearchStore
		err error
	)

	switch cfg.Backend {
	case "", "memory":
		s = memstore.New(imageBaseURL)

	case "mongo", "mongodb":
		client, cerr := mongostore.Connect(ctx, cfg.MongoURI)
		if cerr != nil {
			return nil, cerr
		}
		ms := mongostore.New(client, cfg.MongoDatabase, cfg.MongoCollection, imageBaseURL)
		if err = ms.Ping(ctx); err == nil {
			err = ms.EnsureIndexes(ctx)
		}
		s = ms

	case "redis":
		client, cerr := redisstore.Connect(cfg.RedisURL)
		if cerr != nil {
			return nil, cerr
		}
		s = redisstore.New(client, cfg.RedisPrefix, imageBaseURL)
		err = s.Ping(ctx)

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}

	if err != nil {
		_ = s.Close(ctx)
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}
	return s, nil
}
