// Package memory is an in-process search store. Counts live for the lifetime of the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"reelfind/internal/domain"
)

type entry struct {
	domain.TrendingEntry
	seq int
}

// Store is an in-memory implementation of the search store
type Store struct {
	mu        sync.RWMutex
	imageBase string
	byTerm    map[string]*entry
	nextSeq   int
}

// New creates a new memory-based search store
func New(imageBaseURL string) *Store {
	return &Store{
		imageBase: imageBaseURL,
		byTerm:    make(map[string]*entry),
	}
}

// UpdateSearchCount creates the counter for term or increments it
func (s *Store) UpdateSearchCount(ctx context.Context, term string, movie domain.Movie) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.byTerm[term]; ok {
		e.Count++
		return nil
	}

	s.nextSeq++
	s.byTerm[term] = &entry{
		TrendingEntry: domain.TrendingEntry{
			ID:         uuid.NewString(),
			SearchTerm: term,
			Count:      1,
			MovieID:    movie.ID,
			Title:      movie.Title,
			PosterURL:  movie.PosterURL(s.imageBase),
		},
		seq: s.nextSeq,
	}
	return nil
}

// TrendingMovies returns up to limit entries by descending count; ties keep creation order
func (s *Store) TrendingMovies(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	all := make([]*entry, 0, len(s.byTerm))
	for _, e := range s.byTerm {
		all = append(all, e)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].seq < all[j].seq
	})

	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	out := make([]domain.TrendingEntry, 0, len(all))
	for _, e := range all {
		out = append(out, e.TrendingEntry)
	}
	return out, nil
}

// Ping always succeeds
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) Close(context.Context) error {
	return nil
}
