// Package popularity records successful searches in the search store.
//
// Recording is fire-and-forget: the UI publishes a SearchSucceeded event and
// moves on, failures end up in the log only.
package popularity

import (
	"context"
	"sync"
	"time"

	"reelfind/internal/domain"
	"reelfind/internal/eventbus"
	"reelfind/internal/logging"
)

// Recorder is the part of the search store the tracker needs
type Recorder interface {
	UpdateSearchCount(ctx context.Context, term string, movie domain.Movie) error
}

// Tracker subscribes to SearchSucceeded events and bumps the counter for each
type Tracker struct {
	recorder    Recorder
	timeout     time.Duration
	unsubscribe func()

	mu       sync.Mutex
	closed   bool
	inflight sync.WaitGroup
}

// NewTracker subscribes to bus. timeout bounds each store call; zero means no bound.
func NewTracker(bus eventbus.EventBus, recorder Recorder, timeout time.Duration) *Tracker {
	t := &Tracker{
		recorder: recorder,
		timeout:  timeout,
	}

	t.unsubscribe = bus.Subscribe(eventbus.EventSearchSucceeded, func(e eventbus.DomainEvent) {
		event, ok := e.(eventbus.SearchSucceededEvent)
		if !ok || !t.begin() {
			return
		}
		defer t.inflight.Done()
		t.Record(event.Term, event.Movie)
	})

	return t
}

// Record updates the counter for term and logs the outcome. It never returns an error.
func (t *Tracker) Record(term string, movie domain.Movie) {
	ctx := context.Background()
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if err := t.recorder.UpdateSearchCount(ctx, term, movie); err != nil {
		logging.Error().Err(err).Str("term", term).Int("movie_id", movie.ID).Msg("failed to record search")
		return
	}
	logging.Debug().Str("term", term).Int("movie_id", movie.ID).Msg("search recorded")
}

// begin counts a record as in flight unless the tracker is closed
func (t *Tracker) begin() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false
	}
	t.inflight.Add(1)
	return true
}

// Close stops listening and waits for records already in progress.
// Events delivered after Close are ignored.
func (t *Tracker) Close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.inflight.Wait()
}
