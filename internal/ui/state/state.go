package state

import (
	"reelfind/internal/domain"
)

const (
	// DefaultFailureMessage is shown when the API reports a failure without a message
	DefaultFailureMessage = "Failed to fetch movies"
	// FetchErrorMessage is shown when the request itself fails
	FetchErrorMessage = "Error fetching movies. Please try again later"
)

// AppState contains all the application state
type AppState struct {
	// Search data
	Query          string // raw text in the search box
	DebouncedQuery string // last value published by the debouncer
	debounced      bool   // whether the debouncer has published at least once

	// Results
	Movies       []domain.Movie
	Loading      bool
	ErrorMessage string
	Trending     []domain.TrendingEntry

	// UI state
	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int
	ShowHelp       bool
	ShowDetails    bool
	DetailsContent string
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Movies:         make([]domain.Movie, 0),
		Trending:       make([]domain.TrendingEntry, 0),
		ViewportHeight: 10, // Default
	}
}

// Search lifecycle

// PublishDebounced records a settled query and reports whether it should trigger a fetch.
// The first publish always does; later ones only when the value changed.
func (s *AppState) PublishDebounced(value string) bool {
	if s.debounced && value == s.DebouncedQuery {
		return false
	}
	s.debounced = true
	s.DebouncedQuery = value
	return true
}

// BeginFetch marks a search as in flight and clears the previous error
func (s *AppState) BeginFetch() {
	s.Loading = true
	s.ErrorMessage = ""
}

// ApplyPage stores a decoded response. It returns false when the API reported a
// logical failure, in which case the list is cleared and ErrorMessage set.
func (s *AppState) ApplyPage(page domain.MoviePage) bool {
	if page.Failed() {
		s.ErrorMessage = page.Error
		if s.ErrorMessage == "" {
			s.ErrorMessage = DefaultFailureMessage
		}
		s.Movies = make([]domain.Movie, 0)
		return false
	}
	if page.Results == nil {
		s.Movies = make([]domain.Movie, 0)
	} else {
		s.Movies = page.Results
	}
	return true
}

// ApplyFetchError records a transport failure; the current list stays as is
func (s *AppState) ApplyFetchError() {
	s.ErrorMessage = FetchErrorMessage
}

// EndFetch clears the loading flag regardless of outcome
func (s *AppState) EndFetch() {
	s.Loading = false
}

// SetTrending replaces the trending list
func (s *AppState) SetTrending(entries []domain.TrendingEntry) {
	if entries == nil {
		entries = make([]domain.TrendingEntry, 0)
	}
	s.Trending = entries
}

// SelectedMovie returns the movie under the cursor
func (s *AppState) SelectedMovie() (domain.Movie, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Movies) {
		return domain.Movie{}, false
	}
	return s.Movies[s.SelectedIndex], true
}
