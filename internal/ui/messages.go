package ui

import (
	"reelfind/internal/domain"
)

// moviesFetchedMsg carries the outcome of one fetch-movies call
type moviesFetchedMsg struct {
	term string
	page domain.MoviePage
	err  error
}

// trendingLoadedMsg carries the outcome of the startup trending load
type trendingLoadedMsg struct {
	entries []domain.TrendingEntry
	err     error
}

// detailsPagerMsg contains the result of a details pager command
type detailsPagerMsg struct {
	content string
	err     error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
