package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSucceeded EventType = "SearchSucceeded"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSucceededEvent is emitted when a non-empty search returned at least one movie.
// Movie is the top-ranked result.
type SearchSucceededEvent struct {
	Term  string
	Movie Movie
}

func (e SearchSucceededEvent) Type() EventType { return EventSearchSucceeded }
