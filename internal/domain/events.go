package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventLocationChanged EventType = "LocationChanged"
	EventSearchStarted   EventType = "SearchStarted"
	EventSearchCompleted EventType = "SearchCompleted"
	EventSearchFailed    EventType = "SearchFailed"
	EventImageProbed     EventType = "ImageProbed"
	EventError           EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// LocationChangedEvent is emitted when the router navigates
type LocationChangedEvent struct {
	Location string
}

func (e LocationChangedEvent) Type() EventType { return EventLocationChanged }

// SearchStartedEvent is emitted when a search request is dispatched
type SearchStartedEvent struct {
	RequestID string
	Location  string
	Page      int
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a page of results arrives
type SearchCompletedEvent struct {
	RequestID  string
	Page       int
	Farms      int
	TotalItems int
	Stale      bool // result belonged to superseded criteria and was dropped
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a search request fails
type SearchFailedEvent struct {
	RequestID string
	Page      int
	Err       error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// ImageProbedEvent reports whether an image URL can be loaded
type ImageProbedEvent struct {
	URL string
	OK  bool
	Err error
}

func (e ImageProbedEvent) Type() EventType { return EventImageProbed }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
