package ui

import (
	"time"

	"farmdir/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for animations
type tickMsg time.Time

// locationMsg asks the model to navigate to a location
type locationMsg struct {
	location string
	push     bool // add a history entry
}

// pagerMsg contains the result of a pager command
type pagerMsg struct {
	title    string
	fallback string // shown in a popup when the pager failed
	err      error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
