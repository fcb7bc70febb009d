package handlers

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"farmdir/internal/eventbus"
	"farmdir/internal/ui/state"
)

// statusTimeout is how long event status messages stay visible
const statusTimeout = 4 * time.Second

// ClearStatusMsg asks the model to clear the status line
type ClearStatusMsg struct{}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state *state.AppState
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState) *EventHandler {
	return &EventHandler{
		state: appState,
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ImageProbedEvent:
		h.state.MarkImage(e.URL, e.OK)

	case eventbus.ErrorEvent:
		h.state.StatusMessage = fmt.Sprintf("Error: %s", e.Message)
		return clearStatusAfter(statusTimeout)
	}

	return nil
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
