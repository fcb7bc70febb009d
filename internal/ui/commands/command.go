package commands

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"farmdir/internal/domain"
	"farmdir/internal/eventbus"
	"farmdir/internal/search"
	"farmdir/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// ImageProber checks which image URLs load. Outcomes are published as
// ImageProbedEvents on the bus.
type ImageProber interface {
	Probe(ctx context.Context, urls []string) map[string]bool
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx      context.Context // cancelled when the program exits
	Searcher search.Searcher
	Prober   ImageProber
	Bus      eventbus.EventBus
	Logger   *slog.Logger
}

// SearchResultMsg carries the outcome of one tagged search request
type SearchResultMsg struct {
	Request state.Request
	Page    *domain.SearchPage
	Err     error
}

// SearchCommand runs one search request in the background
type SearchCommand struct {
	ctx      *CommandContext
	request  state.Request
	location string
}

// NewSearchCommand creates a new search command
func NewSearchCommand(ctx *CommandContext, request state.Request, location string) *SearchCommand {
	return &SearchCommand{
		ctx:      ctx,
		request:  request,
		location: location,
	}
}

// Execute returns a tea.Cmd performing the request
func (c *SearchCommand) Execute() tea.Cmd {
	if c.ctx.Searcher == nil {
		return nil
	}
	req := c.request
	if c.ctx.Bus != nil {
		c.ctx.Bus.Publish(eventbus.SearchStartedEvent{
			RequestID: req.ID,
			Location:  c.location,
			Page:      req.Page,
		})
	}
	base := c.ctx.Ctx
	if base == nil {
		base = context.Background()
	}
	searcher := c.ctx.Searcher
	logger := c.ctx.Logger

	return func() tea.Msg {
		page, err := searcher.Search(search.WithRequestID(base, req.ID), req.Criteria, req.Page)
		if err != nil && logger != nil {
			logger.Warn("search failed", "request_id", req.ID, "page", req.Page, "error", err)
		}
		return SearchResultMsg{Request: req, Page: page, Err: err}
	}
}

// ProbeCommand checks image URLs in the background
type ProbeCommand struct {
	ctx  *CommandContext
	urls []string
}

// NewProbeCommand creates a new probe command
func NewProbeCommand(ctx *CommandContext, urls []string) *ProbeCommand {
	return &ProbeCommand{
		ctx:  ctx,
		urls: urls,
	}
}

// Execute returns a tea.Cmd probing the URLs, or nil when probing is off
func (c *ProbeCommand) Execute() tea.Cmd {
	if c.ctx.Prober == nil || len(c.urls) == 0 {
		return nil
	}
	base := c.ctx.Ctx
	if base == nil {
		base = context.Background()
	}
	prober := c.ctx.Prober
	urls := append([]string(nil), c.urls...)

	return func() tea.Msg {
		prober.Probe(base, urls)
		return nil
	}
}
