package commands

import (
	tea "github.com/charmbracelet/bubbletea"

	"farmdir/internal/domain"
	"farmdir/internal/images"
	"farmdir/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx      *CommandContext
	resolver images.Resolver
}

// NewExecutor creates a new command executor
func NewExecutor(ctx *CommandContext, resolver images.Resolver) *Executor {
	return &Executor{
		ctx:      ctx,
		resolver: resolver,
	}
}

// ExecuteSearch creates and executes a search command for request
func (e *Executor) ExecuteSearch(request *state.Request, location string) tea.Cmd {
	if request == nil {
		return nil
	}
	return NewSearchCommand(e.ctx, *request, location).Execute()
}

// ExecuteProbe creates and executes a probe command for every image the
// farm cards display: the first farm image and the first image of each
// previewed produce
func (e *Executor) ExecuteProbe(farms []domain.Farm) tea.Cmd {
	var urls []string
	for _, f := range farms {
		if u := e.resolver.First(f.Images); u != "" {
			urls = append(urls, u)
		}
		for _, p := range f.ProducePreview() {
			if u := e.resolver.First(p.Images); u != "" {
				urls = append(urls, u)
			}
		}
	}
	return NewProbeCommand(e.ctx, urls).Execute()
}
