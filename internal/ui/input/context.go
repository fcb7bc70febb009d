package input

import (
	"farmdir/internal/domain"
	"farmdir/internal/ui/state"
)

// History is the part of the router the input layer needs
type History interface {
	CanGoBack() bool
}

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State      *state.AppState
	Vocabulary domain.Vocabulary
	History    History
}

// CurrentIndex returns the current selected index
func (c *ModelContext) CurrentIndex() int {
	return c.State.SelectedIndex
}

// TotalItems returns the number of farm cards
func (c *ModelContext) TotalItems() int {
	return len(c.State.Results.Farms)
}

// HasFarm reports whether a farm card is highlighted
func (c *ModelContext) HasFarm() bool {
	_, ok := c.State.SelectedFarm()
	return ok
}

// CanLoadMore reports whether another page may be requested
func (c *ModelContext) CanLoadMore() bool {
	return c.State.Results.CanLoadMore()
}

// CanRetry reports whether a failed request can be re-issued
func (c *ModelContext) CanRetry() bool {
	return c.State.Results.CanRetry()
}

// CanGoBack reports whether there is an earlier location
func (c *ModelContext) CanGoBack() bool {
	return c.History != nil && c.History.CanGoBack()
}

// CategoryCount returns the size of the category vocabulary
func (c *ModelContext) CategoryCount() int {
	return len(c.Vocabulary)
}

// CategoryCursor returns the highlighted entry of the categories panel
func (c *ModelContext) CategoryCursor() int {
	return c.State.CategoryCursor
}

// PreviewOpen reports whether the preview popup is shown
func (c *ModelContext) PreviewOpen() bool {
	return c.State.ShowPreview
}

// HelpOpen reports whether the help popup is shown
func (c *ModelContext) HelpOpen() bool {
	return c.State.ShowHelp
}

// DraftQuery returns the query being edited
func (c *ModelContext) DraftQuery() string {
	return c.State.Draft.Query
}

// DraftDistance returns the distance being edited
func (c *ModelContext) DraftDistance() int {
	return c.State.Draft.Distance
}

// Location returns the current location
func (c *ModelContext) Location() string {
	return c.State.Location
}
