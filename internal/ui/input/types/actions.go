package types

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// Mode transition actions
type ChangeModeAction struct {
	Mode Mode
	Data interface{} // Optional data for the mode
}

func (a ChangeModeAction) Type() string { return "change_mode" }

// Text input actions
type UpdateTextAction struct {
	Text string
}

func (a UpdateTextAction) Type() string { return "update_text" }

type SubmitTextAction struct {
	Text string
	Mode Mode // Which mode submitted the text
}

func (a SubmitTextAction) Type() string { return "submit_text" }

type CancelTextAction struct{}

func (a CancelTextAction) Type() string { return "cancel_text" }

// Search actions

// SearchAction encodes the draft criteria into a location and navigates to it
type SearchAction struct{}

func (a SearchAction) Type() string { return "search" }

type LoadMoreAction struct{}

func (a LoadMoreAction) Type() string { return "load_more" }

type RetryAction struct{}

func (a RetryAction) Type() string { return "retry" }

type BackAction struct{}

func (a BackAction) Type() string { return "back" }

// Category panel actions
type ToggleCategoryAction struct {
	Index int // -1 for the cursor position
}

func (a ToggleCategoryAction) Type() string { return "toggle_category" }

type ToggleAllCategoriesAction struct{}

func (a ToggleAllCategoriesAction) Type() string { return "toggle_all_categories" }

type MoveCategoryCursorAction struct {
	Delta int
}

func (a MoveCategoryCursorAction) Type() string { return "move_category_cursor" }

// View actions
type TogglePreviewAction struct{}

func (a TogglePreviewAction) Type() string { return "toggle_preview" }

type OpenDetailAction struct{}

func (a OpenDetailAction) Type() string { return "open_detail" }

type ToggleHelpAction struct{}

func (a ToggleHelpAction) Type() string { return "toggle_help" }

type OpenHelpPagerAction struct{}

func (a OpenHelpPagerAction) Type() string { return "open_help_pager" }

type CloseOverlayAction struct{}

func (a CloseOverlayAction) Type() string { return "close_overlay" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }
