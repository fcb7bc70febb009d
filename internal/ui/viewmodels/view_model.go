package viewmodels

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"

	"farmdir/internal/domain"
	"farmdir/internal/images"
	"farmdir/internal/ui/input/types"
	"farmdir/internal/ui/state"
	"farmdir/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state    *state.AppState
	vocab    domain.Vocabulary
	resolver images.Resolver
	keys     types.KeyMap
	width    int
	height   int
	help     help.Model
	spinner  string
	detail   string

	inputMode   types.Mode
	inputPrompt string
	inputText   string
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, vocab domain.Vocabulary, resolver images.Resolver, keys types.KeyMap) *ViewModel {
	return &ViewModel{
		state:    appState,
		vocab:    vocab,
		resolver: resolver,
		keys:     keys,
		help:     help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
	vm.help.Width = width
}

// SetSpinner sets the rendered spinner frame
func (vm *ViewModel) SetSpinner(frame string) {
	vm.spinner = frame
}

// SetDetail sets the content of the detail popup; empty hides it
func (vm *ViewModel) SetDetail(content string) {
	vm.detail = content
}

// SetInput records the active input mode. ti is nil outside text modes.
func (vm *ViewModel) SetInput(mode types.Mode, prompt string, ti *textinput.Model) {
	vm.inputMode = mode
	vm.inputPrompt = prompt
	vm.inputText = ""
	if ti != nil {
		vm.inputText = ti.View()
	}
}

// ImageLookup resolves image references against the probe results
func (vm *ViewModel) ImageLookup() views.ImageLookup {
	return views.ImageLookup{
		Resolver: vm.resolver,
		Status:   vm.state.ImageStatus,
	}
}

// BuildViewState creates a ViewState for rendering
func (vm *ViewModel) BuildViewState() views.ViewState {
	results := vm.state.Results
	return views.ViewState{
		Width:          vm.width,
		Height:         vm.height,
		Location:       vm.state.Location,
		Vocabulary:     vm.vocab,
		Draft:          vm.state.Draft,
		Active:         results.Criteria,
		Farms:          results.Farms,
		Pagination:     results.Pagination,
		Phase:          results.Phase,
		HasNextPage:    results.HasNextPage,
		LastError:      results.LastError,
		SelectedIndex:  vm.state.SelectedIndex,
		ViewportOffset: vm.state.ViewportOffset,
		ViewportHeight: vm.state.ViewportHeight,
		StickyBar:      vm.state.StickyBar,
		ShowPreview:    vm.state.ShowPreview,
		ShowHelp:       vm.state.ShowHelp,
		DetailContent:  vm.detail,
		StatusMessage:  vm.state.StatusMessage,
		InputMode:      vm.inputMode,
		InputPrompt:    vm.inputPrompt,
		TextInput:      vm.inputText,
		CategoryCursor: vm.state.CategoryCursor,
		Images:         vm.ImageLookup(),
		HelpModel:      vm.help,
		Keys:           vm.keys,
		Spinner:        vm.spinner,
	}
}
