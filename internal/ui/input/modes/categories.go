package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"farmdir/internal/ui/input/types"
)

// CategoriesMode drives the categories panel. Toggles only touch the draft;
// enter runs the search.
type CategoriesMode struct {
	keys types.KeyMap
}

func NewCategoriesMode(keys types.KeyMap) *CategoriesMode {
	return &CategoriesMode{keys: keys}
}

func (m *CategoriesMode) Name() string {
	return "categories"
}

func (m *CategoriesMode) Enter(ctx types.Context) []types.Action {
	return nil
}

func (m *CategoriesMode) Exit(ctx types.Context) []types.Action {
	return nil
}

// HandleKey processes key messages for the categories panel
func (m *CategoriesMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys
	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true
	case key.Matches(msg, k.Close), key.Matches(msg, k.EditCategories):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeNormal}}, true
	case key.Matches(msg, k.Up):
		return []types.Action{types.MoveCategoryCursorAction{Delta: -1}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.MoveCategoryCursorAction{Delta: 1}}, true
	case key.Matches(msg, k.Toggle):
		if ctx.CategoryCount() == 0 {
			return nil, true
		}
		return []types.Action{types.ToggleCategoryAction{Index: -1}}, true
	case key.Matches(msg, k.ToggleAll):
		return []types.Action{types.ToggleAllCategoriesAction{}}, true
	case key.Matches(msg, k.Apply):
		return []types.Action{
			types.SearchAction{},
			types.ChangeModeAction{Mode: types.ModeNormal},
		}, true
	}
	return nil, true
}
