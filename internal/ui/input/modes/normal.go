package modes

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"farmdir/internal/ui/input/types"
)

type NormalMode struct {
	keys        types.KeyMap
	lastKeyWasG bool
	lastGTime   time.Time
}

func NewNormalMode(keys types.KeyMap) *NormalMode {
	return &NormalMode{keys: keys}
}

func (m *NormalMode) Name() string {
	return "normal"
}

func (m *NormalMode) Enter(ctx types.Context) []types.Action {
	return nil // No special actions on enter
}

func (m *NormalMode) Exit(ctx types.Context) []types.Action {
	return nil // No special actions on exit
}

func (m *NormalMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	k := m.keys

	// gg - go to top (within timeout)
	if msg.String() == "g" {
		if m.lastKeyWasG && time.Since(m.lastGTime) < 500*time.Millisecond {
			m.lastKeyWasG = false
			return []types.Action{types.NavigateAction{Direction: "home"}}, true
		}
		m.lastKeyWasG = true
		m.lastGTime = time.Now()
		return nil, true // consume the key but don't do anything
	}
	m.lastKeyWasG = false

	switch {
	case key.Matches(msg, k.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, k.Close):
		// Close popups first; with nothing open esc does nothing
		if ctx.PreviewOpen() || ctx.HelpOpen() {
			return []types.Action{types.CloseOverlayAction{}}, true
		}
		return nil, true

	case key.Matches(msg, k.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true
	case key.Matches(msg, k.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true
	case key.Matches(msg, k.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true
	case key.Matches(msg, k.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true
	case key.Matches(msg, k.Home):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true
	case key.Matches(msg, k.End):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, k.EditQuery):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeSearch, Data: ctx.DraftQuery()}}, true
	case key.Matches(msg, k.EditDistance):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeDistance, Data: strconv.Itoa(ctx.DraftDistance())}}, true
	case key.Matches(msg, k.EditCategories):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeCategories}}, true
	case key.Matches(msg, k.EditLocation):
		return []types.Action{types.ChangeModeAction{Mode: types.ModeLocation, Data: ctx.Location()}}, true
	case key.Matches(msg, k.Search):
		return []types.Action{types.SearchAction{}}, true

	case key.Matches(msg, k.LoadMore):
		if ctx.CanLoadMore() {
			return []types.Action{types.LoadMoreAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Retry):
		if ctx.CanRetry() {
			return []types.Action{types.RetryAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Back):
		if ctx.CanGoBack() {
			return []types.Action{types.BackAction{}}, true
		}
		return nil, true

	case key.Matches(msg, k.Preview):
		if ctx.HasFarm() || ctx.PreviewOpen() {
			return []types.Action{types.TogglePreviewAction{}}, true
		}
		return nil, true
	case key.Matches(msg, k.Detail):
		if ctx.HasFarm() {
			return []types.Action{types.OpenDetailAction{}}, true
		}
		return nil, false
	case key.Matches(msg, k.Help):
		return []types.Action{types.ToggleHelpAction{}}, true
	case key.Matches(msg, k.HelpPager):
		return []types.Action{types.OpenHelpPagerAction{}}, true

	case key.Matches(msg, k.Quit):
		return []types.Action{types.QuitAction{Force: false}}, true
	}

	return nil, false
}
