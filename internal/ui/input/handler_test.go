package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdir/internal/domain"
	"farmdir/internal/ui/input/types"
	"farmdir/internal/ui/state"
)

type fakeHistory bool

func (f fakeHistory) CanGoBack() bool { return bool(f) }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newContext() *ModelContext {
	return &ModelContext{
		State:      state.NewAppState(domain.DefaultVocabulary),
		Vocabulary: domain.DefaultVocabulary,
		History:    fakeHistory(false),
	}
}

func TestNormalModeNavigation(t *testing.T) {
	h := New()
	ctx := newContext()

	actions, _ := h.HandleKey(runes("j"), ctx)
	require.Len(t, actions, 1)
	assert.Equal(t, types.NavigateAction{Direction: "down"}, actions[0])

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyUp}, ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "up"}}, actions)

	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Empty(t, actions)
	actions, _ = h.HandleKey(runes("g"), ctx)
	assert.Equal(t, []types.Action{types.NavigateAction{Direction: "home"}}, actions)
}

func TestNormalModeGuardsLoadRetryBack(t *testing.T) {
	h := New()
	ctx := newContext()

	for _, k := range []string{"m", "r", "b"} {
		actions, _ := h.HandleKey(runes(k), ctx)
		assert.Empty(t, actions, "key %q", k)
	}

	ctx.History = fakeHistory(true)
	actions, _ := h.HandleKey(runes("b"), ctx)
	assert.Equal(t, []types.Action{types.BackAction{}}, actions)
}

func TestSearchModeSubmitsEditedQuery(t *testing.T) {
	h := New()
	ctx := newContext()
	ctx.State.Draft.Query = "kal"

	actions, cmd := h.HandleKey(runes("/"), ctx)
	assert.NotNil(t, cmd)
	assert.Equal(t, types.ModeSearch, h.CurrentMode())
	assert.Contains(t, actions, types.Action(types.ChangeModeAction{Mode: types.ModeSearch, Data: "kal"}))
	assert.Equal(t, "Search: ", h.Prompt())

	actions, _ = h.HandleKey(runes("e"), ctx)
	assert.Equal(t, []types.Action{types.UpdateTextAction{Text: "kale"}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, types.SubmitTextAction{Text: "kale", Mode: types.ModeSearch}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
	assert.Nil(t, h.TextInput())
}

func TestTextModeEscCancels(t *testing.T) {
	h := New()
	ctx := newContext()

	h.HandleKey(runes("d"), ctx)
	require.Equal(t, types.ModeDistance, h.CurrentMode())
	assert.Equal(t, "50", h.TextInput().Value())

	actions, _ := h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}, ctx)
	assert.Equal(t, types.CancelTextAction{}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestCategoriesMode(t *testing.T) {
	h := New()
	ctx := newContext()

	h.HandleKey(runes("c"), ctx)
	require.Equal(t, types.ModeCategories, h.CurrentMode())

	actions, _ := h.HandleKey(runes(" "), ctx)
	assert.Equal(t, []types.Action{types.ToggleCategoryAction{Index: -1}}, actions)

	actions, _ = h.HandleKey(runes("a"), ctx)
	assert.Equal(t, []types.Action{types.ToggleAllCategoriesAction{}}, actions)

	actions, _ = h.HandleKey(runes("j"), ctx)
	assert.Equal(t, []types.Action{types.MoveCategoryCursorAction{Delta: 1}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyEnter}, ctx)
	assert.Equal(t, types.SearchAction{}, actions[0])
	assert.Equal(t, types.ModeNormal, h.CurrentMode())
}

func TestQuitKeys(t *testing.T) {
	h := New()
	ctx := newContext()

	actions, _ := h.HandleKey(runes("q"), ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: false}}, actions)

	actions, _ = h.HandleKey(tea.KeyMsg{Type: tea.KeyCtrlC}, ctx)
	assert.Equal(t, []types.Action{types.QuitAction{Force: true}}, actions)
}
