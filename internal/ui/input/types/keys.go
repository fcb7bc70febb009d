package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the farm directory
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	EditQuery      key.Binding
	EditDistance   key.Binding
	EditCategories key.Binding
	EditLocation   key.Binding
	Search         key.Binding

	LoadMore key.Binding
	Retry    key.Binding
	Back     key.Binding

	Preview   key.Binding
	Detail    key.Binding
	Help      key.Binding
	HelpPager key.Binding
	Close     key.Binding

	// Categories panel
	Toggle    key.Binding
	ToggleAll key.Binding
	Apply     key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("C-u", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("C-d", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("gg", "top"),
	),
	End: key.NewBinding(
		key.WithKeys("G", "end"),
		key.WithHelp("G", "bottom"),
	),
	EditQuery: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "query"),
	),
	EditDistance: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "distance"),
	),
	EditCategories: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "categories"),
	),
	EditLocation: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open location"),
	),
	Search: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "search"),
	),
	LoadMore: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "load more"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "retry"),
	),
	Back: key.NewBinding(
		key.WithKeys("b", "backspace"),
		key.WithHelp("b", "back"),
	),
	Preview: key.NewBinding(
		key.WithKeys("p", "tab"),
		key.WithHelp("p", "preview"),
	),
	Detail: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	HelpPager: key.NewBinding(
		key.WithKeys("H"),
		key.WithHelp("H", "help in pager"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle"),
	),
	ToggleAll: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "all/none"),
	),
	Apply: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "search"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
	),
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditQuery, k.EditCategories, k.Search, k.Preview, k.Detail, k.Back, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.EditQuery, k.EditDistance, k.EditCategories, k.EditLocation, k.Search},
		{k.LoadMore, k.Retry, k.Back},
		{k.Preview, k.Detail, k.Help, k.HelpPager, k.Quit},
	}
}

// CategoryHelp lists the bindings of the categories panel
func (k KeyMap) CategoryHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.ToggleAll, k.Apply, k.Close}
}
