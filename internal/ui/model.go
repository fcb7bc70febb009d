package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"farmdir/internal/domain"
	"farmdir/internal/eventbus"
	"farmdir/internal/images"
	"farmdir/internal/search"
	"farmdir/internal/ui/commands"
	"farmdir/internal/ui/handlers"
	"farmdir/internal/ui/input"
	inputtypes "farmdir/internal/ui/input/types"
	"farmdir/internal/ui/logic"
	"farmdir/internal/ui/state"
	"farmdir/internal/ui/viewmodels"
	"farmdir/internal/ui/views"
	"farmdir/internal/urlcodec"
)

// defaultStatusTimeout is how long transient status messages stay visible
const defaultStatusTimeout = 3 * time.Second

// Options configures a Model
type Options struct {
	Bus        eventbus.EventBus
	Searcher   search.Searcher
	Prober     commands.ImageProber // nil disables image probing
	Vocabulary domain.Vocabulary
	AssetsURL  string
	Location   string // initial location, "/farms" when empty
	Logger     *slog.Logger
	Context    context.Context // cancels background work on exit

	HistoryLimit int
}

// Model is the farm directory page
type Model struct {
	bus    eventbus.EventBus
	state  *state.AppState // centralized state
	codec  *urlcodec.Codec
	vocab  domain.Vocabulary
	logger *slog.Logger

	// UI-specific state not in AppState
	width         int
	height        int
	spinner       spinner.Model
	spinning      bool
	inPagerMode   bool   // tracks if we're currently in pager mode
	detailContent string // pager fallback popup
	initial       string
	statusTimeout time.Duration

	// Handlers
	router       *Router
	navigator    *logic.Navigator       // navigation and viewport handler
	trigger      *logic.ScrollTrigger   // loads the next page at the bottom
	renderer     *views.Renderer        // view renderer
	viewModel    *viewmodels.ViewModel  // view model for rendering
	eventHandler *handlers.EventHandler // event processing handler
	cmdExecutor  *commands.Executor     // command executor
	inputHandler *input.Handler         // input handling

	// Program reference for terminal management
	program *tea.Program
	pager   *PagerOps
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	vocab := opts.Vocabulary
	if len(vocab) == 0 {
		vocab = domain.DefaultVocabulary
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	initial := opts.Location
	if strings.TrimSpace(initial) == "" {
		initial = urlcodec.BasePath
	}

	appState := state.NewAppState(vocab)
	resolver := images.NewResolver(opts.AssetsURL)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		bus:           opts.Bus,
		state:         appState,
		codec:         urlcodec.New(vocab),
		vocab:         vocab,
		logger:        logger.With("component", "ui"),
		spinner:       sp,
		initial:       initial,
		statusTimeout: defaultStatusTimeout,
		router:        NewRouter(opts.HistoryLimit),
		navigator:     logic.NewNavigator(),
		trigger:       logic.NewScrollTrigger(),
		renderer:      views.NewRenderer(),
		eventHandler:  handlers.NewEventHandler(appState),
		inputHandler:  input.New(),
	}
	m.viewModel = viewmodels.NewViewModel(appState, vocab, resolver, m.inputHandler.Keys())

	m.cmdExecutor = commands.NewExecutor(&commands.CommandContext{
		Ctx:      ctx,
		Searcher: opts.Searcher,
		Prober:   opts.Prober,
		Bus:      opts.Bus,
		Logger:   m.logger,
	}, resolver)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.pager = NewPagerOps(p)
}

// Location returns the current location
func (m *Model) Location() string {
	return m.state.Location
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Init navigates to the initial location
func (m *Model) Init() tea.Cmd {
	initial := m.initial
	return func() tea.Msg {
		return locationMsg{location: initial, push: true}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		// The fallback detail popup swallows keys until closed
		if m.detailContent != "" {
			switch msg.String() {
			case "esc", "enter", "q":
				m.detailContent = ""
			case "ctrl+c":
				return m, m.quit()
			}
			return m, nil
		}

		ctx := &input.ModelContext{
			State:      m.state,
			Vocabulary: m.vocab,
			History:    m.router,
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)
		cmds = append(cmds, cmd)
		for _, action := range actions {
			cmds = append(cmds, m.processAction(action))
		}

	case spinner.TickMsg:
		if m.inPagerMode || !m.loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	default:
		if cmd := m.inputHandler.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		cmds = append(cmds, m.handleNonKeyboardMsg(msg))
	}

	cmds = append(cmds, m.syncViewport())
	return m, tea.Batch(cmds...)
}

// handleNonKeyboardMsg handles messages from commands, the bus and timers
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case locationMsg:
		return m.navigate(msg.location, msg.push)

	case commands.SearchResultMsg:
		return m.handleSearchResult(msg)

	case EventMsg:
		return m.eventHandler.HandleEvent(msg.Event)

	case pagerMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed, falling back to popup", "title", msg.title, "error", msg.err)
			m.detailContent = msg.fallback
			if m.bus != nil {
				m.bus.Publish(eventbus.ErrorEvent{Message: "pager unavailable", Err: msg.err})
			}
		}

	case pauseRenderingMsg:
		m.inPagerMode = true

	case resumeRenderingMsg:
		m.inPagerMode = false

	case handlers.ClearStatusMsg:
		m.state.StatusMessage = ""
	}
	return nil
}

// navigate makes location current and starts a fresh search for it.
// Navigating to the current location still searches again.
func (m *Model) navigate(location string, push bool) tea.Cmd {
	criteria, err := m.codec.ParseLocation(location)
	if err != nil {
		m.logger.Warn("invalid location", "location", location, "error", err)
		return m.setStatus(err.Error())
	}
	canonical := m.codec.Location(criteria)
	// Criteria the location cannot express, such as an empty category list,
	// read back as what the location means
	if criteria, err = m.codec.ParseLocation(canonical); err != nil {
		return m.setStatus(err.Error())
	}
	if push {
		m.router.Navigate(canonical)
	} else {
		m.router.Replace(canonical)
	}

	m.state.Location = canonical
	m.state.ResetDraft(criteria)
	m.state.SelectedIndex = 0
	m.state.ViewportOffset = 0
	m.state.ShowPreview = false
	m.logger.Info("location changed", "location", canonical)
	if m.bus != nil {
		m.bus.Publish(eventbus.LocationChangedEvent{Location: canonical})
	}

	return m.dispatch(m.state.Results.Apply(state.ResetRequested{Criteria: criteria}))
}

// dispatch runs req, if any, and keeps the spinner going while it is pending
func (m *Model) dispatch(req *state.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	m.logger.Debug("dispatching search", "request_id", req.ID, "page", req.Page, "generation", req.Generation)
	cmd := m.cmdExecutor.ExecuteSearch(req, m.state.Location)
	if !m.spinning {
		m.spinning = true
		return tea.Batch(cmd, m.spinner.Tick)
	}
	return cmd
}

func (m *Model) handleSearchResult(msg commands.SearchResultMsg) tea.Cmd {
	results := m.state.Results
	before := results.StaleDropped

	if msg.Err != nil {
		results.Apply(state.PageFailed{Request: msg.Request, Err: msg.Err})
	} else {
		var page domain.SearchPage
		if msg.Page != nil {
			page = *msg.Page
		}
		results.Apply(state.PageLoaded{Request: msg.Request, Page: page})
	}
	stale := results.StaleDropped > before
	if stale {
		m.logger.Debug("dropped stale search result", "request_id", msg.Request.ID, "page", msg.Request.Page)
	}

	if m.bus != nil {
		if msg.Err != nil {
			m.bus.Publish(eventbus.SearchFailedEvent{RequestID: msg.Request.ID, Page: msg.Request.Page, Err: msg.Err})
		} else {
			ev := eventbus.SearchCompletedEvent{RequestID: msg.Request.ID, Page: msg.Request.Page, Stale: stale}
			if msg.Page != nil {
				ev.Farms = len(msg.Page.Farms)
				ev.TotalItems = msg.Page.Pagination.TotalItems
			}
			m.bus.Publish(ev)
		}
	}

	if stale || msg.Err != nil || msg.Page == nil {
		return nil
	}
	return m.cmdExecutor.ExecuteProbe(msg.Page.Farms)
}

// syncViewport recomputes list geometry and lets the scroll trigger look at
// the sentinel
func (m *Model) syncViewport() tea.Cmd {
	farms := m.state.Farms()
	// The sticky bar changes the header height, so settle it in two passes
	for i := 0; i < 2; i++ {
		m.state.ViewportHeight = views.ListCapacity(m.viewState())
		m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(farms))
		m.state.SelectedIndex, m.state.ViewportOffset = m.navigator.Clamp()
		m.state.StickyBar = m.navigator.HeaderScrolledAway()
	}
	if len(farms) == 0 {
		m.state.ShowPreview = false
	}
	return m.observeSentinel()
}

func (m *Model) observeSentinel() tea.Cmd {
	results := m.state.Results
	_, inFlight := results.InFlight()
	deps := logic.TriggerDeps{
		HasNextPage: results.HasNextPage,
		InFlight:    inFlight,
		Errored:     results.Phase == state.PhaseError,
		CurrentPage: results.CurrentPage,
	}
	visible := len(results.Farms) > 0 && m.navigator.SentinelVisible()
	if _, fire := m.trigger.Observe(visible, deps); !fire {
		return nil
	}
	return m.dispatch(results.Apply(state.LoadMoreRequested{}))
}

func (m *Model) loading() bool {
	_, inFlight := m.state.Results.InFlight()
	return inFlight
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.NavigateAction:
		m.navigator.UpdateState(m.state.SelectedIndex, m.state.ViewportOffset, m.state.ViewportHeight, len(m.state.Farms()))
		var sel, off int
		switch a.Direction {
		case "up":
			sel, off = m.navigator.MoveBy(-1)
		case "down":
			sel, off = m.navigator.MoveBy(1)
		case "pageup":
			sel, off = m.navigator.PageUp()
		case "pagedown":
			sel, off = m.navigator.PageDown()
		case "home":
			sel, off = m.navigator.Top()
		case "end":
			sel, off = m.navigator.Bottom()
		default:
			return nil
		}
		m.state.SelectedIndex, m.state.ViewportOffset = sel, off

	case inputtypes.SubmitTextAction:
		return m.handleSubmit(a)

	case inputtypes.SearchAction:
		return m.search()

	case inputtypes.LoadMoreAction:
		return m.dispatch(m.state.Results.Apply(state.LoadMoreRequested{}))

	case inputtypes.RetryAction:
		return m.dispatch(m.state.Results.Apply(state.RetryRequested{}))

	case inputtypes.BackAction:
		if location, ok := m.router.Back(); ok {
			return m.navigate(location, false)
		}

	case inputtypes.ChangeModeAction:
		if a.Mode == inputtypes.ModeCategories {
			m.state.ShowPreview = false
		}

	case inputtypes.ToggleCategoryAction:
		idx := a.Index
		if idx < 0 {
			idx = m.state.CategoryCursor
		}
		if idx >= 0 && idx < len(m.vocab) {
			m.state.ToggleDraftCategory(m.vocab[idx].ID)
		}

	case inputtypes.ToggleAllCategoriesAction:
		m.state.ToggleAllDraftCategories(m.vocab)

	case inputtypes.MoveCategoryCursorAction:
		cursor := m.state.CategoryCursor + a.Delta
		if cursor >= len(m.vocab) {
			cursor = len(m.vocab) - 1
		}
		if cursor < 0 {
			cursor = 0
		}
		m.state.CategoryCursor = cursor

	case inputtypes.TogglePreviewAction:
		m.state.ShowPreview = !m.state.ShowPreview

	case inputtypes.OpenDetailAction:
		farm, ok := m.state.SelectedFarm()
		if !ok {
			return nil
		}
		return m.showPager(farm.Name, views.FarmDetail(farm, m.viewModel.ImageLookup()))

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp

	case inputtypes.OpenHelpPagerAction:
		m.state.ShowHelp = false
		return m.showPager("help", views.HelpContent(m.inputHandler.Keys()))

	case inputtypes.CloseOverlayAction:
		m.state.ShowPreview = false
		m.state.ShowHelp = false

	case inputtypes.QuitAction:
		return m.quit()
	}
	return nil
}

// handleSubmit applies a text prompt to the draft and searches
func (m *Model) handleSubmit(a inputtypes.SubmitTextAction) tea.Cmd {
	text := strings.TrimSpace(a.Text)
	switch a.Mode {
	case inputtypes.ModeSearch:
		m.state.Draft.Query = text
		return m.search()

	case inputtypes.ModeDistance:
		if text == "" {
			m.state.Draft.Distance = domain.DefaultDistance
			return m.search()
		}
		distance, err := strconv.Atoi(text)
		if err != nil || distance < 1 {
			return m.setStatus(fmt.Sprintf("Distance must be a positive number of km, got %q", text))
		}
		m.state.Draft.Distance = distance
		return m.search()

	case inputtypes.ModeLocation:
		if text == "" {
			return nil
		}
		return m.navigate(text, true)
	}
	return nil
}

// search encodes the draft into a location and navigates to it
func (m *Model) search() tea.Cmd {
	return m.navigate(m.codec.Location(m.state.Draft), true)
}

func (m *Model) setStatus(message string) tea.Cmd {
	m.state.StatusMessage = message
	return tea.Tick(m.statusTimeout, func(time.Time) tea.Msg {
		return handlers.ClearStatusMsg{}
	})
}

// showPager opens content in the ov pager, or in a popup when there is no
// program to hand the terminal over from
func (m *Model) showPager(title, content string) tea.Cmd {
	if m.program == nil {
		m.detailContent = content
		return nil
	}
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		// Send pause message to stop rendering
		program.Send(pauseRenderingMsg{})
		err := pager.Show(title, content)
		program.Send(resumeRenderingMsg{})
		return pagerMsg{title: title, fallback: content, err: err}
	}
}

func (m *Model) quit() tea.Cmd {
	m.trigger.Close()
	m.logger.Info("quitting", "location", m.state.Location)
	return tea.Quit
}

// viewState assembles everything the renderer needs
func (m *Model) viewState() views.ViewState {
	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetSpinner(m.spinner.View())
	m.viewModel.SetDetail(m.detailContent)
	m.viewModel.SetInput(m.inputHandler.CurrentMode(), m.inputHandler.Prompt(), m.inputHandler.TextInput())
	return m.viewModel.BuildViewState()
}

// View renders the UI
func (m *Model) View() string {
	if m.inPagerMode {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	return m.renderer.Render(m.viewState())
}
