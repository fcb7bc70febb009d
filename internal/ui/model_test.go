package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"farmdir/internal/domain"
	"farmdir/internal/eventbus"
	"farmdir/internal/logging"
	"farmdir/internal/search"
	"farmdir/internal/ui/commands"
	"farmdir/internal/ui/input/types"
	"farmdir/internal/ui/state"
)

type searchCall struct {
	ID       string
	Criteria domain.Criteria
	Page     int
}

// fakeSearcher serves a fixed number of farms per query
type fakeSearcher struct {
	mu      sync.Mutex
	total   int
	perPage int
	fail    error
	calls   []searchCall
}

func (f *fakeSearcher) Search(ctx context.Context, criteria domain.Criteria, page int) (*domain.SearchPage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id, _ := search.RequestIDFromContext(ctx)
	f.calls = append(f.calls, searchCall{ID: id, Criteria: criteria.Clone(), Page: page})
	if f.fail != nil {
		return nil, f.fail
	}

	pages := (f.total + f.perPage - 1) / f.perPage
	var farms []domain.Farm
	for i := (page - 1) * f.perPage; i < page*f.perPage && i < f.total; i++ {
		farms = append(farms, domain.Farm{
			FarmID: fmt.Sprintf("%s-%d", criteria.Query, i),
			Name:   fmt.Sprintf("Farm %d", i),
			Images: []string{fmt.Sprintf("farms/%d.jpg", i)},
		})
	}
	return &domain.SearchPage{
		Farms: farms,
		Pagination: domain.Pagination{
			CurrentPage:  page,
			TotalPages:   pages,
			TotalItems:   f.total,
			ItemsPerPage: f.perPage,
		},
	}, nil
}

func (f *fakeSearcher) Calls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.calls...)
}

// fakeProber reports every "/0.jpg" as broken through publish, the way
// the real prober publishes on the bus and main forwards into the program
type fakeProber struct {
	mu      sync.Mutex
	urls    []string
	publish func(eventbus.DomainEvent)
}

func (p *fakeProber) Probe(ctx context.Context, urls []string) map[string]bool {
	p.mu.Lock()
	p.urls = append(p.urls, urls...)
	publish := p.publish
	p.mu.Unlock()

	results := make(map[string]bool)
	for _, u := range urls {
		results[u] = !strings.HasSuffix(u, "/0.jpg")
		if publish != nil {
			publish(eventbus.ImageProbedEvent{URL: u, OK: results[u]})
		}
	}
	return results
}

// harness drives a Model the way the Bubble Tea runtime would, except
// that search results are held back until deliver is called
type harness struct {
	t        *testing.T
	m        *Model
	searcher *fakeSearcher
	prober   *fakeProber
	pending  []commands.SearchResultMsg
	msgs     []tea.Msg
}

func newHarness(t *testing.T, total int, opts ...func(*Options)) *harness {
	h := &harness{
		t:        t,
		searcher: &fakeSearcher{total: total, perPage: 20},
		prober:   &fakeProber{},
	}
	o := Options{
		Searcher:  h.searcher,
		Prober:    h.prober,
		AssetsURL: "http://assets",
		Logger:    logging.Discard(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	h.m = NewModel(o)
	h.prober.publish = func(e eventbus.DomainEvent) { h.send(EventMsg{Event: e}) }
	h.m.statusTimeout = time.Millisecond
	// 20 lines leave room for three farm cards
	h.send(tea.WindowSizeMsg{Width: 100, Height: 20})
	return h
}

// start runs Init the way the program does
func (h *harness) start() {
	h.absorb(h.m.Init())
}

func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func (h *harness) absorb(cmd tea.Cmd) {
	for _, msg := range collect(cmd) {
		switch msg := msg.(type) {
		case commands.SearchResultMsg:
			h.pending = append(h.pending, msg)
		case locationMsg:
			h.send(msg)
		default:
			h.msgs = append(h.msgs, msg)
		}
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.absorb(cmd)
}

func (h *harness) deliver() {
	pending := h.pending
	h.pending = nil
	for _, msg := range pending {
		h.send(msg)
	}
}

func (h *harness) keys(ks ...string) {
	for _, k := range ks {
		switch k {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "ctrl+u":
			h.send(tea.KeyMsg{Type: tea.KeyCtrlU})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
		}
	}
}

func (h *harness) results() *state.Results {
	return h.m.State().Results
}

func (h *harness) view() string {
	return ansi.Strip(h.m.View())
}

func TestInitialLocationLoadsFirstPage(t *testing.T) {
	h := newHarness(t, 45, func(o *Options) { o.Location = "/farms?q=kale&distance=25" })
	h.start()

	calls := h.searcher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 1, calls[0].Page)
	assert.Equal(t, "kale", calls[0].Criteria.Query)
	assert.Equal(t, 25, calls[0].Criteria.Distance)
	assert.NotEmpty(t, calls[0].ID, "request tag travels as the request id")
	assert.Equal(t, "/farms?distance=25&q=kale", h.m.Location())
	assert.Equal(t, "kale", h.m.State().Draft.Query)
	assert.Equal(t, state.PhaseLoading, h.results().Phase)
	assert.Contains(t, h.view(), "Searching farms")

	h.deliver()
	assert.Len(t, h.results().Farms, 20)
	assert.True(t, h.results().HasNextPage)
	assert.Contains(t, h.view(), "Farm 0")
}

func TestScrollingToTheEndLoadsEveryPage(t *testing.T) {
	h := newHarness(t, 45)
	h.start()
	h.deliver()
	require.Len(t, h.searcher.Calls(), 1, "the sentinel starts out of view")

	h.keys("G")
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].Page)
	assert.Equal(t, state.PhaseLoadingMore, h.results().Phase)

	// nothing else is requested while page 2 is in flight
	h.keys("m", "G")
	assert.Len(t, h.searcher.Calls(), 2)

	h.deliver()
	assert.Len(t, h.results().Farms, 40)
	assert.Equal(t, 2, h.results().CurrentPage)

	h.keys("G")
	h.deliver()
	assert.Len(t, h.results().Farms, 45)
	assert.False(t, h.results().HasNextPage)

	h.keys("G", "m")
	assert.Len(t, h.searcher.Calls(), 3)
	assert.Contains(t, h.view(), "End of results · 45 farms")
}

func TestTallScreenFillsItself(t *testing.T) {
	h := newHarness(t, 45)
	h.send(tea.WindowSizeMsg{Width: 100, Height: 120})
	h.start()
	h.deliver()

	calls := h.searcher.Calls()
	require.Len(t, calls, 2, "the sentinel is visible right after the first page")
	assert.Equal(t, 2, calls[1].Page)
}

func TestManualLoadMore(t *testing.T) {
	h := newHarness(t, 45)
	h.start()
	h.deliver()

	h.keys("m")
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 2, calls[1].Page)
}

func TestCategoryTogglesOnlyEditTheDraft(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()

	h.keys("c", "x")
	s := h.m.State()
	assert.False(t, s.Draft.Categories[domain.CategoryFruits])
	assert.True(t, h.results().Criteria.Categories[domain.CategoryFruits], "active criteria untouched")
	assert.Len(t, h.searcher.Calls(), 1)

	h.keys("enter")
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.False(t, calls[1].Criteria.Categories[domain.CategoryFruits])
	assert.Contains(t, h.m.Location(), "categories=")
	assert.Equal(t, types.ModeNormal, h.m.inputHandler.CurrentMode())
}

func TestSelectAllOrNone(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()
	vocab := domain.DefaultVocabulary

	h.keys("c", "a")
	assert.Equal(t, 0, h.m.State().Draft.Categories.Count(), "all selected becomes none")

	h.keys("x", "a")
	assert.True(t, vocab.IsAll(h.m.State().Draft.Categories), "a partial selection becomes all")
	assert.Len(t, h.searcher.Calls(), 1)
}

func TestSearchNavigatesAndAlwaysReruns(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()

	h.keys("/", "kale", "enter")
	assert.Equal(t, "/farms?q=kale", h.m.Location())
	assert.Equal(t, 2, h.m.router.Len())
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "kale", calls[1].Criteria.Query)
	h.deliver()

	h.keys("s")
	calls = h.searcher.Calls()
	require.Len(t, calls, 3, "searching the current location runs again")
	assert.NotEqual(t, calls[1].ID, calls[2].ID)
	assert.Equal(t, 2, h.m.router.Len())
}

func TestRepeatedSearchLeavesSameResults(t *testing.T) {
	h := newHarness(t, 45)
	h.start()
	h.deliver()

	h.keys("/", "kale", "enter")
	h.deliver()
	require.Len(t, h.results().Farms, 20)
	firstFarms := append([]domain.Farm(nil), h.results().Farms...)
	hasNext, current := h.results().HasNextPage, h.results().CurrentPage

	h.keys("s")
	require.Len(t, h.searcher.Calls(), 3)
	h.deliver()

	assert.Equal(t, firstFarms, h.results().Farms, "results are replaced, not appended")
	assert.Equal(t, hasNext, h.results().HasNextPage)
	assert.Equal(t, current, h.results().CurrentPage)
	assert.Equal(t, state.PhaseLoaded, h.results().Phase)
	assert.Equal(t, "/farms?q=kale", h.m.Location())
}

func TestLocationIsSourceOfCriteria(t *testing.T) {
	for _, location := range []string{"/farms?categories=", "/farms?categories=bogus"} {
		t.Run(location, func(t *testing.T) {
			h := newHarness(t, 5, func(o *Options) { o.Location = location })
			h.start()

			vocab := domain.DefaultVocabulary
			assert.Equal(t, "/farms", h.m.Location())
			assert.True(t, vocab.IsAll(h.m.State().Draft.Categories))
			assert.True(t, vocab.IsAll(h.results().Criteria.Categories))
			calls := h.searcher.Calls()
			require.Len(t, calls, 1)
			assert.True(t, vocab.IsAll(calls[0].Criteria.Categories))
		})
	}
}

func TestBackReturnsToPreviousLocation(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()
	h.keys("/", "kale", "enter")
	h.deliver()

	h.keys("b")
	assert.Equal(t, "/farms", h.m.Location())
	assert.Equal(t, "", h.m.State().Draft.Query)
	calls := h.searcher.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "", calls[2].Criteria.Query)

	h.keys("b")
	assert.Len(t, h.searcher.Calls(), 3, "no history left")
}

func TestStaleResultsAreDiscarded(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	// the first search is still pending when the query changes
	h.keys("/", "kale", "enter")
	require.Len(t, h.pending, 2)

	first := h.pending[0]
	h.pending = h.pending[1:]
	h.send(first)
	assert.Equal(t, 1, h.results().StaleDropped)
	assert.Empty(t, h.results().Farms)
	assert.Equal(t, state.PhaseLoading, h.results().Phase)

	h.deliver()
	require.Len(t, h.results().Farms, 5)
	assert.Equal(t, "kale-0", h.results().Farms[0].FarmID)
}

func TestResetFailureShowsErrorAndRetries(t *testing.T) {
	h := newHarness(t, 5)
	h.searcher.fail = errors.New("502 Bad Gateway")
	h.start()
	h.deliver()

	assert.Equal(t, state.PhaseError, h.results().Phase)
	out := h.view()
	assert.Contains(t, out, "502 Bad Gateway")
	assert.Contains(t, out, "Press r to retry")

	h.searcher.fail = nil
	h.keys("r")
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 1, calls[1].Page)
	assert.NotEqual(t, calls[0].ID, calls[1].ID)

	h.deliver()
	assert.Equal(t, state.PhaseLoaded, h.results().Phase)
	assert.Len(t, h.results().Farms, 5)
}

func TestLoadMoreFailureKeepsFarms(t *testing.T) {
	h := newHarness(t, 45)
	h.start()
	h.deliver()

	h.searcher.fail = errors.New("connection reset")
	h.keys("m")
	h.deliver()
	assert.Equal(t, state.PhaseError, h.results().Phase)
	assert.Len(t, h.results().Farms, 20)

	// the error halts auto-loading
	h.keys("G")
	assert.Len(t, h.searcher.Calls(), 2)
	assert.Contains(t, h.view(), "connection reset")

	h.searcher.fail = nil
	h.keys("r")
	calls := h.searcher.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, 2, calls[2].Page)
	h.deliver()
	assert.Len(t, h.results().Farms, 40)
}

func TestDistancePrompt(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()

	h.keys("d", "ctrl+u", "far", "enter")
	assert.Contains(t, h.m.State().StatusMessage, "positive number")
	assert.Len(t, h.searcher.Calls(), 1)

	h.keys("d", "ctrl+u", "25", "enter")
	assert.Equal(t, "/farms?distance=25", h.m.Location())
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 25, calls[1].Criteria.Distance)
}

func TestEscapeCancelsPromptWithoutSearching(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()

	h.keys("/", "kale", "esc")
	assert.Equal(t, "", h.m.State().Draft.Query)
	assert.Len(t, h.searcher.Calls(), 1)
}

func TestLocationPrompt(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()

	h.keys("o", "ctrl+u", "http://[::1", "enter")
	assert.NotEmpty(t, h.m.State().StatusMessage)
	assert.Equal(t, "/farms", h.m.Location())

	h.keys("o", "ctrl+u", "https://example.com/farms?q=eggs&categories=honey", "enter")
	assert.Equal(t, "/farms?categories=honey&q=eggs", h.m.Location())
	calls := h.searcher.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, 1, calls[1].Criteria.Categories.Count())
}

func TestStickyBarFollowsScroll(t *testing.T) {
	h := newHarness(t, 20)
	h.start()
	h.deliver()
	assert.False(t, h.m.State().StickyBar)

	h.keys("j", "j", "j")
	assert.True(t, h.m.State().StickyBar)
	assert.Contains(t, h.view(), "⌕")

	h.keys("g", "g")
	assert.False(t, h.m.State().StickyBar)
}

func TestPreviewAndDetail(t *testing.T) {
	h := newHarness(t, 5)
	h.start()
	h.deliver()

	h.keys("p")
	assert.True(t, h.m.State().ShowPreview)
	h.keys("esc")
	assert.False(t, h.m.State().ShowPreview)

	// without a program the detail falls back to a popup
	h.keys("j", "enter")
	assert.Contains(t, h.view(), "Produce (0)")
	h.keys("esc")
	assert.NotContains(t, h.view(), "Produce (0)")
}

func TestImagesAreProbedAfterLoad(t *testing.T) {
	h := newHarness(t, 2)
	h.start()
	h.deliver()

	assert.ElementsMatch(t, []string{"http://assets/farms/0.jpg", "http://assets/farms/1.jpg"}, h.prober.urls)
	s := h.m.State()
	assert.True(t, s.ImageBroken("http://assets/farms/0.jpg"))
	assert.False(t, s.ImageBroken("http://assets/farms/1.jpg"))

	h.send(EventMsg{Event: eventbus.ImageProbedEvent{URL: "http://assets/farms/1.jpg", OK: false}})
	assert.True(t, s.ImageBroken("http://assets/farms/1.jpg"))
}

func TestLocationChangesArePublished(t *testing.T) {
	bus := eventbus.New(logging.Discard())
	defer bus.Close()
	seen := make(chan string, 4)
	bus.Subscribe(eventbus.EventLocationChanged, func(e eventbus.DomainEvent) {
		seen <- e.(eventbus.LocationChangedEvent).Location
	})

	h := newHarness(t, 5, func(o *Options) { o.Bus = bus })
	h.start()

	select {
	case loc := <-seen:
		assert.Equal(t, "/farms", loc)
	case <-time.After(time.Second):
		t.Fatal("no location event")
	}
}

func TestQuitStopsTheTrigger(t *testing.T) {
	h := newHarness(t, 45)
	h.start()
	h.deliver()

	h.keys("q")
	assert.True(t, h.m.trigger.Closed())
	assert.Contains(t, h.msgs, tea.Msg(tea.QuitMsg{}))
	assert.Equal(t, "/farms", h.m.Location())
}
