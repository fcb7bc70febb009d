package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"farmdir/internal/domain"
	"farmdir/internal/ui/input/types"
	"farmdir/internal/ui/state"
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Location   string
	Vocabulary domain.Vocabulary
	Draft      domain.Criteria
	Active     domain.Criteria // criteria of the displayed results

	Farms       []domain.Farm
	Pagination  domain.Pagination
	Phase       state.Phase
	HasNextPage bool
	LastError   string

	SelectedIndex  int
	ViewportOffset int
	ViewportHeight int // in rows of the farm list
	StickyBar      bool

	ShowPreview   bool
	ShowHelp      bool
	DetailContent string // shown in a popup when the pager is unavailable
	StatusMessage string

	InputMode      types.Mode
	InputPrompt    string
	TextInput      string
	CategoryCursor int

	Images    ImageLookup
	HelpModel help.Model
	Keys      types.KeyMap
	Spinner   string
}

// Renderer handles all view rendering
type Renderer struct {
	styles      *Styles
	cardRender  *CardRenderer
	catRender   *CategoryRenderer
	popupRender *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:      styles,
		cardRender:  NewCardRenderer(styles),
		catRender:   NewCategoryRenderer(styles),
		popupRender: NewPopupRenderer(styles),
	}
}

// Styles returns the renderer's styles
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Layout constants
const (
	mainPaddingLines = 2 // Main style Padding(1, 2)
	mainPaddingCols  = 4
	titleLines       = 1
	footerLines      = 2 // status + key help
)

// compactHeader reports whether the sticky bar replaces the search form
func compactHeader(s ViewState) bool {
	return s.StickyBar && s.InputMode == types.ModeNormal
}

// HeaderHeight returns the number of lines above the farm list
func HeaderHeight(s ViewState) int {
	if compactHeader(s) {
		return 1
	}
	h := 2 // form line + blank
	switch s.InputMode {
	case types.ModeSearch, types.ModeDistance, types.ModeLocation:
		h++
	case types.ModeCategories:
		h += PanelHeight(s.Vocabulary) + 1
	}
	return h
}

// ListCapacity returns how many rows of the farm list fit on screen
func ListCapacity(s ViewState) int {
	lines := s.Height - mainPaddingLines - titleLines - footerLines - HeaderHeight(s)
	rows := lines / CardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

func contentWidth(s ViewState) int {
	w := s.Width - mainPaddingCols
	if w <= 0 {
		w = 76
	}
	return w
}

// Render produces the complete view
func (r *Renderer) Render(s ViewState) string {
	width := contentWidth(s)
	var lines []string

	lines = append(lines, r.renderTitle(s, width))
	lines = append(lines, r.renderHeader(s, width)...)
	lines = append(lines, r.renderList(s, width)...)

	// Push status and help to the bottom
	available := s.Height - mainPaddingLines
	if available <= 0 {
		available = 22
	}
	if pad := available - len(lines) - footerLines; pad > 0 {
		lines = append(lines, make([]string, pad)...)
	}
	lines = append(lines, r.renderStatus(s, width), r.renderKeyHelp(s, width))

	mainStyle := r.styles.Main
	if s.Height > 0 {
		mainStyle = mainStyle.MaxHeight(s.Height)
	}
	finalContent := mainStyle.Render(strings.Join(lines, "\n"))

	// Overlay popups on top of main content
	switch {
	case s.DetailContent != "":
		return r.popupRender.RenderPopupOverlay(finalContent, s.DetailContent, s.Height, s.Width, r.styles.InfoBox)
	case s.ShowHelp:
		return r.popupRender.RenderPopupOverlay(finalContent, HelpContent(s.Keys), s.Height, s.Width, r.styles.InfoBox)
	case s.ShowPreview:
		farm, ok := selectedFarm(s)
		if !ok {
			return finalContent
		}
		anchorY := 1 + titleLines + HeaderHeight(s) + (s.SelectedIndex-s.ViewportOffset)*CardHeight
		return r.popupRender.RenderAnchoredPopup(finalContent, r.RenderPreview(farm, s.Images), anchorY, s.Height, s.Width, r.styles.PreviewBox)
	}
	return finalContent
}

func selectedFarm(s ViewState) (domain.Farm, bool) {
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Farms) {
		return domain.Farm{}, false
	}
	return s.Farms[s.SelectedIndex], true
}

func (r *Renderer) renderTitle(s ViewState, width int) string {
	logo := r.styles.Title.Render("farmdir")

	right := r.styles.Dim.Render(s.Location)
	switch s.Phase {
	case state.PhaseLoading:
		right = r.styles.StatusLoading.Render(s.Spinner+" Searching") + "  " + right
	case state.PhaseLoadingMore:
		right = r.styles.StatusLoading.Render(s.Spinner+" Loading more") + "  " + right
	}

	padding := width - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		return ansi.Truncate(logo+"  "+right, width, "…")
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderHeader(s ViewState, width int) []string {
	if compactHeader(s) {
		bar := fmt.Sprintf("⌕ %s · %d km · %s", queryText(s.Active.Query), s.Active.Distance, r.catRender.Summary(s.Vocabulary, s.Active.Categories))
		return []string{r.styles.StickyBar.Width(width).Render(ansi.Truncate(bar, width, "…"))}
	}

	lines := []string{ansi.Truncate(r.renderForm(s), width, "…")}
	switch s.InputMode {
	case types.ModeSearch, types.ModeDistance, types.ModeLocation:
		lines = append(lines, r.styles.Label.Render(s.InputPrompt)+s.TextInput)
	case types.ModeCategories:
		lines = append(lines, r.catRender.RenderPanel(s.Vocabulary, s.Draft.Categories, s.CategoryCursor)...)
		lines = append(lines, r.styles.Help.Render(s.HelpModel.ShortHelpView(s.Keys.CategoryHelp())))
	}
	return append(lines, "")
}

func queryText(q string) string {
	if q == "" {
		return "any"
	}
	return q
}

// renderForm renders the search form. Values edited since the last search
// are highlighted.
func (r *Renderer) renderForm(s ViewState) string {
	value := func(text string, edited bool) string {
		if edited {
			return r.styles.Draft.Render(text)
		}
		return r.styles.Value.Render(text)
	}

	parts := []string{
		r.styles.Label.Render("Search ") + value(queryText(s.Draft.Query), s.Draft.Query != s.Active.Query),
		r.styles.Label.Render("Distance ") + value(fmt.Sprintf("%d km", s.Draft.Distance), s.Draft.Distance != s.Active.Distance),
		r.styles.Label.Render("Categories ") + value(r.catRender.Summary(s.Vocabulary, s.Draft.Categories), !s.Draft.Categories.Equal(s.Active.Categories)),
	}
	form := strings.Join(parts, "   ")
	if !s.Draft.Equal(s.Active) {
		form += "  " + r.styles.Dim.Render("(s to search)")
	}
	return form
}

func (r *Renderer) renderList(s ViewState, width int) []string {
	if len(s.Farms) == 0 {
		return []string{r.renderEmpty(s, width)}
	}

	var lines []string
	end := s.ViewportOffset + s.ViewportHeight
	if end > len(s.Farms)+1 {
		end = len(s.Farms) + 1
	}
	for i := s.ViewportOffset; i < end; i++ {
		if i == len(s.Farms) {
			lines = append(lines, r.RenderSentinel(s, width))
			break
		}
		lines = append(lines, r.cardRender.RenderCard(s.Farms[i], i == s.SelectedIndex, s.Images, width)...)
	}
	return lines
}

func (r *Renderer) renderEmpty(s ViewState, width int) string {
	switch s.Phase {
	case state.PhaseLoading:
		return r.styles.StatusLoading.Render(s.Spinner + " Searching farms...")
	case state.PhaseError:
		return r.renderError(s, width)
	case state.PhaseLoaded:
		return r.styles.Dim.Render("No farms match your search.")
	default:
		return r.styles.Dim.Render("Press s to search.")
	}
}

func (r *Renderer) renderError(s ViewState, width int) string {
	msg := lipgloss.NewStyle().Width(width).Render(s.LastError)
	return r.styles.StatusError.Render("Search failed:") + "\n" +
		r.styles.StatusError.Render(msg) + "\n" +
		r.styles.Dim.Render("Press r to retry.")
}

// RenderSentinel renders the row after the last card: the loading
// indicator, the load-more error, the end of results or a load hint
func (r *Renderer) RenderSentinel(s ViewState, width int) string {
	var line string
	switch {
	case s.Phase == state.PhaseLoadingMore:
		line = r.styles.StatusLoading.Render(s.Spinner + " Loading more farms...")
	case s.Phase == state.PhaseError:
		line = r.styles.StatusError.Render("Could not load more: "+s.LastError) + " " + r.styles.Dim.Render("(r to retry)")
	case s.HasNextPage:
		line = r.styles.Dim.Render(fmt.Sprintf("↓ showing %d of %d farms (m to load more)", len(s.Farms), s.Pagination.TotalItems))
	default:
		line = r.styles.Dim.Render(fmt.Sprintf("End of results · %d farms", len(s.Farms)))
	}
	return ansi.Truncate(line, width, "…")
}

func (r *Renderer) renderStatus(s ViewState, width int) string {
	if s.StatusMessage == "" {
		return ""
	}
	return ansi.Truncate(r.styles.Status.Render(s.StatusMessage), width, "…")
}

func (r *Renderer) renderKeyHelp(s ViewState, width int) string {
	if s.ShowHelp || s.DetailContent != "" {
		return ""
	}
	hm := s.HelpModel
	hm.Width = width
	return hm.ShortHelpView(s.Keys.ShortHelp())
}

// RenderPreview renders the hover card content for a farm
func (r *Renderer) RenderPreview(farm domain.Farm, lookup ImageLookup) string {
	var b strings.Builder
	b.WriteString(r.styles.FarmName.Render(farm.Name))
	b.WriteString("\n")
	if addr := farm.Address.String(); addr != "" {
		b.WriteString(r.styles.Address.Render(addr))
		b.WriteString("\n")
	}
	if farm.OpeningHours != "" {
		b.WriteString(r.styles.Label.Render("Open ") + farm.OpeningHours)
		b.WriteString("\n")
	}
	b.WriteString(r.cardRender.RenderImage(farm.Images, lookup))
	b.WriteString("\n")
	if farm.Description != "" {
		b.WriteString("\n")
		b.WriteString(farm.Description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(r.cardRender.RenderProduce(farm, lookup))
	return b.String()
}
