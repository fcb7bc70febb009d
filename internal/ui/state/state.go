package state

import (
	"farmdir/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Location and criteria
	Location string          // current location, e.g. "/farms?q=kale"
	Draft    domain.Criteria // criteria being edited, applied on search
	Results  *Results        // accumulated search results

	// Selection state
	SelectedIndex  int // highlighted farm card
	CategoryCursor int // highlighted entry of the categories panel

	// Image state
	ImageStatus map[string]bool // url -> loaded; absent until probed

	// UI state
	ViewportOffset int  // first visible list row
	ViewportHeight int  // rows available to the farm list
	StickyBar      bool // header scrolled out of view
	ShowPreview    bool
	ShowHelp       bool
	StatusMessage  string
}

// NewAppState creates a new application state
func NewAppState(vocab domain.Vocabulary) *AppState {
	return &AppState{
		Draft:          domain.DefaultCriteria(vocab),
		Results:        NewResults(),
		ImageStatus:    make(map[string]bool),
		ViewportHeight: 20, // Default
	}
}

// Farms returns the accumulated farm list
func (s *AppState) Farms() []domain.Farm {
	return s.Results.Farms
}

// SelectedFarm returns the highlighted farm, if any
func (s *AppState) SelectedFarm() (domain.Farm, bool) {
	farms := s.Results.Farms
	if s.SelectedIndex < 0 || s.SelectedIndex >= len(farms) {
		return domain.Farm{}, false
	}
	return farms[s.SelectedIndex], true
}

// Draft operations

// ResetDraft copies criteria into the draft
func (s *AppState) ResetDraft(criteria domain.Criteria) {
	s.Draft = criteria.Clone()
}

// ToggleDraftCategory flips one category in the draft
func (s *AppState) ToggleDraftCategory(id domain.Category) {
	if s.Draft.Categories == nil {
		s.Draft.Categories = domain.CategorySet{}
	}
	s.Draft.Categories.Toggle(id)
}

// ToggleAllDraftCategories clears the selection when every category is
// selected and selects every category otherwise
func (s *AppState) ToggleAllDraftCategories(vocab domain.Vocabulary) {
	if vocab.IsAll(s.Draft.Categories) {
		s.Draft.Categories = vocab.None()
		return
	}
	s.Draft.Categories = vocab.All()
}

// Image operations

// MarkImage records the probe outcome for url
func (s *AppState) MarkImage(url string, ok bool) {
	s.ImageStatus[url] = ok
}

// ImageBroken reports whether url failed to load
func (s *AppState) ImageBroken(url string) bool {
	ok, probed := s.ImageStatus[url]
	return probed && !ok
}

// ClampSelection keeps SelectedIndex inside the farm list
func (s *AppState) ClampSelection() {
	n := len(s.Results.Farms)
	if s.SelectedIndex >= n {
		s.SelectedIndex = n - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}
