package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	Dim           lipgloss.Style
	Status        lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
	Highlight     lipgloss.Style
	SelectionBg   lipgloss.Style
	StatusError   lipgloss.Style
	StatusLoading lipgloss.Style
	StatusSuccess lipgloss.Style

	// Search form
	Label     lipgloss.Style
	Value     lipgloss.Style
	Draft     lipgloss.Style // criteria edited but not yet searched
	StickyBar lipgloss.Style

	// Farm cards
	FarmName    lipgloss.Style
	Address     lipgloss.Style
	ImageRef    lipgloss.Style
	Placeholder lipgloss.Style
	ProduceChip lipgloss.Style

	// Categories panel
	CategoryOn  lipgloss.Style
	CategoryOff lipgloss.Style

	// Popups
	PreviewBox lipgloss.Style
	InfoBox    lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim: lipgloss.NewStyle().Faint(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().
			Padding(1, 2).
			MaxHeight(100), // Will be dynamically adjusted
		Highlight:     lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		SelectionBg:   lipgloss.NewStyle().Background(lipgloss.Color("238")),
		StatusError:   lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		StatusLoading: lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		StatusSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green

		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Value: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Draft: lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		StickyBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")),

		FarmName:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		Address:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ImageRef:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		Placeholder: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		ProduceChip: lipgloss.NewStyle().Foreground(lipgloss.Color("186")),

		CategoryOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
		CategoryOff: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		PreviewBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(56).
			BorderForeground(lipgloss.Color("78")),
		InfoBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(1).
			Width(60).
			BorderForeground(lipgloss.Color("241")),
	}
}
