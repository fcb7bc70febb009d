package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"farmdir/internal/domain"
	"farmdir/internal/ui/input/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

// HelpContent renders the help information for keys
func HelpContent(keys types.KeyMap) string {
	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{keys.Up, keys.Down, keys.PageUp, keys.PageDown, keys.Home, keys.End}},
		{"Search", []key.Binding{keys.EditQuery, keys.EditDistance, keys.EditCategories, keys.EditLocation, keys.Search}},
		{"Categories panel", []key.Binding{keys.Toggle, keys.ToggleAll, keys.Apply, keys.Close}},
		{"Results", []key.Binding{keys.LoadMore, keys.Retry, keys.Back}},
		{"Other", []key.Binding{keys.Preview, keys.Detail, keys.Help, keys.HelpPager, keys.Quit}},
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("Farm Directory Help"))
	help.WriteString("\n")
	for _, section := range sections {
		help.WriteString("\n")
		help.WriteString(sectionStyle.Render(section.title))
		help.WriteString("\n")
		for _, b := range section.bindings {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(fmt.Sprintf("%-8s", h.Key)), descStyle.Render(h.Desc)))
		}
	}
	return strings.TrimRight(help.String(), "\n")
}

// FarmDetail renders the full description of a farm for the pager
func FarmDetail(farm domain.Farm, lookup ImageLookup) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(farm.Name))
	b.WriteString("\n")
	if addr := farm.Address.String(); addr != "" {
		b.WriteString(descStyle.Render(addr))
		b.WriteString("\n")
	}
	if farm.OpeningHours != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", keyStyle.Render("Opening hours:"), farm.OpeningHours))
	}
	if farm.Description != "" {
		b.WriteString("\n")
		b.WriteString(farm.Description)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Images"))
	b.WriteString("\n")
	b.WriteString(imageLines(farm.Images, lookup))

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Produce (%d)", len(farm.Produce))))
	b.WriteString("\n")
	if len(farm.Produce) == 0 {
		b.WriteString("  none listed\n")
	}
	for _, p := range farm.Produce {
		url := lookup.URL(p.Images)
		if lookup.Usable(url) {
			b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(p.Name), url))
		} else {
			b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(p.Name), "["+p.Name+"]"))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func imageLines(refs []string, lookup ImageLookup) string {
	var b strings.Builder
	shown := 0
	for _, ref := range refs {
		url := lookup.Resolver.Resolve(ref)
		if url == "" {
			continue
		}
		shown++
		if lookup.Usable(url) {
			b.WriteString("  " + url + "\n")
		} else {
			b.WriteString("  " + url + " " + NoImage + "\n")
		}
	}
	if shown == 0 {
		b.WriteString("  " + NoImage + "\n")
	}
	return b.String()
}
