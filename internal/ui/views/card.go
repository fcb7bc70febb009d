package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"farmdir/internal/domain"
	"farmdir/internal/images"
)

// CardHeight is the number of terminal lines one farm card occupies,
// separator included
const CardHeight = 4

// NoImage is shown in place of a missing or broken farm image
const NoImage = "[No Image]"

// ImageLookup resolves image references and reports probe outcomes
type ImageLookup struct {
	Resolver images.Resolver
	Status   map[string]bool // url -> loaded; absent until probed
}

// URL resolves the first usable reference of refs
func (l ImageLookup) URL(refs []string) string {
	return l.Resolver.First(refs)
}

// Usable reports whether url is non-empty and did not fail to load
func (l ImageLookup) Usable(url string) bool {
	if url == "" {
		return false
	}
	ok, probed := l.Status[url]
	return !probed || ok
}

// CardRenderer handles rendering of farm cards
type CardRenderer struct {
	styles *Styles
}

// NewCardRenderer creates a new card renderer
func NewCardRenderer(styles *Styles) *CardRenderer {
	return &CardRenderer{styles: styles}
}

// RenderCard renders a farm as CardHeight lines
func (r *CardRenderer) RenderCard(farm domain.Farm, isSelected bool, lookup ImageLookup, width int) []string {
	if width <= 0 {
		width = 76
	}

	marker := "  "
	name := r.styles.FarmName.Render(farm.Name)
	if isSelected {
		marker = r.styles.Highlight.Render("▸ ")
		name = r.styles.FarmName.Inherit(r.styles.SelectionBg).Render(farm.Name)
	}
	title := marker + name
	if addr := farm.Address.String(); addr != "" {
		title += "  " + r.styles.Address.Render(addr)
	}

	lines := []string{
		title,
		"  " + r.RenderImage(farm.Images, lookup),
		"  " + r.RenderProduce(farm, lookup),
		"",
	}
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "…")
	}
	return lines
}

// RenderImage renders the farm image line: the resolved URL while it is
// usable, the placeholder otherwise
func (r *CardRenderer) RenderImage(refs []string, lookup ImageLookup) string {
	url := lookup.URL(refs)
	if !lookup.Usable(url) {
		return r.styles.Placeholder.Render(NoImage)
	}
	return r.styles.ImageRef.Render("▣ " + url)
}

// RenderProduce renders the produce preview. Produce whose image is missing
// or broken falls back to a name placeholder.
func (r *CardRenderer) RenderProduce(farm domain.Farm, lookup ImageLookup) string {
	preview := farm.ProducePreview()
	if len(preview) == 0 {
		return r.styles.Dim.Render("no produce listed")
	}

	chips := make([]string, 0, len(preview)+1)
	for _, p := range preview {
		chips = append(chips, r.renderProduceChip(p, lookup))
	}
	if extra := len(farm.Produce) - len(preview); extra > 0 {
		chips = append(chips, r.styles.Dim.Render(fmt.Sprintf("+%d more", extra)))
	}
	return strings.Join(chips, " ")
}

func (r *CardRenderer) renderProduceChip(p domain.Produce, lookup ImageLookup) string {
	if lookup.Usable(lookup.URL(p.Images)) {
		return r.styles.ProduceChip.Render("▪ " + p.Name)
	}
	return r.styles.Placeholder.Render("[" + p.Name + "]")
}
