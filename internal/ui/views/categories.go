package views

import (
	"strings"

	"farmdir/internal/domain"
)

// CategoryRenderer handles rendering of the category filter
type CategoryRenderer struct {
	styles *Styles
}

// NewCategoryRenderer creates a new category renderer
func NewCategoryRenderer(styles *Styles) *CategoryRenderer {
	return &CategoryRenderer{styles: styles}
}

// Summary describes a selection in one line: "All", "None" or the labels
func (r *CategoryRenderer) Summary(vocab domain.Vocabulary, set domain.CategorySet) string {
	selected := vocab.Selected(set)
	switch {
	case len(selected) == 0:
		return "None"
	case len(selected) == len(vocab):
		return "All"
	}
	labels := make([]string, len(selected))
	for i, id := range selected {
		labels[i] = vocab.Label(id)
	}
	return strings.Join(labels, ", ")
}

// RenderPanel renders one checkbox row per category, two columns wide
func (r *CategoryRenderer) RenderPanel(vocab domain.Vocabulary, set domain.CategorySet, cursor int) []string {
	const colWidth = 22
	rows := (len(vocab) + 1) / 2

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		var b strings.Builder
		for col := 0; col < 2; col++ {
			i := row + col*rows
			if i >= len(vocab) {
				continue
			}
			cell := r.renderCell(vocab[i], set[vocab[i].ID], i == cursor)
			b.WriteString(cell)
			if col == 0 {
				if pad := colWidth - len([]rune(r.plainCell(vocab[i], set[vocab[i].ID]))); pad > 0 {
					b.WriteString(strings.Repeat(" ", pad))
				}
			}
		}
		lines = append(lines, b.String())
	}
	return lines
}

// PanelHeight is the number of lines RenderPanel produces
func PanelHeight(vocab domain.Vocabulary) int {
	return (len(vocab) + 1) / 2
}

func (r *CategoryRenderer) plainCell(c domain.CategoryInfo, on bool) string {
	box := "[ ]"
	if on {
		box = "[x]"
	}
	return "  " + box + " " + c.Label
}

func (r *CategoryRenderer) renderCell(c domain.CategoryInfo, on, isCursor bool) string {
	style := r.styles.CategoryOff
	if on {
		style = r.styles.CategoryOn
	}
	if isCursor {
		style = style.Inherit(r.styles.SelectionBg)
		return r.styles.Highlight.Render("▸ ") + style.Render(r.plainCell(c, on)[2:])
	}
	return style.Render(r.plainCell(c, on))
}
