package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of main content
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := (width - modalW) / 2
	y := (height - modalH) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	// Base greyscale layer, but keep the target line colored
	targetName := extractTitlePlain(popupContent)
	grayBase := desaturateKeeping(mainContent, targetName)

	return spliceOverlay(grayBase, strings.Split(styledPopup, "\n"), x, y, width)
}

// RenderAnchoredPopup renders a popup next to a list row, like a hover card.
// The popup opens below the anchor row when it fits and above it otherwise.
func (pr *PopupRenderer) RenderAnchoredPopup(mainContent, popupContent string, anchorY, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)
	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)

	y := anchorY + 1
	if y+modalH > height {
		y = anchorY - modalH
	}
	if y < 0 {
		y = 0
	}
	x := width - modalW - 2
	if x < 0 {
		x = 0
	}
	return spliceOverlay(mainContent, strings.Split(styledPopup, "\n"), x, y, width)
}

// spliceOverlay replaces a rectangular region of view with the overlay
// lines, keeping the escape sequences on both sides of the region intact
func spliceOverlay(view string, overlayLines []string, anchorX, anchorY, width int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for len(viewLines) < anchorY+len(overlayLines) {
		viewLines = append(viewLines, "")
	}
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for i, overlayLine := range overlayLines {
		row := anchorY + i
		if row < 0 {
			continue
		}
		viewLine := viewLines[row]
		lineWidth := ansi.StringWidth(viewLine)

		var b strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			b.WriteString(prefix)
			if pad := anchorX - ansi.StringWidth(prefix); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
		}
		b.WriteString("\x1b[0m")
		b.WriteString(overlayLine)
		b.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < lineWidth {
			b.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		line := b.String()
		if width > 0 {
			line = ansi.Truncate(line, width, "")
		}
		viewLines[row] = line
	}
	return strings.Join(viewLines, "\n")
}

// desaturateANSI strips ANSI color/style codes and recolors text dim gray
func desaturateANSI(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(ansi.Strip(s))
}

// extractTitlePlain returns the first line of popup content without ANSI
func extractTitlePlain(popup string) string {
	first, _, _ := strings.Cut(popup, "\n")
	return strings.TrimSpace(ansi.Strip(first))
}

// desaturateKeeping turns everything greyscale except lines containing keepSubstr (plain text match)
func desaturateKeeping(s, keepSubstr string) string {
	if keepSubstr == "" {
		return desaturateANSI(s)
	}
	lines := strings.Split(s, "\n")
	out := make([]string, len(lines))
	for i, line := range lines {
		plain := ansi.Strip(line)
		if strings.Contains(plain, keepSubstr) {
			out[i] = line
		} else {
			out[i] = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(plain)
		}
	}
	return strings.Join(out, "\n")
}
