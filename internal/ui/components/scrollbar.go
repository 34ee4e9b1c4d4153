package components

import (
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar returns a vertical scrollbar track of the given height.
// It shows a thumb proportional to the visible portion, positioned by
// offset, the first visible line.
//
// Returns an empty string if all content fits (no scrolling needed).
func RenderScrollbar(styles ui.Styles, height, totalLines, offset int) string {
	if totalLines <= height || height < 1 {
		return ""
	}

	t := styles.Theme

	thumbSize := max(1, min(height, height*height/totalLines))

	maxOffset := height - thumbSize
	thumbStart := 0
	if scrollable := totalLines - height; scrollable > 0 {
		thumbStart = offset * maxOffset / scrollable
	}
	thumbStart = max(0, min(thumbStart, maxOffset))

	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	var b strings.Builder
	b.Grow(height * 4)
	for i := range height {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render("█"))
		} else {
			b.WriteString(trackStyle.Render("░"))
		}
	}
	return b.String()
}
