// Package ui provides shared TUI styling, layout helpers, and theme definitions.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PlaceCentre centres content both horizontally and vertically within the given dimensions.
func PlaceCentre(width, height int, content string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// Truncate cuts s to maxWidth display cells, appending "…" when cut.
// Colour escapes are preserved and not counted.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s with spaces to the given width.
func PadRight(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// ScrollWindow returns the first visible line for a list of total lines
// shown in height rows, keeping cursor inside the window. offset is the
// previous first line, so the window only moves when it must.
func ScrollWindow(cursor, offset, height, total int) int {
	if height <= 0 || total <= height {
		return 0
	}
	if cursor < offset {
		offset = cursor
	}
	if cursor >= offset+height {
		offset = cursor - height + 1
	}
	return max(0, min(offset, total-height))
}

// CentreWindow returns the first visible line that puts cursor in the
// middle of a height-row window.
func CentreWindow(cursor, height, total int) int {
	if height <= 0 || total <= height {
		return 0
	}
	return max(0, min(cursor-height/2, total-height))
}
