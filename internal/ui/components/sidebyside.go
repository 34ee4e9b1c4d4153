package components

import (
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// RenderSideBySideDiff renders a unified diff as old and new columns.
// Colour escapes in diff are dropped and re-applied per column.
func RenderSideBySideDiff(styles ui.Styles, diff string, totalWidth int) string {
	if diff == "" {
		return styles.Muted.Render("No diff content")
	}

	panelW := max(20, (totalWidth-3)/2) // 3 for separator

	var leftLines, rightLines []string
	var removed, added []string

	// flush pairs queued removals with additions so edits line up.
	flush := func() {
		for i := range max(len(removed), len(added)) {
			l, r := "", ""
			if i < len(removed) {
				l = styles.DiffRemoved.Render(ui.Truncate(removed[i], panelW))
			}
			if i < len(added) {
				r = styles.DiffAdded.Render(ui.Truncate(added[i], panelW))
			}
			leftLines = append(leftLines, l)
			rightLines = append(rightLines, r)
		}
		removed, added = removed[:0], added[:0]
	}

	for _, raw := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		line := ansi.Strip(raw)
		switch {
		case strings.HasPrefix(line, "diff "), strings.HasPrefix(line, "index "),
			strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			flush()
			styled := styles.DiffHeader.Render(ui.Truncate(line, panelW))
			leftLines = append(leftLines, styled)
			rightLines = append(rightLines, styled)

		case strings.HasPrefix(line, "@@"):
			flush()
			styled := styles.DiffHunkHeader.Render(ui.Truncate(line, panelW))
			leftLines = append(leftLines, styled)
			rightLines = append(rightLines, styled)

		case strings.HasPrefix(line, "-"):
			removed = append(removed, line)

		case strings.HasPrefix(line, "+"):
			added = append(added, line)

		default:
			flush()
			styled := styles.DiffContext.Render(ui.Truncate(line, panelW))
			leftLines = append(leftLines, styled)
			rightLines = append(rightLines, styled)
		}
	}
	flush()

	sep := lipgloss.NewStyle().Foreground(styles.Theme.Border).Render(" │ ")

	var b strings.Builder
	for i := range leftLines {
		b.WriteString(ui.PadRight(leftLines[i], panelW) + sep + rightLines[i] + "\n")
	}
	return b.String()
}
