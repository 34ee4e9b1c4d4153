package components

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Branch    git.BranchInfo
	FileCount int
	Totals    git.LineStats
	Theme     tree.Theme
	Mode      string // e.g. "VISUAL", "PATCH"
	Search    string
	Message   string // transient info/error message
	IsError   bool
}

// RenderStatusBar renders the bottom status bar with clear visual sections
// separated by dim vertical bars.
//
//	main ⬆1  │  4 files changed | 12 ++++++------   │  VISUAL       [?] Help
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.Border).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	left := " " + styles.BranchName.Render(branchLabel(data.Branch))

	if width >= 40 && (data.Branch.Ahead > 0 || data.Branch.Behind > 0) {
		syncStyle := lipgloss.NewStyle().Foreground(t.Warning)
		var parts []string
		if data.Branch.Ahead > 0 {
			parts = append(parts, fmt.Sprintf("⬆%d", data.Branch.Ahead))
		}
		if data.Branch.Behind > 0 {
			parts = append(parts, fmt.Sprintf("⬇%d", data.Branch.Behind))
		}
		left += " " + syncStyle.Render(strings.Join(parts, " "))
	}

	left += sep + renderStats(styles, data)

	if data.Mode != "" {
		badge := lipgloss.NewStyle().
			Foreground(t.TextInverse).
			Background(t.Warning).
			Bold(true).
			Padding(0, 1).
			Render(data.Mode)
		left += sep + badge
	}
	if data.Search != "" {
		left += sep + styles.Muted.Render("/"+data.Search)
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		fg := t.Info
		if data.IsError {
			fg = t.Error
		}
		right = lipgloss.NewStyle().Foreground(fg).Render(data.Message) + " "
	} else {
		right = styles.KeyBind.Render("[?]") + styles.KeyDesc.Render(" Help") + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW
	if gap < 0 {
		gap = 1
		right = "" // drop right side if no room
	}

	content := left + strings.Repeat(" ", gap) + right

	return styles.StatusBar.Width(width).MaxWidth(width).Render(ui.Truncate(content, max(1, width-2)))
}

func branchLabel(b git.BranchInfo) string {
	switch {
	case b.Branch == "":
		return "(detached)"
	case b.NoCommits:
		return b.Branch + " (no commits)"
	default:
		return b.Branch
	}
}

// renderStats draws "N files changed | total bar" with a FooterBarCap bar.
func renderStats(styles ui.Styles, data StatusBarData) string {
	noun := "files"
	if data.FileCount == 1 {
		noun = "file"
	}
	out := fmt.Sprintf("%d %s changed", data.FileCount, noun)
	if total := data.Totals.Total(); total > 0 {
		bar := data.Theme.StatBar(data.Totals, tree.FooterBarCap)
		out += fmt.Sprintf(" | %d ", total) + styles.BarPlus.Render(bar.Plus) + styles.BarMinus.Render(bar.Minus)
	}
	return out
}
