package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

const (
	branchColumn = 15
	shortHash    = 8
)

// WorktreePicker is the overlay listing linked worktrees.
type WorktreePicker struct {
	styles ui.Styles
	cursor int
	width  int
	height int
}

// NewWorktreePicker creates a new WorktreePicker.
func NewWorktreePicker(styles ui.Styles) *WorktreePicker {
	return &WorktreePicker{styles: styles}
}

// SetSize sets the screen size the overlay is centred in.
func (w *WorktreePicker) SetSize(width, height int) { w.width = width; w.height = height }

// Reset moves the cursor to the first entry.
func (w *WorktreePicker) Reset() { w.cursor = 0 }

// Cursor returns the highlighted entry.
func (w *WorktreePicker) Cursor() int { return w.cursor }

// Move shifts the cursor by delta within n entries, without wrapping.
func (w *WorktreePicker) Move(delta, n int) {
	if n == 0 {
		w.cursor = 0
		return
	}
	w.cursor = max(0, min(n-1, w.cursor+delta))
}

// FormatWorktree renders "branch(padded) path  HEAD: abcdef12".
func FormatWorktree(wt git.Worktree) string {
	head := wt.Head
	if len(head) > shortHash {
		head = head[:shortHash]
	}
	line := fmt.Sprintf("%-*s %s", branchColumn, wt.ShortBranch(), wt.Path)
	if head != "" {
		line += "  HEAD: " + head
	}
	if wt.Bare {
		line += " (bare)"
	}
	return line
}

// View renders the picker centred on screen. current is the active
// repository root, marked in the list.
func (w *WorktreePicker) View(wts []git.Worktree, current string) string {
	t := w.styles.Theme
	title := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).
		Render(fmt.Sprintf("Worktrees (%d)", len(wts)))

	var b strings.Builder
	b.WriteString(title + "\n\n")
	if len(wts) == 0 {
		b.WriteString(w.styles.Muted.Render("No worktrees") + "\n")
	}
	maxW := max(20, min(100, w.width-10))
	for i, wt := range wts {
		line := ui.Truncate(FormatWorktree(wt), maxW-2)
		if wt.Path == current {
			line = w.styles.BranchName.Render(line)
		}
		if i == w.cursor {
			b.WriteString(w.styles.RowSelected.Render(w.styles.Marker.Render("▸ ")+line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n" + w.styles.Muted.Render("enter switch · esc close"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Render(b.String())
	return ui.PlaceCentre(w.width, w.height, box)
}
