package tree

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/charmbracelet/lipgloss"
)

var (
	stagedName   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	unstagedName = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dirName      = lipgloss.NewStyle().Bold(true)
	barPlus      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	barMinus     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	boldText     = lipgloss.NewStyle().Bold(true)
)

// DefaultStyle colours file names green when staged and red otherwise, and
// makes directory names bold.
func DefaultStyle(name string, isDir bool, st git.Status) string {
	switch {
	case isDir:
		return dirName.Render(name)
	case st.Staged():
		return stagedName.Render(name)
	default:
		return unstagedName.Render(name)
	}
}

// Render draws the flattened tree as text, one row per line, with stat bars
// aligned in a column after the widest row.
func Render(root *Node, opts Options) string {
	if opts.Style == nil {
		opts.Style = DefaultStyle
	}
	rows := Flatten(root, opts)
	width := MaxWidth(rows)

	var b strings.Builder
	for _, r := range rows {
		b.WriteString(r.Connector)
		b.WriteString(r.Styled)
		if r.Stats != nil && r.Stats.Total() > 0 {
			b.WriteString(strings.Repeat(" ", width-r.Width()))
			bar := opts.Theme.StatBar(*r.Stats, RowBarCap)
			fmt.Fprintf(&b, " | %d %s%s", r.Stats.Total(), barPlus.Render(bar.Plus), barMinus.Render(bar.Minus))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatBranch renders the branch line printed above the tree, e.g.
// "On branch main -> origin/main ⬆ 1 ⬇ 2".
func FormatBranch(info git.BranchInfo) string {
	if info.Branch == "" {
		return ""
	}
	if info.NoCommits {
		return fmt.Sprintf("On branch %s (No commits yet)", info.Branch)
	}
	var b strings.Builder
	b.WriteString("On branch ")
	b.WriteString(boldText.Render(info.Branch))
	if info.Upstream != "" {
		b.WriteString(" -> ")
		b.WriteString(info.Upstream)
	}
	if info.Ahead > 0 {
		b.WriteString(barPlus.Render(fmt.Sprintf(" ⬆ %d", info.Ahead)))
	}
	if info.Behind > 0 {
		b.WriteString(barMinus.Render(fmt.Sprintf(" ⬇ %d", info.Behind)))
	}
	if info.Gone {
		b.WriteString(barMinus.Render(" (gone)"))
	}
	return b.String()
}
