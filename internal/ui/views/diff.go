package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/session"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/Akashdeep-Patra/git-twig/internal/ui/components"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const (
	diffTitle  = " Diff (p to Patch) "
	patchTitle = " Diff (Patch Mode: Space to Stage, p to Exit) "
)

// DiffPane shows the session's diff in a viewport. The session owns the
// scroll position; Sync pushes it into the viewport and clamps it.
type DiffPane struct {
	styles     ui.Styles
	vp         viewport.Model
	width      int
	height     int
	sideBySide bool
}

// NewDiffPane creates a new DiffPane.
func NewDiffPane(styles ui.Styles) *DiffPane {
	return &DiffPane{styles: styles, vp: viewport.New(0, 0)}
}

// SetSize sets the outer size, border included.
func (d *DiffPane) SetSize(w, h int) {
	d.width = w
	d.height = h
	d.vp.Width = max(1, w-2)
	d.vp.Height = max(1, h-3)
}

// PageSize is the number of diff lines visible at once.
func (d *DiffPane) PageSize() int { return d.vp.Height }

// SideBySide reports whether the split rendering is on.
func (d *DiffPane) SideBySide() bool { return d.sideBySide }

// ToggleSideBySide switches between unified and split rendering.
func (d *DiffPane) ToggleSideBySide() { d.sideBySide = !d.sideBySide }

// Sync renders the session's diff into the viewport at the session's scroll
// position and writes the clamped position back.
func (d *DiffPane) Sync(s *session.Session) {
	if d.sideBySide && !s.PatchMode() {
		d.vp.SetContent(components.RenderSideBySideDiff(d.styles, s.DiffContent(), d.vp.Width))
	} else {
		d.vp.SetContent(d.decorate(s))
	}
	d.vp.SetYOffset(s.DiffScroll())
	s.SetDiffScroll(d.vp.YOffset)
}

// decorate prefixes each line with a two-cell gutter marking the selected
// hunk and search matches.
func (d *DiffPane) decorate(s *session.Session) string {
	content := s.DiffContent()
	if content == "" {
		return ""
	}
	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")

	lo, hi := -1, -1
	if hunks, cur := s.Hunks(); cur >= 0 && cur < len(hunks) {
		lo, hi = hunks[cur].Start, hunks[cur].End
	}
	matches, cur := s.DiffMatches()
	matched := make(map[int]bool, len(matches))
	for _, m := range matches {
		matched[m] = true
	}
	current := -1
	if cur >= 0 && cur < len(matches) {
		current = matches[cur]
	}

	var b strings.Builder
	for i, line := range lines {
		switch {
		case i == current:
			b.WriteString(d.styles.SearchMatch.Render("▶") + " ")
		case i >= lo && i <= hi:
			b.WriteString(d.styles.Marker.Render("▌") + " ")
		case matched[i]:
			b.WriteString(d.styles.Muted.Render("·") + " ")
		default:
			b.WriteString("  ")
		}
		b.WriteString(ui.Truncate(line, max(1, d.vp.Width-2)))
		b.WriteByte('\n')
	}
	return b.String()
}

// Title returns the diff heading with the file path and the search state.
func (d *DiffPane) Title(s *session.Session) string {
	title := diffTitle
	if s.PatchMode() {
		title = patchTitle
	}
	out := d.styles.PanelTitle.Render(title) + d.styles.Muted.Render(s.DiffPath())
	if d.sideBySide && !s.PatchMode() {
		out += d.styles.Muted.Render(" [side-by-side]")
	}
	if s.DiffQuery() != "" {
		matches, cur := s.DiffMatches()
		if len(matches) == 0 {
			out += d.styles.Edge.Render(" (no matches)")
		} else {
			out += d.styles.KeyBind.Render(fmt.Sprintf(" [%d/%d]", cur+1, len(matches)))
		}
	}
	return ansi.Truncate(out, max(1, d.vp.Width), "…")
}

// View renders the bordered diff pane.
func (d *DiffPane) View(s *session.Session) string {
	body := lipgloss.JoinVertical(lipgloss.Left, d.Title(s), d.vp.View())
	return d.styles.PanelFocused.Width(max(1, d.width-2)).Height(max(1, d.height-2)).Render(body)
}
