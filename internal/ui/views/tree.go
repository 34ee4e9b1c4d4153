package views

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/session"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/Akashdeep-Patra/git-twig/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Pane titles.
const (
	stagedTitle    = " Staged Changes "
	unstagedTitle  = " Unstaged Changes "
	easterEggTitle = " 🎄 actual tree view 🎄 "
)

const (
	selectedMarker = ">> "
	blankMarker    = "   "
)

// TreePane draws one row list of a session inside a bordered box. It keeps
// the scroll offset between frames.
type TreePane struct {
	styles ui.Styles
	pane   session.Pane
	offset int
	width  int
	height int
}

// NewTreePane creates a pane bound to one of the session's row lists.
func NewTreePane(styles ui.Styles, pane session.Pane) *TreePane {
	return &TreePane{styles: styles, pane: pane}
}

// SetSize sets the outer size, border included.
func (p *TreePane) SetSize(w, h int) {
	p.width = w
	p.height = h
}

// ListHeight is the number of rows visible at once.
func (p *TreePane) ListHeight() int { return max(1, p.height-3) }

func (p *TreePane) innerWidth() int { return max(1, p.width-2) }

// Offset returns the first visible row.
func (p *TreePane) Offset() int { return p.offset }

// Centre scrolls so the selected row sits in the middle of the pane.
func (p *TreePane) Centre(s *session.Session) {
	p.offset = ui.CentreWindow(s.Selected(p.pane), p.ListHeight(), len(s.Rows(p.pane)))
}

// Title returns the heading for a pane in the session's current layout.
func Title(s *session.Session, pane session.Pane) string {
	switch pane {
	case session.PaneStaged:
		return stagedTitle
	case session.PaneUnstaged:
		return unstagedTitle
	}
	switch s.Layout() {
	case session.LayoutEasterEgg:
		return easterEggTitle
	case session.LayoutCompact:
		return fmt.Sprintf(" git-twig interactive | Filter: %s (Compact) ", s.Filter())
	default:
		return fmt.Sprintf(" git-twig interactive | Filter: %s ", s.Filter())
	}
}

// View renders the pane. focused selects the border colour and whether the
// visual range is drawn.
func (p *TreePane) View(s *session.Session, focused bool) string {
	rows := s.Rows(p.pane)
	cursor := s.Selected(p.pane)
	listH := p.ListHeight()
	innerW := p.innerWidth()

	p.offset = ui.ScrollWindow(max(cursor, 0), p.offset, listH, len(rows))
	end := min(len(rows), p.offset+listH)

	easter := s.Layout() == session.LayoutEasterEgg
	title := p.styles.PanelTitle.Render(Title(s, p.pane))
	if easter {
		title = lipgloss.PlaceHorizontal(innerW, lipgloss.Center, title)
	}

	var lines []string
	if len(rows) == 0 {
		empty := "  (no changes)"
		if s.Search() != "" {
			empty = "  (no matches)"
		}
		lines = append(lines, p.styles.Muted.Render(empty))
	}
	for i := p.offset; i < end; i++ {
		sel := i == cursor
		vis := focused && s.InVisualRange(i)
		var line string
		if easter {
			line = p.easterRow(rows[i], sel, innerW)
		} else {
			line = p.row(rows[i], s, sel, focused && s.AtEdge(), innerW)
		}
		switch {
		case sel:
			line = p.styles.RowSelected.Render(ui.PadRight(line, innerW))
		case vis:
			line = p.styles.RowVisual.Render(ui.PadRight(line, innerW))
		}
		lines = append(lines, line)
	}

	list := strings.Join(lines, "\n")
	if bar := components.RenderScrollbar(p.styles, listH, len(rows), p.offset); bar != "" {
		list = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(innerW-1).Height(listH).Render(list), bar)
	}

	frame := p.styles.Panel
	if focused {
		frame = p.styles.PanelFocused
	}
	body := lipgloss.JoinVertical(lipgloss.Left, title, list)
	return frame.Width(innerW).Height(p.height - 2).Render(body)
}

// row draws "marker indicator connector name  | N +++--".
func (p *TreePane) row(r tree.FlatNode, s *session.Session, selected, edge bool, width int) string {
	marker := blankMarker
	if selected {
		st := p.styles.Marker
		if edge {
			st = p.styles.Edge
		}
		marker = st.Render(selectedMarker)
	}

	var b strings.Builder
	b.WriteString(marker)
	b.WriteString(p.indicator(r))
	b.WriteString(r.Connector)
	b.WriteString(r.Styled)

	if r.Stats != nil && r.Stats.Total() > 0 {
		b.WriteString(strings.Repeat(" ", max(0, s.MaxWidth()-r.Width())))
		bar := s.Theme().StatBar(*r.Stats, tree.RowBarCap)
		fmt.Fprintf(&b, " | %d ", r.Stats.Total())
		b.WriteString(p.styles.BarPlus.Render(bar.Plus))
		b.WriteString(p.styles.BarMinus.Render(bar.Minus))
	}
	if r.IsDir && s.Collapsed(r.Path) {
		b.WriteString(p.styles.Muted.Render(" …"))
	}
	return truncate.StringWithTail(b.String(), uint(width), "…")
}

// indicator is the bracketed status class, blank for clean directories.
func (p *TreePane) indicator(r tree.FlatNode) string {
	switch r.Class {
	case '+':
		return p.styles.Staged.Render("[+]") + " "
	case '?':
		return p.styles.Untracked.Render("[?]") + " "
	case 'M':
		return p.styles.Unstaged.Render("[M]") + " "
	default:
		return "    "
	}
}

func (p *TreePane) easterRow(r tree.FlatNode, selected bool, width int) string {
	label := r.Styled
	if selected {
		label = p.styles.Marker.Render(selectedMarker) + label
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, truncate.StringWithTail(label, uint(width), "…"))
}
