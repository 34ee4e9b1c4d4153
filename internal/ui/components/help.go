package components

import (
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of entries, rendered in order.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

const helpKeyWidth = 16

// RenderHelp renders the body of the help overlay: every section with its
// keys right-aligned and descriptions wrapped to width.
func RenderHelp(styles ui.Styles, title string, sections []HelpSection, width int) string {
	t := styles.Theme
	inner := max(20, width)

	titleStr := lipgloss.NewStyle().
		Foreground(t.Primary).Bold(true).
		Align(lipgloss.Center).
		Width(inner).
		Render(title)

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Primary).Bold(true).Width(helpKeyWidth).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	descWidth := max(10, inner-helpKeyWidth-4)

	for _, section := range sections {
		if len(section.Entries) == 0 {
			continue
		}
		body.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, e := range section.Entries {
			desc := wordwrap.String(e.Desc, descWidth)
			first, rest, _ := strings.Cut(desc, "\n")
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(first) + "\n")
			if rest != "" {
				body.WriteString(descStyle.Render(indent.String(rest, helpKeyWidth+4)) + "\n")
			}
		}
		body.WriteString("\n")
	}
	return strings.TrimRight(body.String(), "\n")
}

// HelpFrame wraps rendered help content in the overlay border.
func HelpFrame(styles ui.Styles, content string, width, height int) string {
	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(styles.Theme.Primary).
		Padding(0, 2).
		Render(content)
	return ui.PlaceCentre(width, height, overlay)
}
