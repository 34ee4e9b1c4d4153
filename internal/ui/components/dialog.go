package components

import (
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// DialogResult is sent when the dialog is dismissed.
type DialogResult struct {
	Confirmed bool
	Value     string
	Tag       string // arbitrary tag to identify which dialog this was
}

// Dialog is a modal single-line input dialog.
type Dialog struct {
	Title   string
	Tag     string
	input   textinput.Model
	styles  ui.Styles
	visible bool
}

// NewInputDialog creates a text input dialog.
func NewInputDialog(styles ui.Styles, title, placeholder, tag string) Dialog {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.CharLimit = 200
	ti.Width = 50
	return Dialog{
		Title:   title,
		Tag:     tag,
		input:   ti,
		styles:  styles,
		visible: true,
	}
}

// Visible returns whether the dialog is showing.
func (d Dialog) Visible() bool { return d.visible }

// Update handles key events for the dialog.
func (d Dialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.visible {
		return d, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			d.visible = false
			return d, func() tea.Msg { return DialogResult{Tag: d.Tag} }
		case "enter":
			d.visible = false
			value := d.input.Value()
			return d, func() tea.Msg {
				return DialogResult{Confirmed: true, Value: value, Tag: d.Tag}
			}
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// View renders the dialog.
func (d Dialog) View() string {
	if !d.visible {
		return ""
	}
	title := d.styles.DialogTitle.Render(d.Title)
	hint := d.styles.Muted.Render("enter confirm · esc cancel")
	return d.styles.Dialog.Render(title + "\n\n" + d.input.View() + "\n\n" + hint)
}
