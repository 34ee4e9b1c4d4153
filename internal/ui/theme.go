package ui

import (
	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/charmbracelet/lipgloss"
)

// Theme holds all colours for the application.
// Inspired by Zed's default dark palette (Catppuccin Mocha).
type Theme struct {
	Bg            lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color
	Selection     lipgloss.Color
	Border        lipgloss.Color
	BorderFocused lipgloss.Color

	Text        lipgloss.Color
	TextMuted   lipgloss.Color
	TextSubtle  lipgloss.Color
	TextInverse lipgloss.Color

	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color

	Added     lipgloss.Color
	Modified  lipgloss.Color
	Deleted   lipgloss.Color
	Untracked lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	BranchHead lipgloss.Color
}

// DarkTheme returns the default Zed-inspired dark theme.
func DarkTheme() Theme {
	return Theme{
		Bg:            lipgloss.Color("#1e1e2e"),
		Surface:       lipgloss.Color("#282840"),
		SurfaceHover:  lipgloss.Color("#313152"),
		Selection:     lipgloss.Color("#45475a"),
		Border:        lipgloss.Color("#3b3b5c"),
		BorderFocused: lipgloss.Color("#7c7cf0"),

		Text:        lipgloss.Color("#cdd6f4"),
		TextMuted:   lipgloss.Color("#9399b2"),
		TextSubtle:  lipgloss.Color("#6c7086"),
		TextInverse: lipgloss.Color("#1e1e2e"),

		Primary:   lipgloss.Color("#89b4fa"),
		Secondary: lipgloss.Color("#b4befe"),
		Accent:    lipgloss.Color("#f5c2e7"),

		Added:     lipgloss.Color("#a6e3a1"),
		Modified:  lipgloss.Color("#f9e2af"),
		Deleted:   lipgloss.Color("#f38ba8"),
		Untracked: lipgloss.Color("#9399b2"),

		Success: lipgloss.Color("#a6e3a1"),
		Warning: lipgloss.Color("#f9e2af"),
		Error:   lipgloss.Color("#f38ba8"),
		Info:    lipgloss.Color("#89b4fa"),

		BranchHead: lipgloss.Color("#89b4fa"),
	}
}

// Styles holds pre-computed lipgloss styles derived from a Theme.
type Styles struct {
	Theme Theme

	// Layout
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style

	// Panels
	Panel        lipgloss.Style
	PanelFocused lipgloss.Style
	PanelTitle   lipgloss.Style

	// Tree rows
	RowSelected lipgloss.Style
	RowVisual   lipgloss.Style
	Marker      lipgloss.Style
	DirName     lipgloss.Style
	Staged      lipgloss.Style
	Unstaged    lipgloss.Style
	Untracked   lipgloss.Style
	BarPlus     lipgloss.Style
	BarMinus    lipgloss.Style
	Edge        lipgloss.Style

	// Text
	Title   lipgloss.Style
	Body    lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	KeyBind lipgloss.Style
	KeyDesc lipgloss.Style

	// Diff
	DiffAdded      lipgloss.Style
	DiffRemoved    lipgloss.Style
	DiffContext    lipgloss.Style
	DiffHeader     lipgloss.Style
	DiffHunkHeader lipgloss.Style
	HunkSelected   lipgloss.Style
	SearchMatch    lipgloss.Style

	BranchName lipgloss.Style

	// Dialogs
	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style
}

// NewStyles builds all styles from the given theme.
func NewStyles(t Theme) Styles {
	s := Styles{Theme: t}

	s.StatusBar = lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Padding(0, 1)
	s.HelpBar = lipgloss.NewStyle().Foreground(t.TextSubtle).Padding(0, 1)

	s.Panel = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border)
	s.PanelFocused = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.BorderFocused)
	s.PanelTitle = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)

	s.RowSelected = lipgloss.NewStyle().Background(t.SurfaceHover).Bold(true)
	s.RowVisual = lipgloss.NewStyle().Background(t.Selection)
	s.Marker = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DirName = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.Staged = lipgloss.NewStyle().Foreground(t.Added)
	s.Unstaged = lipgloss.NewStyle().Foreground(t.Deleted)
	s.Untracked = lipgloss.NewStyle().Foreground(t.Untracked)
	s.BarPlus = lipgloss.NewStyle().Foreground(t.Added)
	s.BarMinus = lipgloss.NewStyle().Foreground(t.Deleted)
	s.Edge = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)

	s.Title = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.Body = lipgloss.NewStyle().Foreground(t.Text)
	s.Muted = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.Bold = lipgloss.NewStyle().Foreground(t.Text).Bold(true)
	s.KeyBind = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.KeyDesc = lipgloss.NewStyle().Foreground(t.TextMuted)

	s.DiffAdded = lipgloss.NewStyle().Foreground(t.Added)
	s.DiffRemoved = lipgloss.NewStyle().Foreground(t.Deleted)
	s.DiffContext = lipgloss.NewStyle().Foreground(t.TextMuted)
	s.DiffHeader = lipgloss.NewStyle().Foreground(t.Primary).Bold(true)
	s.DiffHunkHeader = lipgloss.NewStyle().Foreground(t.Secondary).Italic(true)
	s.HunkSelected = lipgloss.NewStyle().Background(t.SurfaceHover)
	s.SearchMatch = lipgloss.NewStyle().Foreground(t.TextInverse).Background(t.Warning)

	s.BranchName = lipgloss.NewStyle().Foreground(t.BranchHead).Bold(true)

	s.Dialog = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(t.Primary).Padding(1, 3).Width(56)
	s.DialogTitle = lipgloss.NewStyle().Foreground(t.Text).Bold(true)

	return s
}

// DefaultStyles returns styles using the dark theme.
func DefaultStyles() Styles {
	return NewStyles(DarkTheme())
}

// RowStyle colours tree names: directories in the accent colour, staged
// files green, untracked files muted and everything else red.
func (s Styles) RowStyle() tree.StyleFunc {
	return func(name string, isDir bool, st git.Status) string {
		switch {
		case isDir:
			return s.DirName.Render(name)
		case st.Staged():
			return s.Staged.Render(name)
		case st.Untracked():
			return s.Untracked.Render(name)
		default:
			return s.Unstaged.Render(name)
		}
	}
}
