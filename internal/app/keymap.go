package app

import (
	"strings"
	"unicode/utf8"

	"github.com/Akashdeep-Patra/git-twig/internal/log"
	"github.com/Akashdeep-Patra/git-twig/internal/ui/components"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap holds every rebindable action. Keys that start a two-key sequence
// (Top, Center) must be pressed twice when they are single characters.
type KeyMap struct {
	Quit        key.Binding
	Search      key.Binding
	Down        key.Binding
	Up          key.Binding
	Collapse    key.Binding
	CollapseAll key.Binding
	Expand      key.Binding
	ExpandAll   key.Binding
	NextFile    key.Binding
	PrevFile    key.Binding
	Stage       key.Binding
	Filter      key.Binding
	Layout      key.Binding
	Theme       key.Binding
	SwitchPane  key.Binding
	Diff        key.Binding
	Help        key.Binding
	Back        key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Center      key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Yank        key.Binding
	Visual      key.Binding

	Undo       key.Binding
	Redo       key.Binding
	Commit     key.Binding
	Worktrees  key.Binding
	Refresh    key.Binding
	Editor     key.Binding
	EasterEgg  key.Binding
	Patch      key.Binding
	NextHunk   key.Binding
	PrevHunk   key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	SideBySide key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
		Collapse:    key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/←", "collapse directory")),
		CollapseAll: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "collapse all")),
		Expand:      key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "expand directory")),
		ExpandAll:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "expand all")),
		NextFile:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "next file")),
		PrevFile:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "previous file")),
		Stage:       key.NewBinding(key.WithKeys("s", " "), key.WithHelp("s/space", "stage / unstage")),
		Filter:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "cycle filter")),
		Layout:      key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "cycle layout")),
		Theme:       key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle theme")),
		SwitchPane:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
		Diff:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "diff / fold")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Top:         key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("gg", "top")),
		Bottom:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
		Center:      key.NewBinding(key.WithKeys("z"), key.WithHelp("zz", "centre cursor")),
		PageUp:      key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Yank:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		Visual:      key.NewBinding(key.WithKeys("V"), key.WithHelp("V", "visual select")),

		Undo:       key.NewBinding(key.WithKeys("U"), key.WithHelp("U", "undo staging")),
		Redo:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo staging")),
		Commit:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "commit")),
		Worktrees:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "worktrees")),
		Refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Editor:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "open in editor")),
		EasterEgg:  key.NewBinding(key.WithKeys("alt+v"), key.WithHelp("alt+v", "tree view")),
		Patch:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "patch mode")),
		NextHunk:   key.NewBinding(key.WithKeys("J", "]"), key.WithHelp("J/]", "next hunk")),
		PrevHunk:   key.NewBinding(key.WithKeys("K", "["), key.WithHelp("K/[", "previous hunk")),
		NextMatch:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		PrevMatch:  key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "previous match")),
		SideBySide: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "side-by-side diff")),
	}
}

// actions maps every configurable action name to its binding.
func (k *KeyMap) actions() map[string]*key.Binding {
	return map[string]*key.Binding{
		"quit":         &k.Quit,
		"search":       &k.Search,
		"down":         &k.Down,
		"up":           &k.Up,
		"collapse":     &k.Collapse,
		"collapse_all": &k.CollapseAll,
		"expand":       &k.Expand,
		"expand_all":   &k.ExpandAll,
		"next_file":    &k.NextFile,
		"prev_file":    &k.PrevFile,
		"stage":        &k.Stage,
		"filter":       &k.Filter,
		"layout":       &k.Layout,
		"theme":        &k.Theme,
		"switch_pane":  &k.SwitchPane,
		"diff":         &k.Diff,
		"help":         &k.Help,
		"back":         &k.Back,
		"top":          &k.Top,
		"bottom":       &k.Bottom,
		"center":       &k.Center,
		"page_up":      &k.PageUp,
		"page_down":    &k.PageDown,
		"yank":         &k.Yank,
		"visual":       &k.Visual,
		"undo":         &k.Undo,
		"redo":         &k.Redo,
		"commit":       &k.Commit,
		"worktrees":    &k.Worktrees,
		"refresh":      &k.Refresh,
		"editor":       &k.Editor,
		"easter_egg":   &k.EasterEgg,
		"patch":        &k.Patch,
		"next_hunk":    &k.NextHunk,
		"prev_hunk":    &k.PrevHunk,
		"next_match":   &k.NextMatch,
		"prev_match":   &k.PrevMatch,
		"side_by_side": &k.SideBySide,
	}
}

var actionAliases = map[string]string{
	"jump_to_top":    "top",
	"jump_to_bottom": "bottom",
	"center_view":    "center",
	"yank_path":      "yank",
	"visual_mode":    "visual",
}

var namedKeys = map[string]string{
	"enter":     "enter",
	"tab":       "tab",
	"esc":       "esc",
	"backspace": "backspace",
	"up":        "up",
	"down":      "down",
	"left":      "left",
	"right":     "right",
	"space":     " ",
}

// ParseKey turns a configured key name into the string bubbletea reports
// for it: one of the named keys or a single character.
func ParseKey(name string) (string, bool) {
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return k, true
	}
	if utf8.RuneCountInString(name) == 1 {
		return name, true
	}
	return "", false
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// Apply rebinds actions from a map of action name to key name. The new key
// is taken away from every other action first. Unknown actions and keys are
// skipped.
func (k *KeyMap) Apply(overrides map[string]string) {
	actions := k.actions()
	for name, keyName := range overrides {
		name = strings.ToLower(name)
		if alias, ok := actionAliases[name]; ok {
			name = alias
		}
		target, ok := actions[name]
		if !ok {
			log.Printf("keys: unknown action %q", name)
			continue
		}
		pressed, ok := ParseKey(keyName)
		if !ok {
			log.Printf("keys: unknown key %q for %s", keyName, name)
			continue
		}
		for other, b := range actions {
			if other != name {
				removeKey(b, pressed)
			}
		}
		target.SetKeys(pressed)
		target.SetHelp(displayKey(pressed), target.Help().Desc)
	}
}

func removeKey(b *key.Binding, pressed string) {
	keys := b.Keys()
	kept := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != pressed {
			kept = append(kept, k)
		}
	}
	if len(kept) == len(keys) {
		return
	}
	b.SetKeys(kept...)
	labels := make([]string, len(kept))
	for i, k := range kept {
		labels[i] = displayKey(k)
	}
	b.SetHelp(strings.Join(labels, "/"), b.Help().Desc)
}

// HelpSections lists the active bindings for the help overlay.
func (k KeyMap) HelpSections() []components.HelpSection {
	entry := func(b key.Binding) components.HelpEntry {
		return components.HelpEntry{Key: b.Help().Key, Desc: b.Help().Desc}
	}
	return []components.HelpSection{
		{Title: "Navigation", Entries: []components.HelpEntry{
			entry(k.Down), entry(k.Up), entry(k.NextFile), entry(k.PrevFile),
			entry(k.Top), entry(k.Bottom), entry(k.Center), entry(k.PageUp), entry(k.PageDown),
			entry(k.Search),
		}},
		{Title: "Tree", Entries: []components.HelpEntry{
			entry(k.Collapse), entry(k.Expand), entry(k.CollapseAll), entry(k.ExpandAll),
			entry(k.Filter), entry(k.Layout), entry(k.EasterEgg), entry(k.Theme), entry(k.SwitchPane),
			entry(k.Visual), entry(k.Yank),
		}},
		{Title: "Staging", Entries: []components.HelpEntry{
			entry(k.Stage), entry(k.Undo), entry(k.Redo), entry(k.Commit),
		}},
		{Title: "Diff", Entries: []components.HelpEntry{
			entry(k.Diff), entry(k.Patch), entry(k.NextHunk), entry(k.PrevHunk),
			entry(k.NextMatch), entry(k.PrevMatch), entry(k.SideBySide),
		}},
		{Title: "General", Entries: []components.HelpEntry{
			entry(k.Worktrees), entry(k.Editor), entry(k.Refresh), entry(k.Help), entry(k.Back),
			{Key: k.Quit.Help().Key + " / ctrl+c", Desc: k.Quit.Help().Desc},
		}},
	}
}
