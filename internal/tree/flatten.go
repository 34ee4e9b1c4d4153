package tree

import (
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/mattn/go-runewidth"
)

// Indent bounds. Indent is the column width of one nesting level.
const (
	MinIndent     = 2
	MaxIndent     = 10
	DefaultIndent = 3
)

// ClampIndent forces n into [MinIndent, MaxIndent].
func ClampIndent(n int) int {
	return max(MinIndent, min(MaxIndent, n))
}

// FlatNode is one display row produced by Flatten.
type FlatNode struct {
	// Name is the display name; file rows carry a " (STATUS)" suffix.
	Name string
	Icon string
	// Styled is Icon plus Name passed through the row styler.
	Styled    string
	Path      string
	IsDir     bool
	Class     rune
	Status    git.Status
	Connector string
	Stats     *git.LineStats
	Depth     int
}

// Label is the plain text of the row: connector, icon and name.
func (r FlatNode) Label() string { return r.Connector + r.Icon + r.Name }

// Width is the display width of Label.
func (r FlatNode) Width() int { return runewidth.StringWidth(r.Label()) }

// Matches reports whether query (case-insensitive) occurs in the row's
// name or path. An empty query matches everything.
func (r FlatNode) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Path), q)
}

// StyleFunc renders a row name. It receives the undecorated name text.
type StyleFunc func(name string, isDir bool, st git.Status) string

// PathSet is a set of directory paths.
type PathSet map[string]struct{}

// Has reports membership.
func (s PathSet) Has(p string) bool {
	_, ok := s[p]
	return ok
}

// Options controls Flatten.
type Options struct {
	Indent int
	Theme  Theme
	// CollapseChains merges single-child directory runs before flattening.
	CollapseChains bool
	// Collapsed directories show their own row but none of their children.
	Collapsed PathSet
	// Style renders names; nil leaves them plain.
	Style StyleFunc
}

// Flatten walks root depth-first and returns one row per visible node,
// starting with the root itself.
func Flatten(root *Node, opts Options) []FlatNode {
	if root == nil {
		return nil
	}
	if opts.CollapseChains {
		root = CollapseChains(root)
	}
	f := flattener{opts: opts}
	f.opts.Indent = ClampIndent(opts.Indent)
	f.emit(root, "", 0)
	if !opts.Collapsed.Has(root.Path) {
		f.walk(root.Children, "", 1)
	}
	return f.rows
}

type flattener struct {
	opts Options
	rows []FlatNode
}

func (f *flattener) walk(children []*Node, prefix string, depth int) {
	t := f.opts.Theme
	dashes := strings.Repeat(t.Dash, f.opts.Indent-2)
	for i, n := range children {
		last := i == len(children)-1

		glyph := t.Branch
		if last {
			glyph = t.End
		}
		f.emit(n, prefix+glyph+dashes+" ", depth)

		if n.dir && !f.opts.Collapsed.Has(n.Path) {
			ext := t.Vertical
			if last {
				ext = " "
			}
			f.walk(n.Children, prefix+ext+strings.Repeat(" ", f.opts.Indent-1), depth+1)
		}
	}
}

func (f *flattener) emit(n *Node, connector string, depth int) {
	name := n.Name
	if !n.dir {
		name += " (" + string(n.Status) + ")"
	}
	icon := f.opts.Theme.Icon(n.Name, n.dir)
	styled := name
	if f.opts.Style != nil {
		styled = f.opts.Style(name, n.dir, n.Status)
	}
	f.rows = append(f.rows, FlatNode{
		Name:      name,
		Icon:      icon,
		Styled:    icon + styled,
		Path:      n.Path,
		IsDir:     n.dir,
		Class:     n.Status.Class(),
		Status:    n.Status,
		Connector: connector,
		Stats:     n.Stats,
		Depth:     depth,
	})
}

// MaxWidth is the widest Label over rows, used to align stat bars.
func MaxWidth(rows []FlatNode) int {
	w := 0
	for _, r := range rows {
		w = max(w, r.Width())
	}
	return w
}

// Search returns the rows matching query, preserving order.
func Search(rows []FlatNode, query string) []FlatNode {
	if query == "" {
		return rows
	}
	out := make([]FlatNode, 0, len(rows))
	for _, r := range rows {
		if r.Matches(query) {
			out = append(out, r)
		}
	}
	return out
}
