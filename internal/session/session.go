// Package session holds the interactive state of git-twig: the rows of every
// pane, per-pane selection, layout and filter modes, visual ranges, staging
// history and the diff/patch view. It talks to git only through Repo and is
// driven synchronously by the UI.
package session

import (
	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/log"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
)

// Repo is the slice of git the session needs.
type Repo interface {
	Status() (git.StatusSnapshot, error)
	DiffStats() (git.StatTable, error)
	Stage(path string) error
	Unstage(path string) error
	Commit(message string) error
	Diff(path string, staged, untracked bool) (string, error)
	ApplyPatch(patch string, opts git.ApplyOptions) error
	WorktreeList() ([]git.Worktree, error)
	SwitchWorktree(path string) error
}

var _ Repo = (git.Service)(nil)

// noSelection marks a pane without a selected row.
const noSelection = -1

// Options are the display settings a session starts with.
type Options struct {
	Indent         int
	CollapseChains bool
	Theme          tree.Theme
	// Style renders row names; nil leaves them plain.
	Style tree.StyleFunc
}

// Session is the interactive state machine.
type Session struct {
	repo Repo
	opts Options

	layout Layout
	filter FilterMode
	focus  Focus
	view   View

	rows      [paneCount][]tree.FlatNode
	selected  [paneCount]int
	collapsed tree.PathSet
	maxWidth  int

	all       *tree.Node
	branch    git.BranchInfo
	totals    git.LineStats
	fileCount int

	search    string
	hitTop    bool
	hitBottom bool

	visual       bool
	visualOrigin int

	history History

	diff      diffState
	worktrees []git.Worktree
}

// New creates a session and performs the first refresh.
func New(repo Repo, opts Options) (*Session, error) {
	opts.Indent = tree.ClampIndent(opts.Indent)
	s := &Session{
		repo:      repo,
		opts:      opts,
		collapsed: make(tree.PathSet),
		selected:  [paneCount]int{noSelection, noSelection, noSelection},
		diff:      newDiffState(),
	}
	if err := s.Refresh(); err != nil {
		return nil, err
	}
	return s, nil
}

// ── Refresh ─────────────────────────────────────────────────────────────────

// Refresh re-reads status and stats and rebuilds every pane for the current
// layout. On failure the previous rows are kept.
func (s *Session) Refresh() error {
	snap, err := s.repo.Status()
	if err != nil {
		return err
	}
	stats, err := s.repo.DiffStats()
	if err != nil {
		return err
	}

	entries := make([]git.Entry, 0, len(snap.Lines))
	for _, line := range snap.Lines {
		if e, ok := git.ParseStatusRecord(line); ok {
			entries = append(entries, e)
		}
	}

	flatOpts := tree.Options{
		Indent:         s.opts.Indent,
		Theme:          s.opts.Theme,
		CollapseChains: s.opts.CollapseChains,
		Collapsed:      s.collapsed,
		Style:          s.opts.Style,
	}

	all := tree.BuildEntries(entries, stats, tree.Filter{})
	var rows [paneCount][]tree.FlatNode
	switch s.layout {
	case LayoutSplit:
		rows[PaneStaged] = flattenPane(tree.BuildEntries(entries, stats, tree.Filter{StagedOnly: true}), flatOpts)
		if hasUnstaged(entries) {
			for _, r := range tree.Flatten(all, flatOpts) {
				if !r.Status.Staged() {
					rows[PaneUnstaged] = append(rows[PaneUnstaged], r)
				}
			}
		}
	case LayoutCompact:
		flatOpts.CollapseChains = true
		rows[PaneUnified] = flattenPane(all, flatOpts)
	default:
		root := all
		if s.filter != FilterAll {
			root = tree.BuildEntries(entries, stats, s.filter.treeFilter())
		}
		rows[PaneUnified] = flattenPane(root, flatOpts)
	}

	width := 0
	for _, r := range rows {
		width = max(width, tree.MaxWidth(r))
	}

	s.rows = rows
	s.maxWidth = width
	s.all = all
	s.branch = snap.Branch()
	s.totals = stats.Totals()
	s.fileCount = all.FileCount()

	active := s.ActivePane()
	for p := range paneCount {
		s.selected[p] = adjustSelection(len(s.Rows(p)), s.selected[p], p == active)
	}
	return nil
}

// flattenPane flattens root for display. A tree without files yields no
// rows, so an empty pane has nothing to select or stage.
func flattenPane(root *tree.Node, opts tree.Options) []tree.FlatNode {
	if root.FileCount() == 0 {
		return nil
	}
	return tree.Flatten(root, opts)
}

func hasUnstaged(entries []git.Entry) bool {
	for _, e := range entries {
		if !e.Status.Staged() {
			return true
		}
	}
	return false
}

// adjustSelection clamps a stale index after the row list changed. An
// active pane without a selection starts at the first row.
func adjustSelection(n, sel int, active bool) int {
	switch {
	case n == 0:
		return noSelection
	case sel >= n:
		return n - 1
	case sel < 0 && active:
		return 0
	default:
		return sel
	}
}

// ── Accessors ───────────────────────────────────────────────────────────────

// Layout returns the current layout.
func (s *Session) Layout() Layout { return s.layout }

// Filter returns the unified-pane filter.
func (s *Session) Filter() FilterMode { return s.filter }

// Focus returns the focused split pane.
func (s *Session) Focus() Focus { return s.focus }

// View returns the current screen.
func (s *Session) View() View { return s.view }

// Theme returns the active glyph theme.
func (s *Session) Theme() tree.Theme { return s.opts.Theme }

// MaxWidth is the stat-bar column: the widest row label over all panes.
func (s *Session) MaxWidth() int { return s.maxWidth }

// Branch returns the parsed branch header of the last refresh.
func (s *Session) Branch() git.BranchInfo { return s.branch }

// Totals returns the summed line statistics of the last refresh.
func (s *Session) Totals() git.LineStats { return s.totals }

// FileCount returns the number of changed files of the last refresh.
func (s *Session) FileCount() int { return s.fileCount }

// History exposes the staging history for display.
func (s *Session) History() *History { return &s.history }

// Collapsed reports whether a directory is folded.
func (s *Session) Collapsed(path string) bool { return s.collapsed.Has(path) }

// ActivePane returns the pane that receives movement and actions.
func (s *Session) ActivePane() Pane {
	if s.layout != LayoutSplit {
		return PaneUnified
	}
	if s.focus == FocusStaged {
		return PaneStaged
	}
	return PaneUnstaged
}

// AllRows returns a pane's rows ignoring the search query.
func (s *Session) AllRows(p Pane) []tree.FlatNode { return s.rows[p] }

// Rows returns a pane's rows filtered by the search query.
func (s *Session) Rows(p Pane) []tree.FlatNode { return tree.Search(s.rows[p], s.search) }

// Selected returns a pane's selected index into Rows, or -1.
func (s *Session) Selected(p Pane) int { return s.selected[p] }

// Cursor returns the active pane's selected index, or -1.
func (s *Session) Cursor() int { return s.selected[s.ActivePane()] }

// SelectedRow returns the active pane's selected row.
func (s *Session) SelectedRow() (tree.FlatNode, bool) {
	rows := s.Rows(s.ActivePane())
	i := s.Cursor()
	if i < 0 || i >= len(rows) {
		return tree.FlatNode{}, false
	}
	return rows[i], true
}

func (s *Session) setCursor(i int) { s.selected[s.ActivePane()] = i }

// ── Modes ───────────────────────────────────────────────────────────────────

// CycleLayout moves to the next layout, leaves visual mode and refreshes.
func (s *Session) CycleLayout() error {
	return s.setLayout(s.layout.Next())
}

// ToggleEasterEgg switches between the centred tree layout and Unified.
func (s *Session) ToggleEasterEgg() error {
	if s.layout == LayoutEasterEgg {
		return s.setLayout(LayoutUnified)
	}
	return s.setLayout(LayoutEasterEgg)
}

func (s *Session) setLayout(l Layout) error {
	s.layout = l
	s.exitVisual()
	return s.Refresh()
}

// CycleFilter advances the filter. It only applies to the Unified layout.
func (s *Session) CycleFilter() error {
	if s.layout != LayoutUnified {
		return nil
	}
	s.filter = s.filter.Next()
	return s.Refresh()
}

// CycleTheme moves to the next glyph theme and rebuilds the rows.
func (s *Session) CycleTheme() error {
	s.opts.Theme = s.opts.Theme.Next()
	return s.Refresh()
}

// ToggleFocus switches the active pane of the split layout.
func (s *Session) ToggleFocus() {
	if s.layout != LayoutSplit {
		return
	}
	s.focus = s.focus.Next()
	s.exitVisual()
	p := s.ActivePane()
	if s.selected[p] < 0 && len(s.Rows(p)) > 0 {
		s.selected[p] = 0
	}
}

// ── Search ──────────────────────────────────────────────────────────────────

// Search returns the tree search query.
func (s *Session) Search() string { return s.search }

// SetSearch replaces the query and moves every pane back to its first row.
func (s *Session) SetSearch(q string) {
	s.search = q
	s.exitVisual()
	for p := range paneCount {
		s.selected[p] = noSelection
		if len(s.Rows(p)) > 0 {
			s.selected[p] = 0
		}
	}
	s.hitTop, s.hitBottom = false, false
}

// ── Visual mode ─────────────────────────────────────────────────────────────

// Visual reports whether visual mode is on.
func (s *Session) Visual() bool { return s.visual }

// ToggleVisual enters visual mode anchored at the cursor, or leaves it.
func (s *Session) ToggleVisual() {
	if s.visual {
		s.exitVisual()
		return
	}
	if c := s.Cursor(); c >= 0 {
		s.visual = true
		s.visualOrigin = c
	}
}

// VisualRange returns the inclusive range between the anchor and the live
// cursor.
func (s *Session) VisualRange() (lo, hi int, ok bool) {
	if !s.visual {
		return 0, 0, false
	}
	c := s.Cursor()
	if c < 0 {
		return 0, 0, false
	}
	return min(s.visualOrigin, c), max(s.visualOrigin, c), true
}

// InVisualRange reports whether row i of the active pane is highlighted.
func (s *Session) InVisualRange(i int) bool {
	lo, hi, ok := s.VisualRange()
	return ok && i >= lo && i <= hi
}

func (s *Session) exitVisual() {
	s.visual = false
	s.visualOrigin = 0
}

// scope returns the rows an action applies to: the visual range when active,
// otherwise the selected row.
func (s *Session) scope() []tree.FlatNode {
	rows := s.Rows(s.ActivePane())
	if lo, hi, ok := s.VisualRange(); ok {
		hi = min(hi, len(rows)-1)
		if lo > hi {
			return nil
		}
		return rows[lo : hi+1]
	}
	if r, ok := s.SelectedRow(); ok {
		return []tree.FlatNode{r}
	}
	return nil
}

// SelectedPaths returns the paths in scope (visual range or selected row)
// and leaves visual mode.
func (s *Session) SelectedPaths() []string {
	rows := s.scope()
	s.exitVisual()
	paths := make([]string, len(rows))
	for i, r := range rows {
		paths[i] = r.Path
	}
	return paths
}

// ── Commit ──────────────────────────────────────────────────────────────────

// Commit records the index with message. Empty messages are ignored.
func (s *Session) Commit(message string) error {
	if message == "" {
		return nil
	}
	if err := s.repo.Commit(message); err != nil {
		return err
	}
	return s.Refresh()
}

// logErr traces errors that are deliberately not surfaced.
func logErr(what string, err error) {
	if err != nil {
		log.Printf("%s: %v", what, err)
	}
}
