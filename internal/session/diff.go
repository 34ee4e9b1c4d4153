package session

import (
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/charmbracelet/x/ansi"
)

// NoDiffPlaceholder replaces an empty diff for tracked files.
const NoDiffPlaceholder = "(No diff or binary file)"

type diffState struct {
	content string
	path    string
	status  git.Status
	scroll  int

	query   string
	matches []int
	match   int

	patch   bool
	headers []string
	hunks   []git.Hunk
	hunk    int
}

func newDiffState() diffState {
	return diffState{match: noSelection, hunk: noSelection}
}

// ── Diff view ───────────────────────────────────────────────────────────────

// ShowDiff opens the diff of the selected file. Directories are ignored.
// Git failures are shown in the diff pane instead of being returned.
func (s *Session) ShowDiff() {
	r, ok := s.SelectedRow()
	if !ok || r.IsDir {
		return
	}
	s.openDiff(r.Path, r.Status)
}

// Activate is the Enter action: directories fold or unfold, files open
// their diff.
func (s *Session) Activate() error {
	r, ok := s.SelectedRow()
	if !ok {
		return nil
	}
	if r.IsDir {
		return s.ToggleFold()
	}
	s.openDiff(r.Path, r.Status)
	return nil
}

func (s *Session) openDiff(path string, st git.Status) {
	d := newDiffState()
	d.path = path
	d.status = st

	content, err := s.repo.Diff(path, st.Staged(), st.Untracked())
	switch {
	case err != nil:
		d.content = "Error running git diff: " + err.Error()
	case content == "" && !st.Untracked():
		d.content = NoDiffPlaceholder
	default:
		d.content = content
	}
	s.diff = d
	s.view = ViewDiff
}

// CloseDiff returns to the tree.
func (s *Session) CloseDiff() {
	s.diff = newDiffState()
	s.view = ViewTree
}

// DiffContent returns the text shown in the diff pane.
func (s *Session) DiffContent() string { return s.diff.content }

// DiffPath returns the path whose diff is shown.
func (s *Session) DiffPath() string { return s.diff.path }

// DiffScroll returns the first visible diff line.
func (s *Session) DiffScroll() int { return s.diff.scroll }

// SetDiffScroll records the first visible diff line, clamped at zero.
func (s *Session) SetDiffScroll(line int) { s.diff.scroll = max(line, 0) }

// ScrollDiff moves the diff view by delta lines.
func (s *Session) ScrollDiff(delta int) { s.SetDiffScroll(s.diff.scroll + delta) }

// ── Diff search ─────────────────────────────────────────────────────────────

// DiffQuery returns the in-diff search query.
func (s *Session) DiffQuery() string { return s.diff.query }

// SearchDiff finds every line containing q (case-insensitive, colour
// escapes ignored) and jumps to the first match.
func (s *Session) SearchDiff(q string) {
	s.diff.query = q
	s.diff.matches = nil
	s.diff.match = noSelection
	if q == "" {
		return
	}
	needle := strings.ToLower(q)
	for i, line := range strings.Split(s.diff.content, "\n") {
		if strings.Contains(strings.ToLower(ansi.Strip(line)), needle) {
			s.diff.matches = append(s.diff.matches, i)
		}
	}
	if len(s.diff.matches) > 0 {
		s.diff.match = 0
		s.diff.scroll = s.diff.matches[0]
	}
}

// DiffMatches returns the matching line indices and the current match, or
// -1 when there is none.
func (s *Session) DiffMatches() ([]int, int) { return s.diff.matches, s.diff.match }

// NextMatch jumps to the following match, wrapping around.
func (s *Session) NextMatch() {
	n := len(s.diff.matches)
	if n == 0 {
		return
	}
	s.diff.match = (max(s.diff.match, 0) + 1) % n
	s.diff.scroll = s.diff.matches[s.diff.match]
}

// PrevMatch jumps to the preceding match, wrapping around.
func (s *Session) PrevMatch() {
	n := len(s.diff.matches)
	if n == 0 {
		return
	}
	s.diff.match = (max(s.diff.match, 0) - 1 + n) % n
	s.diff.scroll = s.diff.matches[s.diff.match]
}

// ── Patch mode ──────────────────────────────────────────────────────────────

// PatchMode reports whether hunk selection is active.
func (s *Session) PatchMode() bool { return s.diff.patch }

// TogglePatchMode enters patch mode by parsing the shown diff into hunks and
// selecting the first, or leaves it.
func (s *Session) TogglePatchMode() {
	if s.view != ViewDiff {
		return
	}
	if s.diff.patch {
		s.exitPatch()
		return
	}
	s.diff.patch = true
	s.diff.headers, s.diff.hunks = git.ParseHunks(s.diff.content)
	if len(s.diff.hunks) > 0 {
		s.diff.hunk = 0
		s.diff.scroll = s.diff.hunks[0].Start
	}
}

func (s *Session) exitPatch() {
	s.diff.patch = false
	s.diff.headers = nil
	s.diff.hunks = nil
	s.diff.hunk = noSelection
}

// Hunks returns the parsed hunks and the selected index, or -1.
func (s *Session) Hunks() ([]git.Hunk, int) { return s.diff.hunks, s.diff.hunk }

// NextHunk selects the following hunk without wrapping.
func (s *Session) NextHunk() {
	if s.diff.hunk >= 0 && s.diff.hunk < len(s.diff.hunks)-1 {
		s.diff.hunk++
		s.diff.scroll = s.diff.hunks[s.diff.hunk].Start
	}
}

// PrevHunk selects the preceding hunk without wrapping.
func (s *Session) PrevHunk() {
	if s.diff.hunk > 0 {
		s.diff.hunk--
		s.diff.scroll = s.diff.hunks[s.diff.hunk].Start
	}
}

// StageHunk applies the selected hunk to the index, in reverse when the
// diff is of staged changes. Afterwards patch mode is left, the tree is
// refreshed and the diff reopened for the same file, which may have moved
// or disappeared.
func (s *Session) StageHunk() error {
	if !s.diff.patch || s.diff.hunk < 0 || s.diff.hunk >= len(s.diff.hunks) {
		return nil
	}
	patch := git.BuildPatch(s.diff.headers, s.diff.hunks[s.diff.hunk])
	opts := git.ApplyOptions{Cached: true, Reverse: s.diff.status.Staged()}
	if err := s.repo.ApplyPatch(patch, opts); err != nil {
		return err
	}

	path := s.diff.path
	s.exitPatch()
	if err := s.Refresh(); err != nil {
		return err
	}
	for i, r := range s.Rows(s.ActivePane()) {
		if r.Path == path && !r.IsDir {
			s.setCursor(i)
			s.openDiff(r.Path, r.Status)
			return nil
		}
	}
	s.CloseDiff()
	return nil
}
