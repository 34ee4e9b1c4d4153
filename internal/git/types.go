package git

import "strings"

// Status is a normalised status code derived from one porcelain record.
//
// It takes exactly one of three forms: a letter suffixed with "+" for a change
// recorded in the index ("M+", "A+", "D+"), a bare letter for a change that
// only exists in the working tree ("M"), or the untracked sentinel "??".
type Status string

// StatusUntracked marks a path git does not track yet.
const StatusUntracked Status = "??"

// Staged reports whether the change is recorded in the index.
func (s Status) Staged() bool { return strings.HasSuffix(string(s), "+") }

// Untracked reports whether the path is untracked.
func (s Status) Untracked() bool { return s == StatusUntracked }

// Class collapses the status to the single indicator character used in
// rows: '+' staged, '?' untracked, 'M' any other change, ' ' for none.
func (s Status) Class() rune {
	switch {
	case s == "":
		return ' '
	case s.Staged():
		return '+'
	case s.Untracked():
		return '?'
	default:
		return 'M'
	}
}

// Label returns a human-readable description of the status.
func (s Status) Label() string {
	if s.Untracked() {
		return "Untracked"
	}
	code := strings.TrimSuffix(string(s), "+")
	var kind string
	switch code {
	case "M":
		kind = "Modified"
	case "T":
		kind = "Type Changed"
	case "A":
		kind = "Added"
	case "D":
		kind = "Deleted"
	case "R":
		kind = "Renamed"
	case "C":
		kind = "Copied"
	case "U":
		kind = "Unmerged"
	default:
		return ""
	}
	if s.Staged() {
		return kind + " (staged)"
	}
	return kind
}

// Entry is one parsed status record, ready for insertion into a tree.
type Entry struct {
	// Path is where the entry lives in the tree. For renames this is the
	// pre-rename path.
	Path string
	// StatsKey is the path numstat reports for the entry. For renames this
	// is the post-rename path.
	StatsKey string
	// Name is the display name of the leaf.
	Name   string
	Status Status
}

// LineStats is the number of added and deleted lines for one path.
type LineStats struct {
	Added   int
	Deleted int
}

// Total returns the number of changed lines.
func (l LineStats) Total() int { return l.Added + l.Deleted }

// StatTable maps repository-relative paths to their line statistics.
type StatTable map[string]LineStats

// Totals sums every entry of the table.
func (t StatTable) Totals() LineStats {
	var sum LineStats
	for _, s := range t {
		sum.Added += s.Added
		sum.Deleted += s.Deleted
	}
	return sum
}

// BranchInfo is the parsed "## ..." header of `git status -b`.
type BranchInfo struct {
	Branch    string
	Upstream  string
	Ahead     int
	Behind    int
	Gone      bool
	NoCommits bool
}

// StatusSnapshot is one `git status` run: the branch header (if any) and the
// remaining record lines.
type StatusSnapshot struct {
	Header string
	Lines  []string
}

// Branch returns the parsed header, or the zero value when there is none.
func (s StatusSnapshot) Branch() BranchInfo { return ParseBranchHeader(s.Header) }

// Hunk is one "@@" block of a diff.
type Hunk struct {
	// Header is the "@@ ... @@" line.
	Header string
	// Content is the header followed by the body, every line newline-terminated.
	Content string
	// Start and End are inclusive line indices into the diff text the hunk
	// was parsed from.
	Start int
	End   int
}

// ApplyOptions select how a patch is applied.
type ApplyOptions struct {
	Cached  bool
	Reverse bool
}

// Worktree represents a linked working tree.
type Worktree struct {
	Path   string
	Head   string
	Branch string
	Bare   bool
}

// ShortBranch strips the refs/heads/ prefix, or returns "(no branch)".
func (w Worktree) ShortBranch() string {
	if w.Branch == "" {
		return "(no branch)"
	}
	return strings.TrimPrefix(w.Branch, "refs/heads/")
}
