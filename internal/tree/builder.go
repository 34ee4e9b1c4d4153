package tree

import (
	"path"
	"slices"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
)

// Filter selects which records enter the tree. Flags compose with AND.
type Filter struct {
	StagedOnly    bool
	ModifiedOnly  bool
	UntrackedOnly bool
}

// Keep reports whether a record with status st passes the filter.
func (f Filter) Keep(st git.Status) bool {
	if f.StagedOnly && !st.Staged() {
		return false
	}
	if f.ModifiedOnly && st.Untracked() {
		return false
	}
	if f.UntrackedOnly && !st.Untracked() {
		return false
	}
	return true
}

// builder is the mutable construction-time tree, keyed by path component.
type builder struct {
	name  string
	path  string
	dirs  map[string]*builder
	files map[string]*Node
}

func newBuilder(name, p string) *builder {
	return &builder{
		name:  name,
		path:  p,
		dirs:  make(map[string]*builder),
		files: make(map[string]*Node),
	}
}

// Build parses porcelain status lines and returns the root of the tree.
// Malformed lines are skipped. The root is returned even when empty.
func Build(lines []string, stats git.StatTable, f Filter) *Node {
	entries := make([]git.Entry, 0, len(lines))
	for _, line := range lines {
		if e, ok := git.ParseStatusRecord(line); ok {
			entries = append(entries, e)
		}
	}
	return BuildEntries(entries, stats, f)
}

// BuildEntries builds a tree from already parsed records.
func BuildEntries(entries []git.Entry, stats git.StatTable, f Filter) *Node {
	root := newBuilder(RootPath, RootPath)
	for _, e := range entries {
		if !f.Keep(e.Status) {
			continue
		}
		root.insert(e, stats)
	}
	return root.freeze()
}

func (b *builder) insert(e git.Entry, stats git.StatTable) {
	parts := strings.Split(path.Clean(e.Path), "/")
	cur := b
	for i, part := range parts[:len(parts)-1] {
		next, ok := cur.dirs[part]
		if !ok {
			next = newBuilder(part, strings.Join(parts[:i+1], "/"))
			cur.dirs[part] = next
		}
		cur = next
	}

	leaf := parts[len(parts)-1]
	n := &Node{Name: e.Name, Path: e.Path, Status: e.Status}
	if s, ok := stats[e.StatsKey]; ok {
		n.Stats = &s
	}
	cur.files[leaf] = n
}

// freeze converts the builder bottom-up into sorted immutable nodes:
// directories first, then files, each group ordered by name.
func (b *builder) freeze() *Node {
	dirs := make([]*Node, 0, len(b.dirs))
	for _, d := range b.dirs {
		dirs = append(dirs, d.freeze())
	}
	files := make([]*Node, 0, len(b.files))
	for _, f := range b.files {
		files = append(files, f)
	}
	byName := func(a, c *Node) int {
		if n := strings.Compare(a.Name, c.Name); n != 0 {
			return n
		}
		return strings.Compare(a.Path, c.Path)
	}
	slices.SortFunc(dirs, byName)
	slices.SortFunc(files, byName)
	return newDir(b.name, b.path, append(dirs, files...))
}
