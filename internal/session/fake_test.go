package session

import (
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/stretchr/testify/require"
)

// fakeRepo simulates an index: every file carries an index letter (x) and a
// worktree letter (y) exactly as porcelain prints them.
type fakeRepo struct {
	files map[string][2]byte
	stats git.StatTable
	diffs map[string]string

	statusErr error
	stageErr  map[string]error
	applyErr  error
	diffErr   error

	diffCalls  []diffCall
	applied    []appliedPatch
	commits    []string
	worktrees  []git.Worktree
	switchedTo string
}

type diffCall struct {
	path      string
	staged    bool
	untracked bool
}

type appliedPatch struct {
	patch string
	opts  git.ApplyOptions
}

func newFakeRepo(files map[string]string) *fakeRepo {
	f := &fakeRepo{
		files:    make(map[string][2]byte),
		stats:    git.StatTable{},
		diffs:    map[string]string{},
		stageErr: map[string]error{},
	}
	for p, code := range files {
		f.files[p] = [2]byte{code[0], code[1]}
	}
	return f
}

// sampleRepo has one unstaged, one staged, one untracked and one nested
// staged file.
func sampleRepo() *fakeRepo {
	return newFakeRepo(map[string]string{
		"src/a.go":    " M",
		"src/b.go":    "M ",
		"README.md":   "??",
		"docs/x/y.md": "A ",
	})
}

func (f *fakeRepo) Status() (git.StatusSnapshot, error) {
	if f.statusErr != nil {
		return git.StatusSnapshot{}, f.statusErr
	}
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	snap := git.StatusSnapshot{Header: "## main...origin/main [ahead 1]"}
	for _, p := range paths {
		c := f.files[p]
		snap.Lines = append(snap.Lines, string(c[:])+" "+p)
	}
	return snap, nil
}

func (f *fakeRepo) DiffStats() (git.StatTable, error) { return f.stats, nil }

func (f *fakeRepo) matching(path string) []string {
	var out []string
	for p := range f.files {
		if path == "." || p == path || strings.HasPrefix(p, path+"/") {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeRepo) Stage(path string) error {
	if err := f.stageErr[path]; err != nil {
		return err
	}
	for _, p := range f.matching(path) {
		c := f.files[p]
		switch {
		case c[1] == '?':
			c = [2]byte{'A', ' '}
		case c[1] != ' ':
			if c[0] != 'A' {
				c[0] = c[1]
			}
			c[1] = ' '
		}
		f.files[p] = c
	}
	return nil
}

func (f *fakeRepo) Unstage(path string) error {
	for _, p := range f.matching(path) {
		c := f.files[p]
		switch {
		case c[0] == 'A':
			c = [2]byte{'?', '?'}
		case c[0] != ' ' && c[0] != '?':
			if c[1] == ' ' {
				c[1] = c[0]
			}
			c[0] = ' '
		}
		f.files[p] = c
	}
	return nil
}

func (f *fakeRepo) Commit(message string) error {
	f.commits = append(f.commits, message)
	return nil
}

func (f *fakeRepo) Diff(path string, staged, untracked bool) (string, error) {
	f.diffCalls = append(f.diffCalls, diffCall{path, staged, untracked})
	if f.diffErr != nil {
		return "", f.diffErr
	}
	return f.diffs[path], nil
}

func (f *fakeRepo) ApplyPatch(patch string, opts git.ApplyOptions) error {
	if f.applyErr != nil {
		return f.applyErr
	}
	f.applied = append(f.applied, appliedPatch{patch, opts})
	return nil
}

func (f *fakeRepo) WorktreeList() ([]git.Worktree, error) { return f.worktrees, nil }

func (f *fakeRepo) SwitchWorktree(path string) error {
	if path == "" {
		return errors.New("empty path")
	}
	f.switchedTo = path
	return nil
}

func (f *fakeRepo) code(path string) string {
	c := f.files[path]
	return string(c[:])
}

func newTestSession(t *testing.T, repo *fakeRepo) *Session {
	t.Helper()
	s, err := New(repo, Options{Indent: 3, Theme: tree.ASCII()})
	require.NoError(t, err)
	return s
}

func paths(rows []tree.FlatNode) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Path
	}
	return out
}

// selectPath moves the active cursor onto path.
func selectPath(t *testing.T, s *Session, path string) {
	t.Helper()
	for i, r := range s.Rows(s.ActivePane()) {
		if r.Path == path {
			s.setCursor(i)
			return
		}
	}
	t.Fatalf("path %q not in active pane", path)
}
