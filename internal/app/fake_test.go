package app

import (
	"sort"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
)

// fakeService is an in-memory git.Service: files carry porcelain XY codes.
type fakeService struct {
	files       map[string]string
	diffs       map[string]string
	worktrees   []git.Worktree
	stageErr    error
	commits     []string
	switchedTo  string
	invalidated int
}

var _ git.Service = (*fakeService)(nil)

func newFakeService() *fakeService {
	return &fakeService{
		files: map[string]string{
			"src/a.go":  " M",
			"README.md": "??",
		},
		diffs: map[string]string{
			"src/a.go": "diff --git a/src/a.go b/src/a.go\n--- a/src/a.go\n+++ b/src/a.go\n@@ -1 +1 @@\n-old\n+new\n",
		},
	}
}

func (f *fakeService) RepoRoot() string { return "/repo" }
func (f *fakeService) GitDir() string   { return "/repo/.git" }

func (f *fakeService) Status() (git.StatusSnapshot, error) {
	paths := make([]string, 0, len(f.files))
	for p := range f.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	snap := git.StatusSnapshot{Header: "## main...origin/main"}
	for _, p := range paths {
		snap.Lines = append(snap.Lines, f.files[p]+" "+p)
	}
	return snap, nil
}

func (f *fakeService) DiffStats() (git.StatTable, error) {
	return git.StatTable{"src/a.go": {Added: 1, Deleted: 1}}, nil
}

func (f *fakeService) each(path string, fn func(p, code string) string) {
	for p, code := range f.files {
		if path == "." || p == path || strings.HasPrefix(p, path+"/") {
			f.files[p] = fn(p, code)
		}
	}
}

func (f *fakeService) Stage(path string) error {
	if f.stageErr != nil {
		return f.stageErr
	}
	f.each(path, func(_, code string) string {
		if code == "??" {
			return "A "
		}
		return string(code[1]) + " "
	})
	return nil
}

func (f *fakeService) Unstage(path string) error {
	f.each(path, func(_, code string) string {
		if code[0] == 'A' {
			return "??"
		}
		return " " + string(code[0])
	})
	return nil
}

func (f *fakeService) Commit(message string) error {
	f.commits = append(f.commits, message)
	return nil
}

func (f *fakeService) Diff(path string, _, _ bool) (string, error) { return f.diffs[path], nil }

func (f *fakeService) ApplyPatch(string, git.ApplyOptions) error { return nil }

func (f *fakeService) WorktreeList() ([]git.Worktree, error) { return f.worktrees, nil }

func (f *fakeService) SwitchWorktree(path string) error {
	f.switchedTo = path
	return nil
}

func (f *fakeService) ConfigGet(string) (string, bool) { return "", false }

func (f *fakeService) ConfigGetRegexp(string) map[string]string { return nil }

func (f *fakeService) Invalidate() { f.invalidated++ }

type fakeWatcher struct{ targets []string }

func (w *fakeWatcher) Retarget(gitDir string) error {
	w.targets = append(w.targets, gitDir)
	return nil
}
