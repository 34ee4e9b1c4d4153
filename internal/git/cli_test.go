package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo creates a throwaway repository, skipping when git is missing.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	for _, args := range [][]string{
		{"init", "-q"},
		{"config", "user.email", "twig@example.com"},
		{"config", "user.name", "twig"},
		{"config", "commit.gpgsign", "false"},
	} {
		_, err := runGit(dir, nil, args...)
		require.NoError(t, err)
	}
	return dir
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestGitCommandsHaveNoDeadline(t *testing.T) {
	_, ok := gitContext().Deadline()
	assert.False(t, ok)
}

func TestNewCLIServiceRejectsNonRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	_, err := NewCLIService(t.TempDir())
	assert.ErrorIs(t, err, ErrNotARepo)
}

func TestCLIServiceStatusStageUnstage(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "base.txt", "one\n")
	s, err := NewCLIService(dir)
	require.NoError(t, err)
	require.NoError(t, s.Stage("base.txt"))
	require.NoError(t, s.Commit("initial"))

	writeFile(t, dir, "base.txt", "one\ntwo\n")
	writeFile(t, dir, "sub/new.txt", "new\n")

	snap, err := s.Status()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(snap.Header, "##"))
	assert.ElementsMatch(t, []string{" M base.txt", "?? sub/new.txt"}, snap.Lines)

	stats, err := s.DiffStats()
	require.NoError(t, err)
	assert.Equal(t, LineStats{Added: 1}, stats["base.txt"])

	require.NoError(t, s.Stage("base.txt"))
	snap, err = s.Status()
	require.NoError(t, err)
	assert.Contains(t, snap.Lines, "M  base.txt")

	require.NoError(t, s.Unstage("base.txt"))
	snap, err = s.Status()
	require.NoError(t, err)
	assert.Contains(t, snap.Lines, " M base.txt")
}

func TestCLIServiceDiffAndApply(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "f.txt", "a\nb\nc\n")
	s, err := NewCLIService(dir)
	require.NoError(t, err)
	require.NoError(t, s.Stage("f.txt"))
	require.NoError(t, s.Commit("initial"))

	writeFile(t, dir, "f.txt", "a\nB\nc\n")
	writeFile(t, dir, "u.txt", "untracked\n")

	diff, err := s.Diff("f.txt", false, false)
	require.NoError(t, err)
	headers, hunks := ParseHunks(diff)
	require.Len(t, hunks, 1)

	untracked, err := s.Diff("u.txt", false, true)
	require.NoError(t, err, "exit status 1 from --no-index must not be an error")
	assert.Contains(t, untracked, "untracked")

	require.NoError(t, s.ApplyPatch(BuildPatch(headers, hunks[0]), ApplyOptions{Cached: true}))
	staged, err := s.Diff("f.txt", true, false)
	require.NoError(t, err)
	assert.Contains(t, staged, "B")

	require.NoError(t, s.ApplyPatch(BuildPatch(headers, hunks[0]), ApplyOptions{Cached: true, Reverse: true}))
	staged, err = s.Diff("f.txt", true, false)
	require.NoError(t, err)
	assert.Empty(t, staged)
}

func TestCLIServiceConfig(t *testing.T) {
	dir := newTestRepo(t)
	_, err := runGit(dir, nil, "config", "twig.key.quit", "x")
	require.NoError(t, err)
	s, err := NewCLIService(dir)
	require.NoError(t, err)

	v, ok := s.ConfigGet("twig.key.quit")
	assert.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = s.ConfigGet("twig.missing")
	assert.False(t, ok)

	m := s.ConfigGetRegexp(`^twig\.key\.`)
	assert.Equal(t, "x", m["twig.key.quit"])
	assert.Empty(t, s.ConfigGetRegexp(`^nothing\.`))
}

func TestCLIServiceSwitchWorktree(t *testing.T) {
	dir := newTestRepo(t)
	writeFile(t, dir, "f.txt", "a\n")
	s, err := NewCLIService(dir)
	require.NoError(t, err)
	require.NoError(t, s.Stage("f.txt"))
	require.NoError(t, s.Commit("initial"))

	wtPath := filepath.Join(t.TempDir(), "linked")
	_, err = runGit(dir, nil, "worktree", "add", "-q", "-b", "linked", wtPath)
	require.NoError(t, err)

	wts, err := s.WorktreeList()
	require.NoError(t, err)
	require.Len(t, wts, 2)

	t.Chdir(dir)
	require.NoError(t, s.SwitchWorktree(wtPath))
	realWt, err := filepath.EvalSymlinks(wtPath)
	require.NoError(t, err)
	realRoot, err := filepath.EvalSymlinks(s.RepoRoot())
	require.NoError(t, err)
	assert.Equal(t, realWt, realRoot)
}
