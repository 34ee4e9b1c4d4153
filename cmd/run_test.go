package main

import (
	"bytes"
	"errors"
	"os/exec"
	"testing"

	"github.com/Akashdeep-Patra/git-twig/internal/config"
	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statusOnly serves fixed porcelain output; every other call is unused here.
type statusOnly struct {
	git.Service
	snap      git.StatusSnapshot
	stats     git.StatTable
	statusErr error
}

func (s statusOnly) RepoRoot() string { return "/repo" }

func (s statusOnly) Status() (git.StatusSnapshot, error) { return s.snap, s.statusErr }

func (s statusOnly) DiffStats() (git.StatTable, error) { return s.stats, nil }

func sampleStatus() statusOnly {
	return statusOnly{
		snap: git.StatusSnapshot{
			Header: "## main...origin/main [ahead 1]",
			Lines:  []string{" M src/a.go", "M  src/b.go", "?? README.md"},
		},
		stats: git.StatTable{"src/a.go": {Added: 3, Deleted: 1}},
	}
}

func testConfig() *config.Config {
	return &config.Config{Indent: 3, Theme: tree.ThemeASCII, Editor: "code --wait"}
}

func TestPrintTree(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printTree(&out, sampleStatus(), testConfig(), tree.Filter{}))

	text := ansi.Strip(out.String())
	assert.Contains(t, text, "On branch main -> origin/main ⬆ 1")
	assert.Contains(t, text, "a.go")
	assert.Contains(t, text, "README.md")
	assert.Contains(t, text, "| 4 ")
}

func TestPrintTreeClean(t *testing.T) {
	svc := statusOnly{snap: git.StatusSnapshot{Header: "## main"}}
	var out bytes.Buffer
	require.NoError(t, printTree(&out, svc, testConfig(), tree.Filter{}))
	assert.Equal(t, "On branch main\n(working directory clean)\n", ansi.Strip(out.String()))
}

func TestPrintTreeFilteredEmptyIsNotClean(t *testing.T) {
	svc := statusOnly{snap: git.StatusSnapshot{Header: "## main", Lines: []string{" M src/a.go"}}}
	var out bytes.Buffer
	require.NoError(t, printTree(&out, svc, testConfig(), tree.Filter{StagedOnly: true}))

	got := ansi.Strip(out.String())
	assert.NotContains(t, got, "working directory clean")
	assert.NotContains(t, got, "a.go")
	assert.Contains(t, got, ".")
}

func TestPrintTreeStatusError(t *testing.T) {
	svc := statusOnly{statusErr: errors.New("boom")}
	err := printTree(&bytes.Buffer{}, svc, testConfig(), tree.Filter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading status")
}

func TestOpenFiles(t *testing.T) {
	var got *exec.Cmd
	start := func(c *exec.Cmd) error { got = c; return nil }

	var out bytes.Buffer
	require.NoError(t, openFiles(&out, sampleStatus(), testConfig(), tree.Filter{ModifiedOnly: true}, start))
	require.NotNil(t, got)
	assert.Equal(t, []string{"code", "--wait", "src/a.go", "src/b.go"}, got.Args)
	assert.Equal(t, "/repo", got.Dir)
	assert.Empty(t, out.String())
}

func TestOpenFilesNothingToOpen(t *testing.T) {
	called := false
	start := func(*exec.Cmd) error { called = true; return nil }

	var out bytes.Buffer
	require.NoError(t, openFiles(&out, sampleStatus(), testConfig(), tree.Filter{StagedOnly: true, UntrackedOnly: true}, start))
	assert.False(t, called)
	assert.Equal(t, "No modified files to open.\n", out.String())
}

func TestRootRejectsInteractiveOpen(t *testing.T) {
	cmd := buildRootCmd()
	cmd.SetArgs([]string{"-I", "-o"})
	cmd.SetOut(&bytes.Buffer{})
	assert.ErrorIs(t, cmd.Execute(), errInteractiveOpen)
}

func TestApplyFlagsOnlyWhenSet(t *testing.T) {
	cmd := buildRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"--indent", "42", "--theme", "Rounded"}))

	indent, _ := cmd.Flags().GetInt("indent")
	theme, _ := cmd.Flags().GetString("theme")
	opts := runOptions{indent: indent, theme: theme, collapse: false}

	cfg := &config.Config{Indent: 4, Theme: tree.ThemeNerd, Collapse: true}
	applyFlags(cmd, opts, cfg)

	assert.Equal(t, tree.MaxIndent, cfg.Indent, "clamped")
	assert.Equal(t, tree.ThemeRounded, cfg.Theme)
	assert.True(t, cfg.Collapse, "unset flag keeps the config value")
}
