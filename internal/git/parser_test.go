package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusLine(t *testing.T) {
	tests := []struct {
		line     string
		wantPath string
		want     Status
	}{
		{"M  x", "x", "M+"},
		{"?? x", "x", "??"},
		{"D  x", "x", "D+"},
		{"MM x", "x", "M"},
		{"AM x", "x", "M"},
		{" M x", "x", "M"},
		{"A  dir/new.go", "dir/new.go", "A+"},
		{"R  a -> b", "a -> b", "R+"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			p, st, ok := ParseStatusLine(tt.line)
			require.True(t, ok)
			assert.Equal(t, tt.wantPath, p)
			assert.Equal(t, tt.want, st)
		})
	}
}

func TestParseStatusLineTooShort(t *testing.T) {
	for _, line := range []string{"", "M", "M ", "?? "} {
		_, _, ok := ParseStatusLine(line)
		assert.False(t, ok, "line %q", line)
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, Status("M+").Staged())
	assert.False(t, Status("M").Staged())
	assert.True(t, Status("??").Untracked())
	assert.Equal(t, '+', Status("A+").Class())
	assert.Equal(t, '?', Status("??").Class())
	assert.Equal(t, 'M', Status("D").Class())
	assert.Equal(t, ' ', Status("").Class())
	assert.Equal(t, "Deleted (staged)", Status("D+").Label())
	assert.Equal(t, "Untracked", Status("??").Label())
}

func TestParseStatusRecordRename(t *testing.T) {
	t.Run("same directory", func(t *testing.T) {
		e, ok := ParseStatusRecord("R  src/old.go -> src/new.go")
		require.True(t, ok)
		assert.Equal(t, "src/old.go", e.Path)
		assert.Equal(t, "src/new.go", e.StatsKey)
		assert.Equal(t, "old.go -> new.go", e.Name)
		assert.Equal(t, Status("R+"), e.Status)
	})

	t.Run("across directories", func(t *testing.T) {
		e, ok := ParseStatusRecord("R  src/old.go -> pkg/new.go")
		require.True(t, ok)
		assert.Equal(t, "src/old.go", e.Path)
		assert.Equal(t, "old.go -> pkg/new.go", e.Name)
	})

	t.Run("renamed then modified", func(t *testing.T) {
		e, ok := ParseStatusRecord("RM old.txt -> new.txt")
		require.True(t, ok)
		assert.Equal(t, "old.txt", e.Path)
		assert.Equal(t, "new.txt", e.StatsKey)
		assert.Equal(t, "old.txt -> new.txt", e.Name)
		assert.Equal(t, Status("M"), e.Status)
	})

	t.Run("arrow without rename status", func(t *testing.T) {
		e, ok := ParseStatusRecord("?? weird -> name")
		require.True(t, ok)
		assert.Equal(t, "weird -> name", e.Path)
		assert.Equal(t, "weird -> name", e.Name)
	})
}

func TestParseStatusRecordQuotedPath(t *testing.T) {
	e, ok := ParseStatusRecord(`?? "with space.txt"`)
	require.True(t, ok)
	assert.Equal(t, "with space.txt", e.Path)
	assert.Equal(t, "with space.txt", e.Name)
}

func TestParseStatusOutput(t *testing.T) {
	out := "## main...origin/main [ahead 1]\nM  a.go\n?? b.go\n\n"
	snap := ParseStatusOutput(out)
	assert.Equal(t, "## main...origin/main [ahead 1]", snap.Header)
	assert.Equal(t, []string{"M  a.go", "?? b.go"}, snap.Lines)
	assert.Equal(t, 1, snap.Branch().Ahead)

	clean := ParseStatusOutput("## main\n")
	assert.Empty(t, clean.Lines)
	assert.Equal(t, "main", clean.Branch().Branch)
}

func TestParseBranchHeader(t *testing.T) {
	tests := []struct {
		line string
		want BranchInfo
	}{
		{"## main", BranchInfo{Branch: "main"}},
		{"## main...origin/main", BranchInfo{Branch: "main", Upstream: "origin/main"}},
		{"## main...origin/main [ahead 1, behind 2]", BranchInfo{Branch: "main", Upstream: "origin/main", Ahead: 1, Behind: 2}},
		{"## feat...origin/feat [gone]", BranchInfo{Branch: "feat", Upstream: "origin/feat", Gone: true}},
		{"## No commits yet on main", BranchInfo{Branch: "main", NoCommits: true}},
		{"## HEAD (no branch)", BranchInfo{Branch: "HEAD (no branch)"}},
		{"", BranchInfo{}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBranchHeader(tt.line))
		})
	}
}

func TestParseNumstatSums(t *testing.T) {
	table := make(StatTable)
	ParseNumstat("3\t1\ta.go\n-\t-\timg.png\n", table)
	ParseNumstat("2\t0\ta.go\n", table)

	assert.Equal(t, LineStats{Added: 5, Deleted: 1}, table["a.go"])
	assert.Equal(t, LineStats{}, table["img.png"])
	assert.Equal(t, LineStats{Added: 5, Deleted: 1}, table.Totals())
}

func TestParseNumstatRenames(t *testing.T) {
	table := make(StatTable)
	ParseNumstat("1\t1\told.go => new.go\n2\t0\tsrc/{a => b}/f.go\n0\t1\tsrc/{ => sub}/g.go\n", table)

	assert.Contains(t, table, "new.go")
	assert.Contains(t, table, "src/b/f.go")
	assert.Contains(t, table, "src/sub/g.go")
}

func TestParseWorktreeList(t *testing.T) {
	out := "worktree /repo\nHEAD abc123\nbranch refs/heads/main\n\n" +
		"worktree /repo-wt\nHEAD def456\ndetached\n\n" +
		"worktree /bare\nbare\n"
	wts := ParseWorktreeList(out)
	require.Len(t, wts, 3)
	assert.Equal(t, Worktree{Path: "/repo", Head: "abc123", Branch: "refs/heads/main"}, wts[0])
	assert.Equal(t, "main", wts[0].ShortBranch())
	assert.Equal(t, "(no branch)", wts[1].ShortBranch())
	assert.True(t, wts[2].Bare)

	assert.Nil(t, ParseWorktreeList(""))
}

func TestParseConfigLines(t *testing.T) {
	m := parseConfigLines("twig.key.quit x\ntwig.key.stage space\ntwig.flag\n")
	assert.Equal(t, map[string]string{
		"twig.key.quit":  "x",
		"twig.key.stage": "space",
		"twig.flag":      "",
	}, m)
}
