package components

import (
	"strings"
	"testing"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/Akashdeep-Patra/git-twig/internal/ui"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrollbar(t *testing.T) {
	styles := ui.DefaultStyles()
	assert.Empty(t, RenderScrollbar(styles, 10, 10, 0), "no bar when everything fits")

	top := strings.Split(ansi.Strip(RenderScrollbar(styles, 4, 8, 0)), "\n")
	require.Len(t, top, 4)
	assert.Equal(t, []string{"█", "█", "░", "░"}, top)

	bottom := strings.Split(ansi.Strip(RenderScrollbar(styles, 4, 8, 4)), "\n")
	assert.Equal(t, []string{"░", "░", "█", "█"}, bottom)
}

func TestStatusBar(t *testing.T) {
	data := StatusBarData{
		Branch:    git.BranchInfo{Branch: "main", Ahead: 2},
		FileCount: 3,
		Totals:    git.LineStats{Added: 4, Deleted: 2},
		Theme:     tree.ASCII(),
		Mode:      "VISUAL",
		Search:    "src",
	}
	out := ansi.Strip(RenderStatusBar(ui.DefaultStyles(), data, 120))
	assert.Contains(t, out, "main ⬆2")
	assert.Contains(t, out, "3 files changed | 6 ++++--")
	assert.Contains(t, out, "VISUAL")
	assert.Contains(t, out, "/src")
	assert.Contains(t, out, "[?] Help")

	data.Message = "index.lock exists"
	data.IsError = true
	out = ansi.Strip(RenderStatusBar(ui.DefaultStyles(), data, 120))
	assert.Contains(t, out, "index.lock exists")
	assert.NotContains(t, out, "[?] Help")
}

func TestStatusBarSingleFile(t *testing.T) {
	out := ansi.Strip(RenderStatusBar(ui.DefaultStyles(), StatusBarData{FileCount: 1, Theme: tree.ASCII()}, 80))
	assert.Contains(t, out, "(detached)")
	assert.Contains(t, out, "1 file changed")
}

func TestSideBySidePairsEdits(t *testing.T) {
	diff := "\x1b[1mdiff --git a/x b/x\x1b[m\n@@ -1,3 +1,3 @@\n ctx\n-old one\n-old two\n+new one\n"
	out := ansi.Strip(RenderSideBySideDiff(ui.DefaultStyles(), diff, 63))
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)

	left, right, ok := strings.Cut(lines[3], " │ ")
	require.True(t, ok)
	assert.Equal(t, "-old one", strings.TrimSpace(left))
	assert.Equal(t, "+new one", right)

	left, right, _ = strings.Cut(lines[4], " │ ")
	assert.Equal(t, "-old two", strings.TrimSpace(left))
	assert.Empty(t, right)
}

func TestSideBySideEmpty(t *testing.T) {
	assert.Equal(t, "No diff content", ansi.Strip(RenderSideBySideDiff(ui.DefaultStyles(), "", 80)))
}

func TestRenderHelpWrapsDescriptions(t *testing.T) {
	sections := []HelpSection{
		{Title: "Staging", Entries: []HelpEntry{
			{Key: "s", Desc: "stage"},
			{Key: "x", Desc: "a rather long description that has to wrap onto another line"},
		}},
		{Title: "Empty"},
	}
	out := ansi.Strip(RenderHelp(ui.DefaultStyles(), "Keys", sections, 40))
	assert.Contains(t, out, "Keys")
	assert.Contains(t, out, "Staging")
	assert.NotContains(t, out, "Empty", "sections without entries are skipped")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 40, line)
	}
}
