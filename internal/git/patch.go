package git

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// ── Hunk parsing ────────────────────────────────────────────────────────────

const hunkMarker = "@@"

// ParseHunks splits a diff into its file headers (every line before the first
// "@@") and its hunks in file order. Colour escapes are stripped from the
// returned text, but line indices still refer to the original diff so they
// can drive scrolling of the coloured rendering.
func ParseHunks(diff string) ([]string, []Hunk) {
	if diff == "" {
		return nil, nil
	}
	lines := strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(ansi.Strip(l), "\r")
	}

	i := 0
	var headers []string
	for ; i < len(lines) && !strings.HasPrefix(lines[i], hunkMarker); i++ {
		headers = append(headers, lines[i])
	}

	var hunks []Hunk
	for i < len(lines) {
		start := i
		var b strings.Builder
		b.WriteString(lines[i])
		b.WriteByte('\n')
		for i++; i < len(lines) && !strings.HasPrefix(lines[i], hunkMarker); i++ {
			b.WriteString(lines[i])
			b.WriteByte('\n')
		}
		hunks = append(hunks, Hunk{
			Header:  lines[start],
			Content: b.String(),
			Start:   start,
			End:     i - 1,
		})
	}
	return headers, hunks
}

// BuildPatch assembles a patch for git apply from the file headers and a
// single hunk.
func BuildPatch(headers []string, h Hunk) string {
	var b strings.Builder
	for _, line := range headers {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(h.Content)
	return b.String()
}
