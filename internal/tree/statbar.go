package tree

import (
	"math"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
)

// Bar widths for row stats and the global footer.
const (
	RowBarCap    = 10
	FooterBarCap = 15
)

// ScaleBar returns how many plus and minus cells to draw for the given line
// counts. Totals within limit are drawn one cell per line; larger totals are
// scaled so the two counts sum to exactly limit.
func ScaleBar(added, deleted, limit int) (plus, minus int) {
	total := added + deleted
	if total <= limit {
		return added, deleted
	}
	plus = int(math.Round(float64(added) / float64(total) * float64(limit)))
	return plus, limit - plus
}

// Bar is the rendered plus and minus segments of a stat bar.
type Bar struct {
	Plus  string
	Minus string
}

// StatBar renders s as theme glyphs scaled to limit.
func (t Theme) StatBar(s git.LineStats, limit int) Bar {
	plus, minus := ScaleBar(s.Added, s.Deleted, limit)
	return Bar{
		Plus:  strings.Repeat(t.BarPlus, plus),
		Minus: strings.Repeat(t.BarMinus, minus),
	}
}
