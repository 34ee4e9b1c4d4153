package tree

import (
	"testing"

	"github.com/Akashdeep-Patra/git-twig/internal/git"
	"github.com/stretchr/testify/assert"
)

func TestScaleBarWithinCap(t *testing.T) {
	plus, minus := ScaleBar(3, 2, RowBarCap)
	assert.Equal(t, 3, plus)
	assert.Equal(t, 2, minus)

	plus, minus = ScaleBar(0, 0, RowBarCap)
	assert.Zero(t, plus)
	assert.Zero(t, minus)
}

func TestScaleBarKeepsRatio(t *testing.T) {
	plus, minus := ScaleBar(30, 10, RowBarCap)
	assert.Equal(t, 8, plus)
	assert.Equal(t, 2, minus)

	plus, minus = ScaleBar(0, 500, FooterBarCap)
	assert.Equal(t, 0, plus)
	assert.Equal(t, 15, minus)
}

func TestScaleBarAlwaysSumsToCap(t *testing.T) {
	for _, limit := range []int{RowBarCap, FooterBarCap} {
		for added := 0; added < 60; added++ {
			for deleted := 0; deleted < 60; deleted++ {
				if added+deleted <= limit {
					continue
				}
				plus, minus := ScaleBar(added, deleted, limit)
				assert.Equal(t, limit, plus+minus, "added=%d deleted=%d", added, deleted)
				assert.GreaterOrEqual(t, minus, 0)
			}
		}
	}
}

func TestStatBarGlyphs(t *testing.T) {
	bar := ASCII().StatBar(git.LineStats{Added: 2, Deleted: 1}, RowBarCap)
	assert.Equal(t, Bar{Plus: "++", Minus: "-"}, bar)
}

func TestThemes(t *testing.T) {
	th, ok := ThemeByName("ROUNDED")
	assert.True(t, ok)
	assert.Equal(t, "╰", th.End)

	th, ok = ThemeByName("bogus")
	assert.False(t, ok)
	assert.Equal(t, ThemeUnicode, th.Name)

	cycle := ASCII()
	var seen []string
	for range 4 {
		cycle = cycle.Next()
		seen = append(seen, cycle.Name)
	}
	assert.Equal(t, []string{ThemeUnicode, ThemeRounded, ThemeNerd, ThemeASCII}, seen)

	simple := Nerd().WithSimpleIcons(true)
	assert.True(t, simple.Next().Next().Next().Next().SimpleIcons)
	assert.Equal(t, "", ASCII().Icon("main.go", false))
	assert.Equal(t, iconEmojiFolder+" ", Unicode().Icon("src", true))
	assert.Equal(t, "", Unicode().Icon("main.go", false))
}
