package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrollWindow(t *testing.T) {
	tests := []struct {
		name                          string
		cursor, offset, height, total int
		want                          int
	}{
		{"fits", 5, 3, 10, 8, 0},
		{"cursor inside window", 6, 4, 5, 20, 4},
		{"cursor above", 2, 4, 5, 20, 2},
		{"cursor below", 12, 4, 5, 20, 8},
		{"clamped to the end", 19, 30, 5, 20, 15},
		{"no height", 3, 1, 0, 20, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ScrollWindow(tc.cursor, tc.offset, tc.height, tc.total))
		})
	}
}

func TestCentreWindow(t *testing.T) {
	assert.Equal(t, 0, CentreWindow(3, 10, 8))
	assert.Equal(t, 5, CentreWindow(10, 10, 40))
	assert.Equal(t, 0, CentreWindow(2, 10, 40))
	assert.Equal(t, 30, CentreWindow(39, 10, 40))
}

func TestTruncateAndPad(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "abc…", Truncate("abcdef", 4))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
}
