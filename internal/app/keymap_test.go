package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"space", " ", true},
		{"Enter", "enter", true},
		{"x", "x", true},
		{"é", "é", true},
		{"ctrl+x", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParseKey(tc.in)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApplyMovesKeyBetweenActions(t *testing.T) {
	k := DefaultKeyMap()
	k.Apply(map[string]string{"search": "j"})

	assert.Equal(t, []string{"j"}, k.Search.Keys())
	assert.Equal(t, []string{"down"}, k.Down.Keys())
	assert.Equal(t, "down", k.Down.Help().Key)
	assert.Equal(t, "j", k.Search.Help().Key)
}

func TestApplyAliasesAndNamedKeys(t *testing.T) {
	k := DefaultKeyMap()
	k.Apply(map[string]string{"Yank_Path": "space"})

	assert.Equal(t, []string{" "}, k.Yank.Keys())
	assert.Equal(t, "space", k.Yank.Help().Key)
	assert.Equal(t, []string{"s"}, k.Stage.Keys())
}

func TestApplySkipsUnknown(t *testing.T) {
	k := DefaultKeyMap()
	k.Apply(map[string]string{"launch_rockets": "x", "stage": "ctrl+alt+del"})
	assert.Equal(t, DefaultKeyMap().Stage.Keys(), k.Stage.Keys())
}

func TestHelpSectionsCoverEveryAction(t *testing.T) {
	k := DefaultKeyMap()
	seen := map[string]bool{}
	for _, s := range k.HelpSections() {
		for _, e := range s.Entries {
			seen[e.Desc] = true
		}
	}
	for name, b := range k.actions() {
		assert.True(t, seen[b.Help().Desc], "action %s missing from help", name)
	}
}
