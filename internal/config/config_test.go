package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0o600))
	return dir
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, tree.DefaultIndent, cfg.Indent)
	assert.Equal(t, "unicode", cfg.Theme)
	assert.False(t, cfg.Collapse)
	assert.True(t, cfg.Watch)
	assert.Empty(t, cfg.Keys)
	assert.Empty(t, cfg.DebugLog)
}

func TestLoadFile(t *testing.T) {
	dir := writeConfig(t, `
indent: 20
collapse: true
theme: Rounded
simple_icons: true
watch: false
editor: nano
keys:
  stage: x
  Quit: Q
`)
	cfg, err := load(dir)
	require.NoError(t, err)

	assert.Equal(t, tree.MaxIndent, cfg.Indent, "clamped")
	assert.True(t, cfg.Collapse)
	assert.Equal(t, "rounded", cfg.Theme)
	assert.True(t, cfg.SimpleIcons)
	assert.False(t, cfg.Watch)
	assert.Equal(t, "nano", cfg.Editor)
	assert.Equal(t, map[string]string{"stage": "x", "quit": "Q"}, cfg.Keys)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, "indent: 4\ntheme: ascii\n")
	t.Setenv("TWIG_INDENT", "6")
	t.Setenv("TWIG_DEBUG_LOG", "/tmp/twig.log")

	cfg, err := load(dir)
	require.NoError(t, err)
	assert.Equal(t, 6, cfg.Indent)
	assert.Equal(t, "ascii", cfg.Theme)
	assert.Equal(t, "/tmp/twig.log", cfg.DebugLog)
}

func TestLoadUnknownThemeFallsBack(t *testing.T) {
	cfg, err := load(writeConfig(t, "theme: sparkly\n"))
	require.NoError(t, err)
	assert.Equal(t, "unicode", cfg.Theme)
}

func TestLoadBrokenFile(t *testing.T) {
	_, err := load(writeConfig(t, "indent: [\n"))
	require.Error(t, err)
}

type fakeGitConfig struct {
	values map[string]string
	keys   map[string]string
}

func (f fakeGitConfig) ConfigGet(key string) (string, bool) {
	v, ok := f.values[key]
	return v, ok
}

func (f fakeGitConfig) ConfigGetRegexp(string) map[string]string { return f.keys }

func TestApplyGit(t *testing.T) {
	cases := []struct {
		name   string
		git    fakeGitConfig
		assert func(t *testing.T, c *Config)
	}{
		{
			name: "indent is clamped",
			git:  fakeGitConfig{values: map[string]string{"twig.indent": "1"}},
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, tree.MinIndent, c.Indent)
			},
		},
		{
			name: "garbage indent is ignored",
			git:  fakeGitConfig{values: map[string]string{"twig.indent": "wide"}},
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, 5, c.Indent)
			},
		},
		{
			name: "collapse only accepts true",
			git:  fakeGitConfig{values: map[string]string{"twig.collapse": "yes"}},
			assert: func(t *testing.T, c *Config) {
				assert.False(t, c.Collapse)
			},
		},
		{
			name: "theme",
			git:  fakeGitConfig{values: map[string]string{"twig.theme": "nerd", "twig.collapse": "true"}},
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, "nerd", c.Theme)
				assert.True(t, c.Collapse)
			},
		},
		{
			name: "key overrides merge over file keys",
			git: fakeGitConfig{keys: map[string]string{
				"twig.key.stage":     "a",
				"twig.key.next_file": "n",
				"twig.keyboard":      "ignored",
			}},
			assert: func(t *testing.T, c *Config) {
				assert.Equal(t, map[string]string{"stage": "a", "quit": "Q", "next_file": "n"}, c.Keys)
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{Indent: 5, Theme: "ascii", Collapse: true, Keys: map[string]string{"stage": "x", "quit": "Q"}}
			c.ApplyGit(tc.git)
			tc.assert(t, c)
		})
	}
}

func TestTreeTheme(t *testing.T) {
	c := &Config{Theme: "nerd", SimpleIcons: true}
	th := c.TreeTheme()
	assert.Equal(t, "nerd", th.Name)
	assert.True(t, th.SimpleIcons)
}

func TestEditorCommand(t *testing.T) {
	t.Setenv("EDITOR", "")
	assert.Equal(t, "vim", (&Config{}).EditorCommand())

	t.Setenv("EDITOR", "emacs")
	assert.Equal(t, "emacs", (&Config{}).EditorCommand())
	assert.Equal(t, "hx", (&Config{Editor: "hx"}).EditorCommand())
}
