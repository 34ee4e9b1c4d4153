package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Akashdeep-Patra/git-twig/internal/tree"
	"github.com/spf13/viper"
)

const appName = "git-twig"

// Config holds the resolved application configuration.
type Config struct {
	// Indent is the width of one tree level, clamped to 2..10.
	Indent int `mapstructure:"indent"`
	// Collapse merges single-child directory chains into one row.
	Collapse bool `mapstructure:"collapse"`
	// Theme name: ascii, unicode (default), rounded or nerd.
	Theme string `mapstructure:"theme"`
	// SimpleIcons replaces per-type nerd icons with a folder/file pair.
	SimpleIcons bool `mapstructure:"simple_icons"`
	// Editor used by open mode and the "e" key (falls back to $EDITOR).
	Editor string `mapstructure:"editor"`
	// DebugLog is a file that receives the debug log. Empty disables it.
	DebugLog string `mapstructure:"debug_log"`
	// Watch refreshes the interactive view when the repository changes.
	Watch bool `mapstructure:"watch"`
	// Keys maps action names to a replacement key.
	Keys map[string]string `mapstructure:"keys"`
}

// GitConfig is the part of the git surface that reads repository settings.
type GitConfig interface {
	ConfigGet(key string) (string, bool)
	ConfigGetRegexp(pattern string) map[string]string
}

// Load reads configuration from ~/.config/git-twig/config.yaml (or TOML/JSON)
// and TWIG_* environment variables on top of the defaults.
func Load() (*Config, error) {
	return load(configDirectory(), ".")
}

func load(dirs ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}

	setDefaults(v)

	v.SetEnvPrefix("TWIG")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("indent", tree.DefaultIndent)
	v.SetDefault("collapse", false)
	v.SetDefault("theme", tree.ThemeUnicode)
	v.SetDefault("simple_icons", false)
	v.SetDefault("editor", "")
	v.SetDefault("debug_log", "")
	v.SetDefault("watch", true)
	v.SetDefault("keys", map[string]string{})
}

func configDirectory() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ── git config layer ────────────────────────────────────────────────────────

const keyPrefix = "twig.key."

// ApplyGit overlays the twig.* settings of the repository's git config.
func (c *Config) ApplyGit(g GitConfig) {
	if v, ok := g.ConfigGet("twig.indent"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			c.Indent = n
		}
	}
	if v, ok := g.ConfigGet("twig.collapse"); ok {
		c.Collapse = strings.TrimSpace(v) == "true"
	}
	if v, ok := g.ConfigGet("twig.theme"); ok {
		c.Theme = strings.TrimSpace(v)
	}
	for k, v := range g.ConfigGetRegexp(`^twig\.key\.`) {
		action := strings.TrimPrefix(k, keyPrefix)
		if action == k || action == "" {
			continue
		}
		if c.Keys == nil {
			c.Keys = make(map[string]string)
		}
		c.Keys[action] = v
	}
	c.Normalize()
}

// Normalize brings hand-set fields back into range: the indent is clamped
// and an unknown theme becomes unicode.
func (c *Config) Normalize() {
	c.Indent = tree.ClampIndent(c.Indent)
	if _, ok := tree.ThemeByName(c.Theme); !ok {
		c.Theme = tree.ThemeUnicode
	}
	c.Theme = strings.ToLower(c.Theme)
	keys := make(map[string]string, len(c.Keys))
	for action, k := range c.Keys {
		keys[strings.ToLower(action)] = k
	}
	c.Keys = keys
}

// TreeTheme returns the glyph theme the settings select.
func (c *Config) TreeTheme() tree.Theme {
	t, _ := tree.ThemeByName(c.Theme)
	return t.WithSimpleIcons(c.SimpleIcons)
}

// EditorCommand returns the configured editor, then $EDITOR, then vim.
func (c *Config) EditorCommand() string {
	if c.Editor != "" {
		return c.Editor
	}
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	return "vim"
}
