package tree

import "strings"

// IconSet selects how row icons are chosen.
type IconSet int

// Icon sets.
const (
	IconsNone IconSet = iota
	IconsEmoji
	IconsNerd
)

// Theme is the glyph set used to draw connectors and stat bars.
type Theme struct {
	Name     string
	Vertical string
	Branch   string
	End      string
	Dash     string
	BarPlus  string
	BarMinus string
	Icons    IconSet
	// SimpleIcons replaces per-type Nerd icons with a generic folder/file pair.
	SimpleIcons bool
}

// Theme names, in cycling order.
const (
	ThemeASCII   = "ascii"
	ThemeUnicode = "unicode"
	ThemeRounded = "rounded"
	ThemeNerd    = "nerd"
)

var themeOrder = []string{ThemeASCII, ThemeUnicode, ThemeRounded, ThemeNerd}

// ThemeNames lists every built-in theme.
func ThemeNames() []string { return append([]string(nil), themeOrder...) }

// ASCII draws with plain 7-bit characters.
func ASCII() Theme {
	return Theme{
		Name: ThemeASCII, Vertical: "|", Branch: "|", End: "`", Dash: "-",
		BarPlus: "+", BarMinus: "-",
	}
}

// Unicode draws with box-drawing characters. It is the default.
func Unicode() Theme {
	return Theme{
		Name: ThemeUnicode, Vertical: "│", Branch: "├", End: "└", Dash: "─",
		BarPlus: "█", BarMinus: "█", Icons: IconsEmoji,
	}
}

// Rounded is Unicode with a rounded last-child corner.
func Rounded() Theme {
	t := Unicode()
	t.Name = ThemeRounded
	t.End = "╰"
	return t
}

// Nerd is Unicode plus per-file-type Nerd Font icons.
func Nerd() Theme {
	t := Unicode()
	t.Name = ThemeNerd
	t.Icons = IconsNerd
	return t
}

// ThemeByName resolves a theme name case-insensitively. Unknown names return
// Unicode and false.
func ThemeByName(name string) (Theme, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case ThemeASCII:
		return ASCII(), true
	case ThemeUnicode:
		return Unicode(), true
	case ThemeRounded:
		return Rounded(), true
	case ThemeNerd:
		return Nerd(), true
	default:
		return Unicode(), false
	}
}

// Next returns the theme after t in the cycle ascii, unicode, rounded, nerd.
// The simple-icon preference carries over.
func (t Theme) Next() Theme {
	next := Unicode()
	for i, name := range themeOrder {
		if name == t.Name {
			next, _ = ThemeByName(themeOrder[(i+1)%len(themeOrder)])
			break
		}
	}
	return next.WithSimpleIcons(t.SimpleIcons)
}

// WithSimpleIcons sets the simple-icon preference.
func (t Theme) WithSimpleIcons(simple bool) Theme {
	t.SimpleIcons = simple
	return t
}
