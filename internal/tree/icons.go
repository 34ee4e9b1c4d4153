package tree

import (
	"os"
	"time"

	devicons "github.com/epilande/go-devicons"
)

const (
	iconFolder      = "\uf07b"
	iconFile        = "\uf15b"
	iconEmojiFolder = "📁"
)

// iconFileInfo satisfies os.FileInfo for devicons lookups without touching
// the filesystem; deleted files still get an icon.
type iconFileInfo struct {
	name  string
	isDir bool
}

func (i iconFileInfo) Name() string { return i.name }

func (i iconFileInfo) Size() int64 { return 0 }

func (i iconFileInfo) Mode() os.FileMode {
	if i.isDir {
		return os.ModeDir | 0o755
	}
	return 0
}

func (i iconFileInfo) ModTime() time.Time { return time.Time{} }

func (i iconFileInfo) IsDir() bool { return i.isDir }

func (i iconFileInfo) Sys() any { return nil }

// Icon returns the icon for a row, followed by a space, or "" when the theme
// draws no icon for it.
func (t Theme) Icon(name string, isDir bool) string {
	var icon string
	switch t.Icons {
	case IconsEmoji:
		if isDir {
			icon = iconEmojiFolder
		}
	case IconsNerd:
		if t.SimpleIcons {
			break
		}
		icon = devicons.IconForInfo(iconFileInfo{name: name, isDir: isDir}).Icon
	}
	if t.Icons == IconsNerd && icon == "" {
		icon = iconFile
		if isDir {
			icon = iconFolder
		}
	}
	return iconWithSpace(icon)
}

func iconWithSpace(icon string) string {
	if icon == "" {
		return ""
	}
	return icon + " "
}
