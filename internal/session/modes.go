package session

import "github.com/Akashdeep-Patra/git-twig/internal/tree"

// Layout is the arrangement of tree panes.
type Layout int

// Layouts. Cycling visits Unified, Split and Compact; EasterEgg is entered
// separately and cycles back to Unified.
const (
	LayoutUnified Layout = iota
	LayoutSplit
	LayoutCompact
	LayoutEasterEgg
)

// Next returns the following layout in the cycle.
func (l Layout) Next() Layout {
	switch l {
	case LayoutUnified:
		return LayoutSplit
	case LayoutSplit:
		return LayoutCompact
	default:
		return LayoutUnified
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutSplit:
		return "Split"
	case LayoutCompact:
		return "Compact"
	case LayoutEasterEgg:
		return "Tree"
	default:
		return "Unified"
	}
}

// FilterMode restricts which records the unified pane shows.
type FilterMode int

// Filter modes.
const (
	FilterAll FilterMode = iota
	FilterModified
	FilterStaged
)

// Next cycles All, Modified, Staged.
func (f FilterMode) Next() FilterMode {
	return (f + 1) % 3
}

func (f FilterMode) String() string {
	switch f {
	case FilterModified:
		return "Modified"
	case FilterStaged:
		return "Staged"
	default:
		return "All"
	}
}

func (f FilterMode) treeFilter() tree.Filter {
	switch f {
	case FilterModified:
		return tree.Filter{ModifiedOnly: true}
	case FilterStaged:
		return tree.Filter{StagedOnly: true}
	default:
		return tree.Filter{}
	}
}

// Focus is the active pane of the split layout.
type Focus int

// Split panes.
const (
	FocusUnstaged Focus = iota
	FocusStaged
)

// Next toggles between the two panes.
func (f Focus) Next() Focus {
	if f == FocusStaged {
		return FocusUnstaged
	}
	return FocusStaged
}

// View is the top-level screen.
type View int

// Views.
const (
	ViewTree View = iota
	ViewDiff
)

// Pane identifies one of the independently selected row lists.
type Pane int

// Panes.
const (
	PaneUnified Pane = iota
	PaneStaged
	PaneUnstaged
	paneCount
)
