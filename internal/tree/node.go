// Package tree turns parsed status records into a sorted, immutable
// directory tree and flattens that tree into display rows.
package tree

import "github.com/Akashdeep-Patra/git-twig/internal/git"

// RootPath is the path of the root directory node.
const RootPath = "."

// Node is one file or directory of a built tree. Nodes are never modified
// after Build returns; transforms produce new nodes.
type Node struct {
	Name string
	Path string
	// Status is the file's own status, or for directories the aggregate
	// over every descendant file.
	Status   git.Status
	Stats    *git.LineStats
	Children []*Node

	dir bool
}

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.dir }

// FileCount returns the number of file leaves below (or at) n.
func (n *Node) FileCount() int {
	if !n.dir {
		return 1
	}
	total := 0
	for _, c := range n.Children {
		total += c.FileCount()
	}
	return total
}

// DirPaths returns the path of every directory below n, excluding n itself.
func (n *Node) DirPaths() []string {
	var out []string
	var walk func(*Node)
	walk = func(cur *Node) {
		for _, c := range cur.Children {
			if c.dir {
				out = append(out, c.Path)
				walk(c)
			}
		}
	}
	walk(n)
	return out
}

// Files returns every file leaf below n in display order.
func (n *Node) Files() []*Node {
	if !n.dir {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Files()...)
	}
	return out
}

func newDir(name, path string, children []*Node) *Node {
	return &Node{
		Name:     name,
		Path:     path,
		Status:   aggregate(children),
		Children: children,
		dir:      true,
	}
}

// aggregate is "M+" when every descendant file is staged, "M" when at least
// one is not, and empty when there are no files at all.
func aggregate(children []*Node) git.Status {
	seen := false
	for _, c := range children {
		if c.dir && c.Status == "" {
			continue
		}
		seen = true
		if !c.Status.Staged() {
			return "M"
		}
	}
	if !seen {
		return ""
	}
	return "M+"
}
