package tree

// chainDivider joins the names of collapsed directories.
const chainDivider = "/"

// CollapseChains returns a copy of root in which every run of directories
// that each contain exactly one child directory is merged into a single
// node named "a/b/c". The merged node takes the path of the deepest
// directory so actions on it address a real directory. The root itself is
// never merged.
func CollapseChains(root *Node) *Node {
	if !root.dir {
		return root
	}
	children := make([]*Node, len(root.Children))
	for i, c := range root.Children {
		children[i] = collapseChain(c)
	}
	out := *root
	out.Children = children
	return &out
}

func collapseChain(n *Node) *Node {
	if !n.dir {
		return n
	}
	name := n.Name
	cur := n
	for len(cur.Children) == 1 && cur.Children[0].dir {
		cur = cur.Children[0]
		name += chainDivider + cur.Name
	}
	children := make([]*Node, len(cur.Children))
	for i, c := range cur.Children {
		children[i] = collapseChain(c)
	}
	return &Node{
		Name:     name,
		Path:     cur.Path,
		Status:   cur.Status,
		Children: children,
		dir:      true,
	}
}
