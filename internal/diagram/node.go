package diagram

import (
	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

// NodeID is a synthetic id assigned when a tree is built from a document.
// Derived trees keep the ids of the canonical tree they were copied from.
type NodeID int

const NoNode NodeID = -1

type ExpandState int

const (
	Expanded ExpandState = iota
	Collapsed
)

func (s ExpandState) String() string {
	if s == Collapsed {
		return "collapsed"
	}
	return "expanded"
}

func (s ExpandState) flip() ExpandState {
	if s == Expanded {
		return Collapsed
	}
	return Expanded
}

// Node is one element of the diagram tree. Children are owned by the node;
// State decides whether they are shown or hidden.
type Node struct {
	ID       NodeID
	Type     string
	Name     string
	Comment  string
	State    ExpandState
	Children []*Node

	parent *Node
}

// VisibleChildren returns the children when the node is expanded.
func (n *Node) VisibleChildren() []*Node {
	if n.State == Expanded {
		return n.Children
	}
	return nil
}

// HiddenChildren returns the children when the node is collapsed.
func (n *Node) HiddenChildren() []*Node {
	if n.State == Collapsed {
		return n.Children
	}
	return nil
}

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) IsClass() bool { return n.Type == astdoc.TypeClass }

func (n *Node) IsLeaf() bool { return len(n.Children) == 0 }

// HasComment reports whether the comment indicator should be drawn.
func (n *Node) HasComment() bool { return astdoc.HasComment(n.Comment) }

// Walk visits the node and every descendant, hidden ones included, in
// pre-order. Returning false from fn skips the node's subtree.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// WalkVisible is Walk restricted to expanded children.
func (n *Node) WalkVisible(fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.VisibleChildren() {
		child.WalkVisible(fn)
	}
}

// Clone deep-copies the subtree, keeping ids and states.
func (n *Node) Clone() *Node {
	return n.clone(nil)
}

func (n *Node) clone(parent *Node) *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		ID:      n.ID,
		Type:    n.Type,
		Name:    n.Name,
		Comment: n.Comment,
		State:   n.State,
		parent:  parent,
	}
	if len(n.Children) > 0 {
		c.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			c.Children[i] = child.clone(c)
		}
	}
	return c
}

// Find returns the node with the given id, searching hidden subtrees too.
func (n *Node) Find(id NodeID) *Node {
	var found *Node
	n.Walk(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

func (n *Node) findVisible(id NodeID) *Node {
	var found *Node
	n.WalkVisible(func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// IsDescendantOf walks the parent chain up to the root.
func (n *Node) IsDescendantOf(ancestor NodeID) bool {
	for p := n.parent; p != nil; p = p.parent {
		if p.ID == ancestor {
			return true
		}
	}
	return false
}

// BuildTree converts a document record tree into diagram nodes, assigning
// ids in pre-order. All nodes start expanded.
func BuildTree(root *astdoc.Record) *Node {
	if root == nil {
		return nil
	}
	next := NodeID(0)
	var build func(r *astdoc.Record, parent *Node) *Node
	build = func(r *astdoc.Record, parent *Node) *Node {
		n := &Node{
			ID:      next,
			Type:    r.Type,
			Name:    r.Name,
			Comment: r.Comment,
			State:   Expanded,
			parent:  parent,
		}
		next++
		for _, child := range r.Children {
			if child == nil {
				continue
			}
			n.Children = append(n.Children, build(child, n))
		}
		return n
	}
	return build(root, nil)
}

// ClassNames lists every class-typed name in the tree, hidden nodes included.
func ClassNames(root *Node) []string {
	var names []string
	seen := make(map[string]bool)
	root.Walk(func(n *Node) bool {
		if n.IsClass() && !seen[n.Name] {
			seen[n.Name] = true
			names = append(names, n.Name)
		}
		return true
	})
	return names
}
