package diagram

// tidyNode is the working record of the Buchheim/Walker pass: prelim (z),
// modifier (m), change (c), shift (s), thread (t) and ancestor (a).
type tidyNode struct {
	node     *Node
	parent   *tidyNode
	children []*tidyNode
	index    int

	ancestor        *tidyNode
	defaultAncestor *tidyNode
	thread          *tidyNode

	prelim float64
	mod    float64
	change float64
	shift  float64

	x     float64
	depth int
}

type separationFunc func(a, b *tidyNode) float64

// tidyTree positions the visible part of root in linear time. The returned
// nodes hold x in separation units along the sibling axis and their depth.
func tidyTree(root *Node, sep separationFunc) []*tidyNode {
	if root == nil {
		return nil
	}

	// A synthetic parent keeps the root free of special cases.
	top := &tidyNode{}
	t := &tidyNode{node: root, parent: top}
	t.ancestor = t
	top.children = []*tidyNode{t}

	var order []*tidyNode
	var build func(v *tidyNode)
	build = func(v *tidyNode) {
		order = append(order, v)
		for i, child := range v.node.VisibleChildren() {
			c := &tidyNode{node: child, parent: v, index: i, depth: v.depth + 1}
			c.ancestor = c
			v.children = append(v.children, c)
		}
		for _, c := range v.children {
			build(c)
		}
	}
	build(t)

	var firstWalk func(v *tidyNode)
	firstWalk = func(v *tidyNode) {
		for _, c := range v.children {
			firstWalk(c)
		}
		var w *tidyNode
		if v.index > 0 {
			w = v.parent.children[v.index-1]
		}
		if len(v.children) > 0 {
			executeShifts(v)
			midpoint := (v.children[0].prelim + v.children[len(v.children)-1].prelim) / 2
			if w != nil {
				v.prelim = w.prelim + sep(v, w)
				v.mod = v.prelim - midpoint
			} else {
				v.prelim = midpoint
			}
		} else if w != nil {
			v.prelim = w.prelim + sep(v, w)
		}
		da := v.parent.defaultAncestor
		if da == nil {
			da = v.parent.children[0]
		}
		v.parent.defaultAncestor = apportion(v, w, da, sep)
	}
	firstWalk(t)

	top.mod = -t.prelim
	for _, v := range order {
		v.x = v.prelim + v.parent.mod
		v.mod += v.parent.mod
	}
	return order
}

func nextLeft(v *tidyNode) *tidyNode {
	if len(v.children) > 0 {
		return v.children[0]
	}
	return v.thread
}

func nextRight(v *tidyNode) *tidyNode {
	if len(v.children) > 0 {
		return v.children[len(v.children)-1]
	}
	return v.thread
}

func moveSubtree(wm, wp *tidyNode, shift float64) {
	change := shift / float64(wp.index-wm.index)
	wp.change -= change
	wp.shift += shift
	wm.change += change
	wp.prelim += shift
	wp.mod += shift
}

func executeShifts(v *tidyNode) {
	var shift, change float64
	for i := len(v.children) - 1; i >= 0; i-- {
		w := v.children[i]
		w.prelim += shift
		w.mod += shift
		change += w.change
		shift += w.shift + change
	}
}

func nextAncestor(vim, v, ancestor *tidyNode) *tidyNode {
	if vim.ancestor.parent == v.parent {
		return vim.ancestor
	}
	return ancestor
}

func apportion(v, w, ancestor *tidyNode, sep separationFunc) *tidyNode {
	if w == nil {
		return ancestor
	}
	vip, vop := v, v
	vim := w
	vom := vip.parent.children[0]
	sip, sop := vip.mod, vop.mod
	sim, som := vim.mod, vom.mod

	for {
		vim = nextRight(vim)
		vip = nextLeft(vip)
		if vim == nil || vip == nil {
			break
		}
		vom = nextLeft(vom)
		vop = nextRight(vop)
		vop.ancestor = v
		shift := vim.prelim + sim - vip.prelim - sip + sep(vim, vip)
		if shift > 0 {
			moveSubtree(nextAncestor(vim, v, ancestor), v, shift)
			sip += shift
			sop += shift
		}
		sim += vim.mod
		sip += vip.mod
		som += vom.mod
		sop += vop.mod
	}
	if vim != nil && nextRight(vop) == nil {
		vop.thread = vim
		vop.mod += sim - sop
	}
	if vip != nil && nextLeft(vom) == nil {
		vom.thread = vip
		vom.mod += sip - som
		ancestor = v
	}
	return ancestor
}
