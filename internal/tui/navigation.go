package tui

import "github.com/AliArsal1512/clarifai-app/internal/diagram"

// Pan steps in cells.
const (
	panCols = 4
	panRows = 2
)

func (m *Model) handleNavigation(k string, speed int) {
	if m.panMode {
		m.handlePan(k, speed)
		return
	}
	m.handleFocusMove(k, speed)
}

func (m *Model) handlePan(k string, speed int) {
	dx := float64(panCols*speed) * m.cell.W
	dy := float64(panRows*speed) * m.cell.H
	vp := m.diagram.Viewport()
	switch k {
	case "h", "left", "H", "shift+left":
		vp.PanBy(dx, 0)
	case "l", "right", "L", "shift+right":
		vp.PanBy(-dx, 0)
	case "k", "up", "K", "shift+up":
		vp.PanBy(0, dy)
	case "j", "down", "J", "shift+down":
		vp.PanBy(0, -dy)
	}
}

// handleFocusMove walks the visible tree: up and down follow document
// order, left goes to the parent and right to the first child.
func (m *Model) handleFocusMove(k string, speed int) {
	order := m.visibleOrder()
	if len(order) == 0 {
		m.focus = diagram.NoNode
		return
	}
	idx := -1
	for i, n := range order {
		if n.ID == m.focus {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.focus = order[0].ID
		m.ensureFocusVisible()
		return
	}

	n := order[idx]
	switch k {
	case "k", "up", "K", "shift+up":
		m.focus = order[max(0, idx-speed)].ID
	case "j", "down", "J", "shift+down":
		m.focus = order[min(len(order)-1, idx+speed)].ID
	case "h", "left", "H", "shift+left":
		for i := 0; i < speed && n.Parent() != nil; i++ {
			n = n.Parent()
		}
		m.focus = n.ID
	case "l", "right", "L", "shift+right":
		for i := 0; i < speed; i++ {
			children := n.VisibleChildren()
			if len(children) == 0 {
				break
			}
			n = children[0]
		}
		m.focus = n.ID
	}
	m.ensureFocusVisible()
}

func (m *Model) visibleOrder() []*diagram.Node {
	var order []*diagram.Node
	m.diagram.Store().Visible().WalkVisible(func(n *diagram.Node) bool {
		order = append(order, n)
		return true
	})
	return order
}

// ensureFocusVisible pans the view until the focused label's first cell is
// on the grid.
func (m *Model) ensureFocusVisible() {
	f := m.diagram.Frame()
	if f == nil {
		return
	}
	n, ok := f.Node(m.focus)
	if !ok {
		return
	}
	cols, rows := m.canvasSize()
	col, row := m.cell.ToCell(m.diagram.Viewport().Transform().Apply(n.Point))

	var dc, dr int
	switch {
	case col < 0:
		dc = -col + panCols
	case col >= cols-panCols:
		dc = cols - panCols - 1 - col
	}
	switch {
	case row < 0:
		dr = -row + panRows
	case row >= rows:
		dr = rows - panRows - row
	}
	if dc != 0 || dr != 0 {
		m.diagram.Viewport().PanBy(float64(dc)*m.cell.W, float64(dr)*m.cell.H)
	}
}

// focusNode returns the focused node if it is still visible.
func (m *Model) focusNode() (*diagram.Node, bool) {
	if m.focus == diagram.NoNode {
		return nil, false
	}
	for _, n := range m.visibleOrder() {
		if n.ID == m.focus {
			return n, true
		}
	}
	return nil, false
}
