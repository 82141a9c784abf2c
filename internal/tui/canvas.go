package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/AliArsal1512/clarifai-app/internal/diagram"
)

// CellSize is the world size of one terminal cell at unit zoom. The width
// matches the Go Mono advance at 12pt so measured labels line up.
type CellSize struct {
	W, H float64
}

var DefaultCellSize = CellSize{W: 7.2, H: 14}

func (c CellSize) ToCell(p diagram.Point) (col, row int) {
	return int(math.Floor(p.X / c.W)), int(math.Floor(p.Y / c.H))
}

// ToPoint is the screen point at the center of a cell.
func (c CellSize) ToPoint(col, row int) diagram.Point {
	return diagram.Point{X: (float64(col) + 0.5) * c.W, Y: (float64(row) + 0.5) * c.H}
}

// Rect converts a cell rectangle to screen coordinates.
func (c CellSize) Rect(col, row, width, height int) diagram.Rect {
	return diagram.Rect{
		Min: diagram.Point{X: float64(col) * c.W, Y: float64(row) * c.H},
		Max: diagram.Point{X: float64(col+width) * c.W, Y: float64(row+height) * c.H},
	}
}

const (
	markCollapsed = "▸ "
	markExpanded  = "▾ "
	markLeaf      = "• "
	markComment   = " *"
)

// Style keys stored per cell.
const (
	keyNone      = ""
	keyLink      = "link"
	keyIndicator = "indicator"
	keyFocus     = "focus"
	keyPopup     = "popup"
	keyNodeAt    = "node:"
)

type hitPart int

const (
	hitNone hitPart = iota
	hitLabel
	hitIndicator
)

// hit is the screen footprint of one node label.
type hit struct {
	id        diagram.NodeID
	row       int
	from, to  int // [from, to) columns
	indicator int // column of the comment marker, -1 without one
}

// Canvas is a character grid for one rendered scene.
type Canvas struct {
	width, height int
	cells         [][]rune
	styles        [][]string
	hits          []hit
}

func NewCanvas(width, height int) *Canvas {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	c := &Canvas{width: width, height: height}
	c.cells = make([][]rune, height)
	c.styles = make([][]string, height)
	for i := range c.cells {
		c.cells[i] = make([]rune, width)
		c.styles[i] = make([]string, width)
		for j := range c.cells[i] {
			c.cells[i][j] = ' '
		}
	}
	return c
}

func (c *Canvas) isValidPos(x, y int) bool {
	return y >= 0 && y < c.height && x >= 0 && x < c.width
}

func (c *Canvas) set(x, y int, r rune, style string) {
	if !c.isValidPos(x, y) {
		return
	}
	c.cells[y][x] = r
	c.styles[y][x] = style
}

// put writes r and returns the column after it. Wide runes blank the cell
// they spill into.
func (c *Canvas) put(x, y int, r rune, style string) int {
	c.set(x, y, r, style)
	w := runewidth.RuneWidth(r)
	if w == 2 {
		c.set(x+1, y, 0, style)
	}
	return x + max(w, 1)
}

// Label is the text drawn for a node.
func Label(n diagram.PlacedNode) string {
	mark := markExpanded
	switch {
	case n.Collapsed:
		mark = markCollapsed
	case n.Leaf:
		mark = markLeaf
	}
	label := mark + n.Name
	if n.HasComment {
		label += markComment
	}
	return label
}

// RenderScene draws links first so labels are drawn over them.
func RenderScene(scene diagram.Scene, t diagram.Transform, cell CellSize, width, height int, focus diagram.NodeID) *Canvas {
	c := NewCanvas(width, height)

	byID := make(map[diagram.NodeID]diagram.SceneNode, len(scene.Nodes))
	for _, n := range scene.Nodes {
		byID[n.ID] = n
	}

	for _, l := range scene.Links {
		if l.Opacity < 0.5 {
			continue
		}
		fromCol, fromRow := cell.ToCell(t.Apply(l.From))
		toCol, toRow := cell.ToCell(t.Apply(l.To))
		if src, ok := byID[l.Source]; ok {
			fromCol += runewidth.StringWidth(Label(src.PlacedNode))
		}
		c.drawElbow(fromCol, fromRow, toCol-1, toRow)
	}

	for _, n := range scene.Nodes {
		if n.Opacity < 0.5 {
			continue
		}
		col, row := cell.ToCell(t.Apply(n.Point))
		style := keyNodeAt + n.Type
		if n.ID == focus {
			style = keyFocus
		}
		c.drawLabel(n.PlacedNode, col, row, style)
	}
	return c
}

// drawElbow connects two cells with a horizontal-vertical-horizontal path.
func (c *Canvas) drawElbow(x1, y1, x2, y2 int) {
	if x2 < x1 {
		x2 = x1
	}
	mid := x1 + (x2-x1)/2

	for x := x1; x <= mid; x++ {
		c.set(x, y1, '-', keyLink)
	}
	step := 1
	if y2 < y1 {
		step = -1
	}
	for y := y1; y != y2; y += step {
		c.set(mid, y, '|', keyLink)
	}
	for x := mid; x <= x2; x++ {
		c.set(x, y2, '-', keyLink)
	}
	if y1 != y2 {
		c.set(mid, y1, '+', keyLink)
		c.set(mid, y2, '+', keyLink)
	}
}

func (c *Canvas) drawLabel(n diagram.PlacedNode, col, row int, style string) {
	label := Label(n)
	x := col
	indicator := -1
	runes := []rune(label)
	for i, r := range runes {
		s := style
		if n.HasComment && i == len(runes)-1 {
			s = keyIndicator
			indicator = x
		}
		x = c.put(x, row, r, s)
	}
	c.hits = append(c.hits, hit{id: n.ID, row: row, from: col, to: x, indicator: indicator})
}

// HitTest finds the node label under a cell. Labels drawn later win.
func (c *Canvas) HitTest(col, row int) (diagram.NodeID, hitPart) {
	for i := len(c.hits) - 1; i >= 0; i-- {
		h := c.hits[i]
		if h.row != row || col < h.from || col >= h.to {
			continue
		}
		if h.indicator >= 0 && col >= h.indicator-1 {
			return h.id, hitIndicator
		}
		return h.id, hitLabel
	}
	return diagram.NoNode, hitNone
}

// Position returns the first cell of a node's label.
func (c *Canvas) Position(id diagram.NodeID) (col, row int, ok bool) {
	for _, h := range c.hits {
		if h.id == id {
			return h.from, h.row, true
		}
	}
	return 0, 0, false
}

// IndicatorCell returns the comment marker cell of a node.
func (c *Canvas) IndicatorCell(id diagram.NodeID) (col, row int, ok bool) {
	for _, h := range c.hits {
		if h.id == id && h.indicator >= 0 {
			return h.indicator, h.row, true
		}
	}
	return 0, 0, false
}

// DrawPopup draws a bordered box with its top-left corner at (x, y).
func (c *Canvas) DrawPopup(x, y int, lines []string) {
	width, height := PopupSize(lines)
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			switch {
			case (row == y || row == y+height-1) && (col == x || col == x+width-1):
				c.set(col, row, '+', keyPopup)
			case row == y || row == y+height-1:
				c.set(col, row, '-', keyPopup)
			case col == x || col == x+width-1:
				c.set(col, row, '|', keyPopup)
			default:
				c.set(col, row, ' ', keyPopup)
			}
		}
	}
	for i, line := range lines {
		col := x + 2
		for _, r := range line {
			col = c.put(col, y+1+i, r, keyPopup)
		}
	}
}

// Placeholder centers a dim message on an empty grid.
func (c *Canvas) Placeholder(text string) {
	col := max((c.width-runewidth.StringWidth(text))/2, 0)
	row := c.height / 2
	for _, r := range text {
		col = c.put(col, row, r, keyLink)
	}
}

// PopupSize is the cell size DrawPopup uses for lines.
func PopupSize(lines []string) (width, height int) {
	for _, l := range lines {
		width = max(width, runewidth.StringWidth(l))
	}
	return width + 4, len(lines) + 2
}

// Lines returns the grid as plain text.
func (c *Canvas) Lines() []string {
	out := make([]string, c.height)
	for i, row := range c.cells {
		var b strings.Builder
		for _, r := range row {
			if r != 0 {
				b.WriteRune(r)
			}
		}
		out[i] = b.String()
	}
	return out
}

// Render returns the grid with runs of equally styled cells colored.
func (c *Canvas) Render(styles map[string]lipgloss.Style) []string {
	out := make([]string, c.height)
	for i := range c.cells {
		var line strings.Builder
		var run strings.Builder
		current := keyNone
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if s, ok := styles[current]; ok && current != keyNone {
				line.WriteString(s.Render(run.String()))
			} else {
				line.WriteString(run.String())
			}
			run.Reset()
		}
		for j, r := range c.cells[i] {
			if c.styles[i][j] != current {
				flush()
				current = c.styles[i][j]
			}
			if r != 0 {
				run.WriteRune(r)
			}
		}
		flush()
		out[i] = line.String()
	}
	return out
}
