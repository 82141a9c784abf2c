package diagram

import (
	"log/slog"
	"math"
)

// Measurer reports the rendered pixel width of a label.
type Measurer interface {
	Measure(text string, fontSize float64) (float64, error)
}

type LayoutConfig struct {
	MinColumnWidth       float64
	Padding              float64
	FontSize             float64
	RowHeight            float64
	SiblingSeparation    float64
	NonSiblingSeparation float64
}

func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		MinColumnWidth:       120,
		Padding:              12,
		FontSize:             12,
		RowHeight:            28,
		SiblingSeparation:    1,
		NonSiblingSeparation: 2,
	}
}

type Point struct {
	X, Y float64
}

// PlacedNode is a visible node with its layout position. X runs along the
// depth axis, Y along sibling order.
type PlacedNode struct {
	ID         NodeID
	Parent     NodeID
	Type       string
	Name       string
	Comment    string
	HasComment bool
	Collapsed  bool
	Leaf       bool
	Depth      int
	LabelWidth float64
	Point
}

type LinkKey struct {
	Source, Target NodeID
}

type PlacedLink struct {
	LinkKey
	From, To Point
}

type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

func (b Bounds) Width() float64  { return b.MaxX - b.MinX }
func (b Bounds) Height() float64 { return b.MaxY - b.MinY }

// Frame is one complete layout of the visible tree.
type Frame struct {
	Nodes       []PlacedNode
	Links       []PlacedLink
	Bounds      Bounds
	ColumnWidth float64

	byID   map[NodeID]int
	byLink map[LinkKey]int
}

// Node returns the placed node with the given id.
func (f *Frame) Node(id NodeID) (PlacedNode, bool) {
	if f == nil {
		return PlacedNode{}, false
	}
	i, ok := f.byID[id]
	if !ok {
		return PlacedNode{}, false
	}
	return f.Nodes[i], true
}

func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Nodes)
}

// Root returns the placed root, if any.
func (f *Frame) Root() (PlacedNode, bool) {
	if f.Len() == 0 {
		return PlacedNode{}, false
	}
	return f.Nodes[0], true
}

// IsWithin reports whether id is ancestor or one of its descendants,
// walking the parent chain up to the root.
func (f *Frame) IsWithin(id, ancestor NodeID) bool {
	for cur := id; cur != NoNode; {
		if cur == ancestor {
			return true
		}
		n, ok := f.Node(cur)
		if !ok {
			return false
		}
		cur = n.Parent
	}
	return false
}

func (f *Frame) index() {
	f.byID = make(map[NodeID]int, len(f.Nodes))
	for i, n := range f.Nodes {
		f.byID[n.ID] = i
	}
	f.byLink = make(map[LinkKey]int, len(f.Links))
	for i, l := range f.Links {
		f.byLink[l.LinkKey] = i
	}
}

type Layout struct {
	cfg      LayoutConfig
	measurer Measurer
	logger   *slog.Logger
}

func NewLayout(cfg LayoutConfig, measurer Measurer, logger *slog.Logger) *Layout {
	if logger == nil {
		logger = slog.Default()
	}
	return &Layout{cfg: cfg, measurer: measurer, logger: logger}
}

func (l *Layout) Config() LayoutConfig { return l.cfg }

// Compute lays out the visible tree. Label widths are measured over every
// node, hidden ones included, so the column width does not change when a
// subtree is toggled.
func (l *Layout) Compute(visible *Node) *Frame {
	frame := &Frame{ColumnWidth: l.cfg.MinColumnWidth}
	if visible == nil {
		frame.index()
		return frame
	}

	widths, maxWidth, ok := l.measureAll(visible)
	if ok {
		frame.ColumnWidth = math.Max(l.cfg.MinColumnWidth, maxWidth+2*l.cfg.Padding)
	}
	colWidth := frame.ColumnWidth

	sep := func(a, b *tidyNode) float64 {
		base := l.cfg.NonSiblingSeparation
		if a.parent == b.parent {
			base = l.cfg.SiblingSeparation
		}
		return base * math.Max(1, (widths[a.node.ID]+widths[b.node.ID])/colWidth)
	}

	placed := tidyTree(visible, sep)
	frame.Nodes = make([]PlacedNode, 0, len(placed))
	first := true
	for _, t := range placed {
		parent := NoNode
		if t.node.parent != nil {
			parent = t.node.parent.ID
		}
		pn := PlacedNode{
			ID:         t.node.ID,
			Parent:     parent,
			Type:       t.node.Type,
			Name:       t.node.Name,
			Comment:    t.node.Comment,
			HasComment: t.node.HasComment(),
			Collapsed:  t.node.State == Collapsed && !t.node.IsLeaf(),
			Leaf:       t.node.IsLeaf(),
			Depth:      t.depth,
			LabelWidth: widths[t.node.ID],
			Point: Point{
				X: float64(t.depth) * colWidth,
				Y: t.x * l.cfg.RowHeight,
			},
		}
		frame.Nodes = append(frame.Nodes, pn)

		if first {
			frame.Bounds = Bounds{MinX: pn.X, MinY: pn.Y, MaxX: pn.X, MaxY: pn.Y}
			first = false
		} else {
			frame.Bounds.MinX = math.Min(frame.Bounds.MinX, pn.X)
			frame.Bounds.MinY = math.Min(frame.Bounds.MinY, pn.Y)
			frame.Bounds.MaxX = math.Max(frame.Bounds.MaxX, pn.X)
			frame.Bounds.MaxY = math.Max(frame.Bounds.MaxY, pn.Y)
		}
	}
	frame.index()

	for _, n := range frame.Nodes {
		if n.Parent == NoNode {
			continue
		}
		p, _ := frame.Node(n.Parent)
		key := LinkKey{Source: n.Parent, Target: n.ID}
		frame.byLink[key] = len(frame.Links)
		frame.Links = append(frame.Links, PlacedLink{
			LinkKey: key,
			From:    p.Point,
			To:      n.Point,
		})
	}
	return frame
}

// measureAll returns the label width of every node. ok is false when any
// measurement failed; widths are then zero and the caller falls back to the
// minimum column width.
func (l *Layout) measureAll(root *Node) (map[NodeID]float64, float64, bool) {
	widths := make(map[NodeID]float64)
	if l.measurer == nil {
		return widths, 0, false
	}
	var maxWidth float64
	var failed error
	root.Walk(func(n *Node) bool {
		if failed != nil {
			return false
		}
		w, err := l.measurer.Measure(n.Name, l.cfg.FontSize)
		if err != nil {
			failed = err
			return false
		}
		widths[n.ID] = w
		maxWidth = math.Max(maxWidth, w)
		return true
	})
	if failed != nil {
		l.logger.Warn("label measurement failed, using minimum column width",
			slog.String("error", failed.Error()))
		return make(map[NodeID]float64), 0, false
	}
	return widths, maxWidth, true
}
