package diagram

import (
	"math"
	"time"
)

type Change int

const (
	Enter Change = iota
	Update
	Exit
)

func (c Change) String() string {
	switch c {
	case Enter:
		return "enter"
	case Update:
		return "update"
	case Exit:
		return "exit"
	default:
		return "unknown"
	}
}

// NodeTransition describes how one node moves between two frames.
type NodeTransition struct {
	Node        PlacedNode
	Change      Change
	Animate     bool
	From, To    Point
	FromOpacity float64
	ToOpacity   float64
}

type LinkTransition struct {
	Link        PlacedLink
	Change      Change
	Animate     bool
	FromSource  Point
	FromTarget  Point
	ToSource    Point
	ToTarget    Point
	FromOpacity float64
	ToOpacity   float64
}

// Transition is the reconciled change between the previous and the new frame.
type Transition struct {
	Seq      uint64
	Duration time.Duration
	Frame    *Frame
	Nodes    []NodeTransition
	Links    []LinkTransition
}

// Animated reports whether any element moves over time.
func (t *Transition) Animated() bool {
	if t == nil {
		return false
	}
	for _, n := range t.Nodes {
		if n.Animate {
			return true
		}
	}
	for _, l := range t.Links {
		if l.Animate {
			return true
		}
	}
	return false
}

// Counts returns the number of entering, updated and exiting nodes.
func (t *Transition) Counts() (enter, update, exit int) {
	for _, n := range t.Nodes {
		switch n.Change {
		case Enter:
			enter++
		case Update:
			update++
		case Exit:
			exit++
		}
	}
	return enter, update, exit
}

// SceneNode is a node sampled at some point of a transition.
type SceneNode struct {
	PlacedNode
	Opacity float64
}

type SceneLink struct {
	LinkKey
	From, To Point
	Opacity  float64
}

// Scene is what gets painted for one animation tick.
type Scene struct {
	Nodes []SceneNode
	Links []SceneLink
}

// At samples the transition at progress p in [0, 1]. Elements that are not
// animated are already at their final state for every p, and exited ones
// that do not animate are dropped immediately.
func (t *Transition) At(p float64) Scene {
	var scene Scene
	if t == nil {
		return scene
	}
	p = math.Max(0, math.Min(1, p))
	e := easeCubicInOut(p)
	done := p >= 1

	for _, l := range t.Links {
		if l.Change == Exit && (!l.Animate || done) {
			continue
		}
		k := 1.0
		if l.Animate {
			k = e
		}
		scene.Links = append(scene.Links, SceneLink{
			LinkKey: l.Link.LinkKey,
			From:    lerpPoint(l.FromSource, l.ToSource, k),
			To:      lerpPoint(l.FromTarget, l.ToTarget, k),
			Opacity: lerp(l.FromOpacity, l.ToOpacity, k),
		})
	}
	for _, n := range t.Nodes {
		if n.Change == Exit && (!n.Animate || done) {
			continue
		}
		k := 1.0
		if n.Animate {
			k = e
		}
		sn := SceneNode{PlacedNode: n.Node, Opacity: lerp(n.FromOpacity, n.ToOpacity, k)}
		sn.Point = lerpPoint(n.From, n.To, k)
		scene.Nodes = append(scene.Nodes, sn)
	}
	return scene
}

// Final is the scene once the transition has completed.
func (t *Transition) Final() Scene { return t.At(1) }

// Differ reconciles consecutive frames of one diagram.
type Differ struct {
	prev     *Frame
	seq      uint64
	duration time.Duration
}

func NewDiffer(duration time.Duration) *Differ {
	return &Differ{duration: duration}
}

// Reset forgets the previous frame, so the next diff treats every element as
// entering.
func (d *Differ) Reset() { d.prev = nil }

func (d *Differ) Previous() *Frame { return d.prev }

func (d *Differ) Seq() uint64 { return d.seq }

// Diff classifies the elements of next against the previous frame and
// decides which of them animate. next becomes the previous frame for the
// following call.
func (d *Differ) Diff(next *Frame, target NodeID, firstPaint bool, animate bool) *Transition {
	prev := d.prev
	d.prev = next
	d.seq++

	tr := &Transition{Seq: d.seq, Duration: d.duration, Frame: next}

	eligible := func(id NodeID, in *Frame) bool {
		if !animate {
			return false
		}
		if target == NoNode {
			return firstPaint
		}
		return in.IsWithin(id, target)
	}

	for _, n := range next.Nodes {
		nt := NodeTransition{
			Node:        n,
			To:          n.Point,
			FromOpacity: 1,
			ToOpacity:   1,
			Animate:     eligible(n.ID, next),
		}
		if old, ok := prev.Node(n.ID); ok {
			nt.Change = Update
			nt.From = old.Point
		} else {
			nt.Change = Enter
			nt.From = enterOrigin(prev, next, n.ID)
			nt.FromOpacity = 0
		}
		tr.Nodes = append(tr.Nodes, nt)
	}

	if prev != nil {
		for _, n := range prev.Nodes {
			if _, ok := next.Node(n.ID); ok {
				continue
			}
			tr.Nodes = append(tr.Nodes, NodeTransition{
				Node:        n,
				Change:      Exit,
				Animate:     eligible(n.ID, prev),
				From:        n.Point,
				To:          exitDestination(prev, next, n.ID),
				FromOpacity: 1,
				ToOpacity:   0,
			})
		}
	}

	nextLinks := make(map[LinkKey]bool, len(next.Links))
	for _, l := range next.Links {
		nextLinks[l.LinkKey] = true
		lt := LinkTransition{
			Link:        l,
			Animate:     eligible(l.Target, next),
			ToSource:    l.From,
			ToTarget:    l.To,
			FromOpacity: 1,
			ToOpacity:   1,
		}
		if old, ok := prev.link(l.LinkKey); ok {
			lt.Change = Update
			lt.FromSource, lt.FromTarget = old.From, old.To
		} else {
			lt.Change = Enter
			origin := enterOrigin(prev, next, l.Target)
			lt.FromSource, lt.FromTarget = origin, origin
			lt.FromOpacity = 0
		}
		tr.Links = append(tr.Links, lt)
	}
	if prev != nil {
		for _, l := range prev.Links {
			if nextLinks[l.LinkKey] {
				continue
			}
			dest := exitDestination(prev, next, l.Target)
			if src, ok := next.Node(l.Source); ok {
				dest = src.Point
			}
			tr.Links = append(tr.Links, LinkTransition{
				Link:        l,
				Change:      Exit,
				Animate:     eligible(l.Target, prev),
				FromSource:  l.From,
				FromTarget:  l.To,
				ToSource:    dest,
				ToTarget:    dest,
				FromOpacity: 1,
				ToOpacity:   0,
			})
		}
	}
	return tr
}

func (f *Frame) link(key LinkKey) (PlacedLink, bool) {
	if f == nil {
		return PlacedLink{}, false
	}
	if f.byLink == nil {
		f.index()
	}
	i, ok := f.byLink[key]
	if !ok {
		return PlacedLink{}, false
	}
	return f.Links[i], true
}

// enterOrigin is where an entering node starts: the previous position of its
// nearest ancestor that was already on screen, or its parent's new position.
func enterOrigin(prev, next *Frame, id NodeID) Point {
	n, ok := next.Node(id)
	if !ok {
		return Point{}
	}
	for cur := n.Parent; cur != NoNode; {
		if old, ok := prev.Node(cur); ok {
			return old.Point
		}
		p, ok := next.Node(cur)
		if !ok {
			break
		}
		cur = p.Parent
	}
	if p, ok := next.Node(n.Parent); ok {
		return p.Point
	}
	return n.Point
}

// exitDestination is where an exiting node goes: the new position of its
// nearest ancestor that survives into the next frame.
func exitDestination(prev, next *Frame, id NodeID) Point {
	n, ok := prev.Node(id)
	if !ok {
		return Point{}
	}
	for cur := n.Parent; cur != NoNode; {
		if survivor, ok := next.Node(cur); ok {
			return survivor.Point
		}
		p, ok := prev.Node(cur)
		if !ok {
			break
		}
		cur = p.Parent
	}
	return n.Point
}

func easeCubicInOut(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func lerpPoint(a, b Point, t float64) Point {
	return Point{X: lerp(a.X, b.X, t), Y: lerp(a.Y, b.Y, t)}
}
