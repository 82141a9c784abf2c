package diagram

// Rect is an axis-aligned screen rectangle.
type Rect struct {
	Min, Max Point
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// listeners is a registry of pointer-down callbacks keyed by registration.
type listeners struct {
	next int
	fns  map[int]func(Point)
}

func (l *listeners) add(fn func(Point)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(Point))
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	removed := false
	return func() {
		if removed {
			return
		}
		removed = true
		delete(l.fns, id)
	}
}

func (l *listeners) dispatch(p Point) {
	// Snapshot so callbacks may unregister themselves.
	fns := make([]func(Point), 0, len(l.fns))
	for _, fn := range l.fns {
		fns = append(fns, fn)
	}
	for _, fn := range fns {
		fn(p)
	}
}

func (l *listeners) len() int { return len(l.fns) }

// Tooltip is the comment popup of one node. Anchor is the click point; the
// box is not clamped to the container.
type Tooltip struct {
	Open      bool
	Node      NodeID
	Text      string
	Anchor    Point
	Scale     float64
	Box       Rect
	Indicator Rect

	unregister func()
}
