package diagram

import "math"

// Transform is the pan/zoom applied at paint time: screen = world*K + (X, Y).
type Transform struct {
	X, Y, K float64
}

var Identity = Transform{K: 1}

// Apply maps a world point to the screen.
func (t Transform) Apply(p Point) Point {
	return Point{X: p.X*t.K + t.X, Y: p.Y*t.K + t.Y}
}

// Invert maps a screen point back to world coordinates.
func (t Transform) Invert(p Point) Point {
	if t.K == 0 {
		return p
	}
	return Point{X: (p.X - t.X) / t.K, Y: (p.Y - t.Y) / t.K}
}

type ViewportConfig struct {
	MinScale float64
	MaxScale float64
	ZoomStep float64
	Margin   float64
}

func DefaultViewportConfig() ViewportConfig {
	return ViewportConfig{
		MinScale: 0.1,
		MaxScale: 4,
		ZoomStep: 1.2,
		Margin:   40,
	}
}

type MouseButton int

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

// Viewport owns the pan/zoom transform of one diagram and keeps it stable
// across re-layouts.
type Viewport struct {
	cfg           ViewportConfig
	width, height float64
	t             Transform
	saved         *Transform
	initialized   bool
	// sized is set once a host reports its real size; moved once the user
	// pans or zooms.
	sized bool
	moved bool

	dragging  bool
	dragStart Point
	dragFrom  Transform
}

func NewViewport(cfg ViewportConfig, width, height float64) *Viewport {
	return &Viewport{cfg: cfg, width: width, height: height, t: Identity}
}

func (v *Viewport) Transform() Transform { return v.t }

func (v *Viewport) Size() (float64, float64) { return v.width, v.height }

func (v *Viewport) Initialized() bool { return v.initialized }

func (v *Viewport) Sized() bool { return v.sized }

// Moved reports whether the user panned or zoomed since the last centering.
func (v *Viewport) Moved() bool { return v.moved }

// Resize changes the painted area without touching the transform.
func (v *Viewport) Resize(width, height float64) {
	v.width, v.height = width, height
	v.sized = true
}

// Set replaces the transform, clamping the scale.
func (v *Viewport) Set(t Transform) {
	t.K = v.clamp(t.K)
	v.t = t
	v.initialized = true
}

// Capture remembers the current transform right before a mutating
// interaction.
func (v *Viewport) Capture() {
	t := v.t
	v.saved = &t
}

// Restore reapplies the captured transform verbatim and discards it. It
// reports whether there was anything to restore.
func (v *Viewport) Restore() bool {
	if v.saved == nil {
		return false
	}
	v.t = *v.saved
	v.saved = nil
	return true
}

func (v *Viewport) HasCaptured() bool { return v.saved != nil }

// Initial left-aligns the root at the margin and centers the tree's
// vertical extent.
func (v *Viewport) Initial(f *Frame) Transform {
	t := Identity
	root, ok := f.Root()
	if !ok {
		return t
	}
	t.X = v.cfg.Margin - root.X*t.K
	t.Y = v.height/2 - (f.Bounds.MinY+f.Bounds.MaxY)/2*t.K
	return t
}

// Center applies the initial transform for a new submission.
func (v *Viewport) Center(f *Frame) {
	v.Set(v.Initial(f))
	v.saved = nil
	v.moved = false
}

func (v *Viewport) ZoomIn() { v.zoomAt(v.cfg.ZoomStep, v.center()) }

func (v *Viewport) ZoomOut() { v.zoomAt(1/v.cfg.ZoomStep, v.center()) }

// Reset returns to unit scale. Content smaller than the viewport is
// re-centered, larger content is aligned to the margin.
func (v *Viewport) Reset(f *Frame) {
	t := Identity
	root, ok := f.Root()
	if !ok {
		v.Set(t)
		return
	}
	t.X = v.cfg.Margin - root.X
	if f.Bounds.Width()+2*v.cfg.Margin < v.width {
		t.X = (v.width-f.Bounds.Width())/2 - f.Bounds.MinX
	}
	if f.Bounds.Height()+2*v.cfg.Margin < v.height {
		t.Y = v.height/2 - (f.Bounds.MinY+f.Bounds.MaxY)/2
	} else {
		t.Y = v.cfg.Margin - f.Bounds.MinY
	}
	v.Set(t)
	v.moved = true
}

// Press starts a drag when the primary button goes down.
func (v *Viewport) Press(button MouseButton, at Point) bool {
	if button != ButtonPrimary {
		return false
	}
	v.dragging = true
	v.dragStart = at
	v.dragFrom = v.t
	return true
}

// Move pans while a drag is captured.
func (v *Viewport) Move(at Point) bool {
	if !v.dragging {
		return false
	}
	v.t.X = v.dragFrom.X + at.X - v.dragStart.X
	v.t.Y = v.dragFrom.Y + at.Y - v.dragStart.Y
	v.moved = true
	return true
}

// Release ends the drag.
func (v *Viewport) Release() bool {
	was := v.dragging
	v.dragging = false
	return was
}

func (v *Viewport) Dragging() bool { return v.dragging }

// PanBy moves the view by a screen delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.t.X += dx
	v.t.Y += dy
	v.moved = true
}

// Wheel zooms about the pointer when a modifier is held. Plain wheel input
// is left to the host and reported as unhandled.
func (v *Viewport) Wheel(deltaY float64, at Point, modifier bool) bool {
	if !modifier || deltaY == 0 {
		return false
	}
	factor := v.cfg.ZoomStep
	if deltaY > 0 {
		factor = 1 / factor
	}
	v.zoomAt(factor, at)
	return true
}

func (v *Viewport) center() Point {
	return Point{X: v.width / 2, Y: v.height / 2}
}

// zoomAt scales by factor keeping the world point under anchor fixed.
func (v *Viewport) zoomAt(factor float64, anchor Point) {
	k := v.clamp(v.t.K * factor)
	if k == v.t.K {
		return
	}
	world := v.t.Invert(anchor)
	v.t = Transform{
		X: anchor.X - world.X*k,
		Y: anchor.Y - world.Y*k,
		K: k,
	}
	v.moved = true
}

func (v *Viewport) clamp(k float64) float64 {
	if k == 0 || math.IsNaN(k) {
		k = 1
	}
	return math.Max(v.cfg.MinScale, math.Min(v.cfg.MaxScale, k))
}
