package diagram

import (
	"log/slog"
	"time"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

// Reason names what triggered a recompute.
type Reason int

const (
	ReasonLoad Reason = iota
	ReasonToggle
	ReasonExpandClass
	ReasonMode
	ReasonTheme
	ReasonResize
	ReasonFullscreen
	ReasonRestore
)

func (r Reason) String() string {
	switch r {
	case ReasonLoad:
		return "load"
	case ReasonToggle:
		return "toggle"
	case ReasonExpandClass:
		return "expand-class"
	case ReasonMode:
		return "mode"
	case ReasonTheme:
		return "theme"
	case ReasonResize:
		return "resize"
	case ReasonFullscreen:
		return "fullscreen"
	case ReasonRestore:
		return "restore"
	default:
		return "unknown"
	}
}

type Options struct {
	Mode              Mode
	Theme             Theme
	Layout            LayoutConfig
	Viewport          ViewportConfig
	AnimationDuration time.Duration
	Width, Height     float64
	Measurer          Measurer
	Logger            *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		Mode:              ModeCompressed,
		Theme:             ThemeLight,
		Layout:            DefaultLayoutConfig(),
		Viewport:          DefaultViewportConfig(),
		AnimationDuration: 750 * time.Millisecond,
		Width:             960,
		Height:            640,
	}
}

// Diagram wires the store, layout, differ and viewport of one diagram and
// turns user gestures into recomputes. Every method runs synchronously.
type Diagram struct {
	store    *Store
	layout   *Layout
	differ   *Differ
	viewport *Viewport
	logger   *slog.Logger

	theme      Theme
	fullscreen bool
	windowed   [2]float64

	current *Transition
	animSeq uint64

	tooltip   Tooltip
	listeners listeners
}

func New(opts Options) *Diagram {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagram{
		store:    NewStore(opts.Mode),
		layout:   NewLayout(opts.Layout, opts.Measurer, logger),
		differ:   NewDiffer(opts.AnimationDuration),
		viewport: NewViewport(opts.Viewport, opts.Width, opts.Height),
		logger:   logger,
		theme:    opts.Theme,
		tooltip:  Tooltip{Node: NoNode},
	}
}

func (d *Diagram) Store() *Store { return d.store }

func (d *Diagram) Viewport() *Viewport { return d.viewport }

func (d *Diagram) Theme() Theme { return d.theme }

func (d *Diagram) Palette() Palette { return PaletteFor(d.theme) }

func (d *Diagram) Fullscreen() bool { return d.fullscreen }

// Current is the most recent transition; its Frame is the current layout.
func (d *Diagram) Current() *Transition { return d.current }

func (d *Diagram) Frame() *Frame {
	if d.current == nil {
		return nil
	}
	return d.current.Frame
}

// Load shows a new document. The same submission delivered again keeps the
// current state untouched and returns nil.
func (d *Diagram) Load(doc *astdoc.Document) *Transition {
	if !d.store.Init(doc) {
		return nil
	}
	d.CloseTooltip()
	d.differ.Reset()
	return d.recompute(ReasonLoad, true)
}

// ClickNode toggles a node and animates only its subtree.
func (d *Diagram) ClickNode(id NodeID) *Transition {
	d.viewport.Capture()
	if !d.store.ToggleNode(id) {
		d.viewport.Restore()
		return nil
	}
	d.store.SetTarget(id)
	return d.recompute(ReasonToggle, true)
}

// ExpandClass is the class selector path. It does not pick an animation
// target, so the result animates everything only while the first paint of
// the submission is still pending.
func (d *Diagram) ExpandClass(name string) *Transition {
	d.viewport.Capture()
	if !d.store.ExpandClass(name) {
		d.viewport.Restore()
		return nil
	}
	return d.recompute(ReasonExpandClass, true)
}

// CollapseClass reverses ExpandClass.
func (d *Diagram) CollapseClass(name string) *Transition {
	d.viewport.Capture()
	if !d.store.CollapseClass(name) {
		d.viewport.Restore()
		return nil
	}
	return d.recompute(ReasonExpandClass, true)
}

// ToggleMode switches between compressed and full view.
func (d *Diagram) ToggleMode() *Transition {
	next := ModeFull
	if d.store.Mode() == ModeFull {
		next = ModeCompressed
	}
	return d.SetMode(next)
}

func (d *Diagram) SetMode(mode Mode) *Transition {
	d.viewport.Capture()
	if !d.store.SetMode(mode) {
		d.viewport.Restore()
		return nil
	}
	return d.recompute(ReasonMode, true)
}

// RestoreExpanded replaces the manual expansions, used when undoing a mode
// switch.
func (d *Diagram) RestoreExpanded(names []string) *Transition {
	d.viewport.Capture()
	d.store.setExpanded(NewExpandedSet(names...))
	return d.recompute(ReasonRestore, false)
}

// SetTheme repaints without animation.
func (d *Diagram) SetTheme(t Theme) *Transition {
	if t == d.theme {
		return nil
	}
	d.theme = t
	return d.recompute(ReasonTheme, false)
}

// Resize follows host window changes. A document that arrived before the
// host's first size was centered in the default area, so it is centered
// again unless the user already moved the view.
func (d *Diagram) Resize(width, height float64) *Transition {
	recenter := !d.viewport.Sized()
	d.viewport.Resize(width, height)
	if !d.fullscreen {
		d.windowed = [2]float64{width, height}
	}
	tr := d.recompute(ReasonResize, false)
	if recenter && !d.viewport.Moved() && tr.Frame.Len() > 0 {
		d.viewport.Center(tr.Frame)
	}
	return tr
}

// ToggleFullscreen switches the painted area between the window size and the
// given fullscreen size. Nothing animates.
func (d *Diagram) ToggleFullscreen(width, height float64) *Transition {
	if d.fullscreen {
		d.fullscreen = false
		w, h := d.windowed[0], d.windowed[1]
		if w == 0 && h == 0 {
			w, h = width, height
		}
		d.viewport.Resize(w, h)
	} else {
		d.windowed[0], d.windowed[1] = d.viewport.Size()
		d.fullscreen = true
		d.viewport.Resize(width, height)
	}
	return d.recompute(ReasonFullscreen, false)
}

// Complete is called by the host when the transition with seq finished. The
// animation scope is cleared only if seq is the transition that set it, so a
// stale completion cannot cut a newer animation short.
func (d *Diagram) Complete(seq uint64) bool {
	if seq == 0 || seq != d.animSeq {
		return false
	}
	d.store.ClearAnimation()
	d.animSeq = 0
	return true
}

// AnimationEligible reports whether a node of the current frame animates.
func (d *Diagram) AnimationEligible(id NodeID) bool {
	if d.current == nil {
		return false
	}
	for _, n := range d.current.Nodes {
		if n.Node.ID == id {
			return n.Animate
		}
	}
	return false
}

func (d *Diagram) recompute(reason Reason, animate bool) *Transition {
	start := time.Now()
	frame := d.layout.Compute(d.store.Visible())
	tr := d.differ.Diff(frame, d.store.Target(), d.store.FirstPaint(), animate)

	switch {
	case reason == ReasonLoad:
		d.viewport.Center(frame)
	case d.viewport.Restore():
		// transform captured before the interaction is back in place
	case !d.viewport.Initialized():
		d.viewport.Center(frame)
	}

	if animate && tr.Animated() {
		d.animSeq = tr.Seq
	} else if reason == ReasonLoad || reason == ReasonToggle {
		d.store.ClearAnimation()
	}
	d.current = tr

	enter, update, exit := tr.Counts()
	d.logger.Debug("diagram recomputed",
		slog.String("reason", reason.String()),
		slog.Uint64("seq", tr.Seq),
		slog.Int("enter", enter),
		slog.Int("update", update),
		slog.Int("exit", exit),
		slog.Bool("animated", tr.Animated()),
		slog.Duration("elapsed", time.Since(start)))
	return tr
}

// Tooltip returns the open tooltip, if any.
func (d *Diagram) Tooltip() (Tooltip, bool) {
	return d.tooltip, d.tooltip.Open
}

// OpenComment shows the comment of a node anchored at the click point. box
// and indicator are the screen rectangles of the popup and of the comment
// indicator that was clicked. Nodes without a real comment are ignored.
func (d *Diagram) OpenComment(id NodeID, at Point, box, indicator Rect) bool {
	n, ok := d.store.Node(id)
	if !ok || !n.HasComment() {
		return false
	}
	d.CloseTooltip()
	d.tooltip = Tooltip{
		Open:      true,
		Node:      id,
		Text:      n.Comment,
		Anchor:    at,
		Scale:     d.viewport.Transform().K,
		Box:       box,
		Indicator: indicator,
	}
	d.tooltip.unregister = d.listeners.add(func(p Point) {
		if d.tooltip.Box.Contains(p) || d.tooltip.Indicator.Contains(p) {
			return
		}
		d.CloseTooltip()
	})
	return true
}

// CloseTooltip dismisses the tooltip and drops its outside-click listener.
func (d *Diagram) CloseTooltip() {
	if !d.tooltip.Open {
		return
	}
	if d.tooltip.unregister != nil {
		d.tooltip.unregister()
	}
	d.tooltip = Tooltip{Node: NoNode}
}

// PointerDown delivers a click to registered outside-click listeners.
func (d *Diagram) PointerDown(at Point) {
	d.listeners.dispatch(at)
}

// ListenerCount is the number of registered pointer listeners.
func (d *Diagram) ListenerCount() int { return d.listeners.len() }

func (d *Diagram) ZoomIn() { d.viewport.ZoomIn() }

func (d *Diagram) ZoomOut() { d.viewport.ZoomOut() }

func (d *Diagram) ResetZoom() { d.viewport.Reset(d.Frame()) }
