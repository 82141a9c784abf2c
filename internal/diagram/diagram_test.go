package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

func TestDiagramExpandClassEndToEnd(t *testing.T) {
	d := newTestDiagram()
	first := d.Load(fooDoc(t))
	require.NotNil(t, first)
	assert.True(t, first.Animated())
	assert.Equal(t, 2, d.Frame().Len())

	foo := findByName(d.Store().Canonical(), "Foo")
	tr := d.ClickNode(foo.ID)
	require.NotNil(t, tr)
	assert.Equal(t, 3, d.Frame().Len())
	assert.True(t, d.Store().Expanded().Has("Foo"))

	bar := findByName(d.Store().Canonical(), "bar")
	root := d.Store().Canonical()
	assert.True(t, d.AnimationEligible(foo.ID))
	assert.True(t, d.AnimationEligible(bar.ID))
	assert.False(t, d.AnimationEligible(root.ID))

	// The load transition finishing late must not end the toggle's scope.
	assert.False(t, d.Complete(first.Seq))
	assert.Equal(t, foo.ID, d.Store().Target())

	assert.True(t, d.Complete(tr.Seq))
	assert.Equal(t, NoNode, d.Store().Target())
	assert.False(t, d.Store().FirstPaint())
}

func TestDiagramReloadOfSameSubmissionIsIgnored(t *testing.T) {
	d := newTestDiagram()
	require.NotNil(t, d.Load(fooDoc(t)))
	foo := findByName(d.Store().Canonical(), "Foo")
	d.ClickNode(foo.ID)

	assert.Nil(t, d.Load(fooDoc(t)))
	assert.Equal(t, 3, d.Frame().Len())
}

func TestDiagramLeafToggleKeepsViewport(t *testing.T) {
	d := newTestDiagram()
	d.SetMode(ModeFull)
	d.Load(shopDoc(t))
	d.Viewport().PanBy(-75, 33)
	d.ZoomIn()
	before := d.Viewport().Transform()

	leaf := findByName(d.Store().Canonical(), "private String sku")
	require.NotNil(t, d.ClickNode(leaf.ID))
	assert.Equal(t, before, d.Viewport().Transform())

	cart := findByName(d.Store().Canonical(), "Cart")
	require.NotNil(t, d.ClickNode(cart.ID))
	assert.Equal(t, before, d.Viewport().Transform())
}

func TestDiagramUnknownClickIsNoop(t *testing.T) {
	d := newTestDiagram()
	d.Load(fooDoc(t))
	current := d.Current()
	before := d.Viewport().Transform()

	assert.Nil(t, d.ClickNode(1234))
	assert.Same(t, current, d.Current())
	assert.Equal(t, before, d.Viewport().Transform())
	assert.False(t, d.Viewport().HasCaptured())
}

func TestDiagramLoadRecenters(t *testing.T) {
	d := newTestDiagram()
	d.Load(fooDoc(t))
	d.Viewport().PanBy(500, 500)

	d.Load(shopDoc(t))
	root, _ := d.Frame().Root()
	assert.InDelta(t, DefaultViewportConfig().Margin, d.Viewport().Transform().Apply(root.Point).X, 1e-9)
}

func TestDiagramFirstResizeRecentersEarlyDocument(t *testing.T) {
	d := newTestDiagram()
	d.Load(fooDoc(t))

	d.Resize(400, 200)
	root, _ := d.Frame().Root()
	assert.InDelta(t, 100.0, d.Viewport().Transform().Apply(root.Point).Y, 1e-9)

	// Later resizes keep the transform.
	before := d.Viewport().Transform()
	d.Resize(800, 600)
	assert.Equal(t, before, d.Viewport().Transform())
}

func TestDiagramFirstResizeKeepsUserPan(t *testing.T) {
	d := newTestDiagram()
	d.Load(fooDoc(t))
	d.Viewport().PanBy(30, 40)
	before := d.Viewport().Transform()

	d.Resize(400, 200)
	assert.Equal(t, before, d.Viewport().Transform())
}

func TestDiagramSelectorAfterFirstPaintIsStatic(t *testing.T) {
	d := newTestDiagram()
	first := d.Load(shopDoc(t))
	require.True(t, d.Complete(first.Seq))

	tr := d.ExpandClass("Cart")
	require.NotNil(t, tr)
	assert.False(t, tr.Animated())
	assert.Nil(t, d.ExpandClass("Missing"))
}

func TestDiagramSelectorDuringFirstPaintAnimates(t *testing.T) {
	d := newTestDiagram()
	d.Load(shopDoc(t))

	tr := d.ExpandClass("Cart")
	require.NotNil(t, tr)
	assert.True(t, tr.Animated())
}

func TestDiagramModeSwitch(t *testing.T) {
	d := newTestDiagram()
	d.Load(shopDoc(t))
	d.ExpandClass("Cart")

	require.NotNil(t, d.ToggleMode())
	assert.Equal(t, ModeFull, d.Store().Mode())
	assert.Empty(t, d.Store().Expanded())

	require.NotNil(t, d.ToggleMode())
	assert.Equal(t, ModeCompressed, d.Store().Mode())
	assert.Equal(t, 3, d.Frame().Len())

	d.RestoreExpanded([]string{"Cart"})
	assert.True(t, d.Store().Expanded().Has("Cart"))
	assert.Greater(t, d.Frame().Len(), 3)
}

func TestDiagramPassiveChangesDoNotAnimate(t *testing.T) {
	d := newTestDiagram()
	first := d.Load(fooDoc(t))

	tr := d.SetTheme(ThemeDark)
	require.NotNil(t, tr)
	assert.False(t, tr.Animated())
	assert.Nil(t, d.SetTheme(ThemeDark))
	assert.Equal(t, ThemeDark, d.Theme())

	tr = d.ToggleFullscreen(1920, 1080)
	assert.False(t, tr.Animated())
	assert.True(t, d.Fullscreen())
	w, h := d.Viewport().Size()
	assert.Equal(t, [2]float64{1920, 1080}, [2]float64{w, h})

	d.ToggleFullscreen(1920, 1080)
	w, h = d.Viewport().Size()
	assert.Equal(t, [2]float64{960, 640}, [2]float64{w, h})

	assert.False(t, d.Resize(1000, 700).Animated())

	// Passive recomputes leave the load animation scope in place.
	assert.True(t, d.Complete(first.Seq))
}

func TestDiagramTooltipRegistersListenerOnce(t *testing.T) {
	doc := newDoc(t, rec(astdoc.TypeRoot, "Root",
		&astdoc.Record{Type: astdoc.TypeMethod, Name: "run", Comment: "Starts the worker."},
		&astdoc.Record{Type: astdoc.TypeMethod, Name: "stop", Comment: "No comment available"}))
	d := newTestDiagram()
	d.Load(doc)

	run := findByName(d.Store().Canonical(), "run")
	stop := findByName(d.Store().Canonical(), "stop")
	box := Rect{Min: Point{X: 100, Y: 100}, Max: Point{X: 300, Y: 160}}
	indicator := Rect{Min: Point{X: 90, Y: 90}, Max: Point{X: 98, Y: 98}}

	assert.False(t, d.OpenComment(stop.ID, Point{X: 94, Y: 94}, box, indicator))
	assert.Equal(t, 0, d.ListenerCount())

	require.True(t, d.OpenComment(run.ID, Point{X: 94, Y: 94}, box, indicator))
	assert.Equal(t, 1, d.ListenerCount())
	require.True(t, d.OpenComment(run.ID, Point{X: 94, Y: 94}, box, indicator))
	assert.Equal(t, 1, d.ListenerCount())

	tip, open := d.Tooltip()
	require.True(t, open)
	assert.Equal(t, "Starts the worker.", tip.Text)

	// Clicks inside the popup or on the indicator keep it open.
	d.PointerDown(Point{X: 150, Y: 120})
	d.PointerDown(Point{X: 95, Y: 95})
	_, open = d.Tooltip()
	assert.True(t, open)

	d.PointerDown(Point{X: 600, Y: 600})
	_, open = d.Tooltip()
	assert.False(t, open)
	assert.Equal(t, 0, d.ListenerCount())
}

func TestDiagramLoadClosesTooltip(t *testing.T) {
	doc := newDoc(t, rec(astdoc.TypeRoot, "Root",
		&astdoc.Record{Type: astdoc.TypeMethod, Name: "run", Comment: "Starts the worker."}))
	d := newTestDiagram()
	d.Load(doc)
	run := findByName(d.Store().Canonical(), "run")
	require.True(t, d.OpenComment(run.ID, Point{}, Rect{}, Rect{}))

	d.Load(fooDoc(t))
	_, open := d.Tooltip()
	assert.False(t, open)
	assert.Equal(t, 0, d.ListenerCount())
}
