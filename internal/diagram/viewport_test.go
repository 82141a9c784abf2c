package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformApplyInvert(t *testing.T) {
	tr := Transform{X: 30, Y: -12, K: 2}
	p := Point{X: 5, Y: 7}

	screen := tr.Apply(p)
	assert.Equal(t, Point{X: 40, Y: 2}, screen)
	assert.Equal(t, p, tr.Invert(screen))
}

func TestViewportZoomIsClamped(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)

	for i := 0; i < 50; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, 4.0, v.Transform().K)

	for i := 0; i < 100; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, 0.1, v.Transform().K)

	v.Set(Transform{K: 100})
	assert.Equal(t, 4.0, v.Transform().K)
}

func TestViewportZoomKeepsAnchorFixed(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	v.Set(Transform{X: 50, Y: 20, K: 1})
	anchor := Point{X: 300, Y: 200}
	world := v.Transform().Invert(anchor)

	require.True(t, v.Wheel(-1, anchor, true))
	after := v.Transform()
	assert.InDelta(t, 1.2, after.K, 1e-9)
	got := after.Apply(world)
	assert.InDelta(t, anchor.X, got.X, 1e-9)
	assert.InDelta(t, anchor.Y, got.Y, 1e-9)
}

func TestViewportWheelNeedsModifier(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	before := v.Transform()

	assert.False(t, v.Wheel(-3, Point{X: 10, Y: 10}, false))
	assert.Equal(t, before, v.Transform())

	assert.True(t, v.Wheel(3, Point{X: 10, Y: 10}, true))
	assert.Less(t, v.Transform().K, before.K)
}

func TestViewportDragPans(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	v.Set(Transform{X: 10, Y: 10, K: 1.5})

	assert.False(t, v.Press(ButtonSecondary, Point{}))
	assert.False(t, v.Move(Point{X: 99, Y: 99}))

	require.True(t, v.Press(ButtonPrimary, Point{X: 100, Y: 100}))
	assert.True(t, v.Dragging())
	require.True(t, v.Move(Point{X: 130, Y: 80}))
	assert.Equal(t, Transform{X: 40, Y: -10, K: 1.5}, v.Transform())

	assert.True(t, v.Release())
	assert.False(t, v.Release())
	assert.False(t, v.Move(Point{X: 0, Y: 0}))
	assert.Equal(t, Transform{X: 40, Y: -10, K: 1.5}, v.Transform())
}

func TestViewportCaptureRestore(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	v.Set(Transform{X: 12, Y: 34, K: 0.8})

	assert.False(t, v.Restore())
	v.Capture()
	assert.True(t, v.HasCaptured())
	v.PanBy(500, 500)

	assert.True(t, v.Restore())
	assert.Equal(t, Transform{X: 12, Y: 34, K: 0.8}, v.Transform())
	assert.False(t, v.HasCaptured())
}

func TestViewportInitialCentersTree(t *testing.T) {
	frame := computeFrame(t, &charMeasurer{}, ModeFull, shopDoc(t))
	v := NewViewport(DefaultViewportConfig(), 800, 600)

	v.Center(frame)
	assert.True(t, v.Initialized())

	tr := v.Transform()
	root, _ := frame.Root()
	assert.Equal(t, 1.0, tr.K)
	assert.InDelta(t, 40, tr.Apply(root.Point).X, 1e-9)
	mid := (frame.Bounds.MinY + frame.Bounds.MaxY) / 2
	assert.InDelta(t, 300, tr.Apply(Point{Y: mid}).Y, 1e-9)
}

func TestViewportResetCentersSmallContent(t *testing.T) {
	frame := computeFrame(t, &charMeasurer{}, ModeFull, fooDoc(t))
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	v.Set(Transform{X: -999, Y: 999, K: 3})

	v.Reset(frame)
	tr := v.Transform()
	assert.Equal(t, 1.0, tr.K)
	left := tr.Apply(Point{X: frame.Bounds.MinX}).X
	right := tr.Apply(Point{X: frame.Bounds.MaxX}).X
	assert.InDelta(t, 800-right, left, 1e-9)
}

func TestViewportResizeKeepsTransform(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	v.Set(Transform{X: 1, Y: 2, K: 3})

	v.Resize(1920, 1080)
	w, h := v.Size()
	assert.Equal(t, 1920.0, w)
	assert.Equal(t, 1080.0, h)
	assert.Equal(t, Transform{X: 1, Y: 2, K: 3}, v.Transform())
}

func TestViewportTracksSizingAndUserMoves(t *testing.T) {
	v := NewViewport(DefaultViewportConfig(), 800, 600)
	assert.False(t, v.Sized())
	assert.False(t, v.Moved())

	v.Resize(100, 100)
	assert.True(t, v.Sized())

	v.ZoomIn()
	assert.True(t, v.Moved())
	v.Center(&Frame{})
	assert.False(t, v.Moved())

	v.Press(ButtonPrimary, Point{})
	v.Move(Point{X: 5})
	v.Release()
	assert.True(t, v.Moved())
}
