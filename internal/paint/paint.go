// Package paint rasterizes diagram scenes with gg.
package paint

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/fogleman/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"

	"github.com/AliArsal1512/clarifai-app/internal/diagram"
)

var ErrNothingToPaint = errors.New("nothing to export")

// Style sizes the node boxes in world units.
type Style struct {
	Padding         float64
	BoxHeight       float64
	IndicatorRadius float64
	LineWidth       float64
}

func DefaultStyle() Style {
	return Style{
		Padding:         12,
		BoxHeight:       22,
		IndicatorRadius: 4,
		LineWidth:       1,
	}
}

type Options struct {
	Width, Height int
	Transform     diagram.Transform
	Palette       diagram.Palette
	Face          font.Face
	Style         Style
}

// Box returns the world rectangle of a node. Nodes are anchored at the
// middle of their left edge.
func Box(n diagram.PlacedNode, s Style) diagram.Rect {
	w := n.LabelWidth + 2*s.Padding
	return diagram.Rect{
		Min: diagram.Point{X: n.X, Y: n.Y - s.BoxHeight/2},
		Max: diagram.Point{X: n.X + w, Y: n.Y + s.BoxHeight/2},
	}
}

// Indicator returns the world center of a node's comment indicator.
func Indicator(n diagram.PlacedNode, s Style) diagram.Point {
	b := Box(n, s)
	return diagram.Point{X: b.Max.X, Y: b.Min.Y}
}

// Fit sizes an image around every box of f with margin pixels on each side
// and returns the transform that places the frame inside it.
func Fit(f *diagram.Frame, s Style, margin float64) (int, int, diagram.Transform, error) {
	if f.Len() == 0 {
		return 0, 0, diagram.Identity, ErrNothingToPaint
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range f.Nodes {
		b := Box(n, s)
		minX = math.Min(minX, b.Min.X)
		minY = math.Min(minY, b.Min.Y-s.IndicatorRadius)
		maxX = math.Max(maxX, b.Max.X+s.IndicatorRadius)
		maxY = math.Max(maxY, b.Max.Y)
	}
	width := int(math.Ceil(maxX - minX + 2*margin))
	height := int(math.Ceil(maxY - minY + 2*margin))
	t := diagram.Transform{X: margin - minX, Y: margin - minY, K: 1}
	return width, height, t, nil
}

// Render paints a scene onto a new context.
func Render(scene diagram.Scene, opts Options) (*gg.Context, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("invalid image size %dx%d", opts.Width, opts.Height)
	}
	dc := gg.NewContext(opts.Width, opts.Height)
	if err := setColor(dc, opts.Palette.Background, 1); err != nil {
		return nil, err
	}
	dc.Clear()
	if opts.Face != nil {
		dc.SetFontFace(opts.Face)
	}

	tr := opts.Transform
	s := opts.Style
	dc.SetLineWidth(s.LineWidth * tr.K)

	// Links first so boxes are drawn over them.
	for _, l := range scene.Links {
		if err := setColor(dc, opts.Palette.Link, l.Opacity); err != nil {
			return nil, err
		}
		drawLink(dc, tr.Apply(l.From), tr.Apply(l.To))
	}

	for _, n := range scene.Nodes {
		if err := drawNode(dc, n, opts); err != nil {
			return nil, err
		}
	}
	return dc, nil
}

// Encode renders the scene as PNG into w.
func Encode(w io.Writer, scene diagram.Scene, opts Options) error {
	dc, err := Render(scene, opts)
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

// Save renders the scene as PNG into a file.
func Save(path string, scene diagram.Scene, opts Options) error {
	dc, err := Render(scene, opts)
	if err != nil {
		return err
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

func drawLink(dc *gg.Context, from, to diagram.Point) {
	mid := (from.X + to.X) / 2
	dc.MoveTo(from.X, from.Y)
	dc.CubicTo(mid, from.Y, mid, to.Y, to.X, to.Y)
	dc.Stroke()
}

func drawNode(dc *gg.Context, n diagram.SceneNode, opts Options) error {
	tr := opts.Transform
	s := opts.Style
	b := Box(n.PlacedNode, s)
	lo := tr.Apply(b.Min)
	hi := tr.Apply(b.Max)
	w, h := hi.X-lo.X, hi.Y-lo.Y

	if err := setColor(dc, opts.Palette.Fill(n.Type), n.Opacity); err != nil {
		return err
	}
	dc.DrawRoundedRectangle(lo.X, lo.Y, w, h, 3*tr.K)
	dc.Fill()

	if err := setColor(dc, opts.Palette.Border, n.Opacity); err != nil {
		return err
	}
	dc.DrawRoundedRectangle(lo.X, lo.Y, w, h, 3*tr.K)
	if n.Collapsed {
		dc.SetDash(4*tr.K, 2*tr.K)
	}
	dc.Stroke()
	dc.SetDash()

	if err := setColor(dc, opts.Palette.Text, n.Opacity); err != nil {
		return err
	}
	dc.Push()
	dc.Translate(lo.X+s.Padding*tr.K, lo.Y+h/2)
	dc.Scale(tr.K, tr.K)
	dc.DrawStringAnchored(n.Name, 0, 0, 0, 0.35)
	dc.Pop()

	if n.HasComment {
		c := tr.Apply(Indicator(n.PlacedNode, s))
		if err := setColor(dc, opts.Palette.Indicator, n.Opacity); err != nil {
			return err
		}
		dc.DrawCircle(c.X, c.Y, s.IndicatorRadius*tr.K)
		dc.Fill()
	}
	return nil
}

func setColor(dc *gg.Context, hex string, alpha float64) error {
	c, err := colorful.Hex(hex)
	if err != nil {
		return fmt.Errorf("bad palette color %q: %w", hex, err)
	}
	dc.SetRGBA(c.R, c.G, c.B, alpha)
	return nil
}
