package tui

import (
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"golang.org/x/image/font"

	"github.com/AliArsal1512/clarifai-app/internal/diagram"
	"github.com/AliArsal1512/clarifai-app/internal/paint"
)

// ExportPNG paints the settled state of the current frame, sized to fit
// every node regardless of the terminal viewport.
func ExportPNG(path string, d *diagram.Diagram, face font.Face, margin float64) error {
	return exportFrame(path, d.Current(), d.Palette(), face, margin)
}

func exportFrame(path string, tr *diagram.Transition, p diagram.Palette, face font.Face, margin float64) error {
	if tr == nil {
		return paint.ErrNothingToPaint
	}
	style := paint.DefaultStyle()
	width, height, t, err := paint.Fit(tr.Frame, style, margin)
	if err != nil {
		return err
	}
	return paint.Save(path, tr.Final(), paint.Options{
		Width:     width,
		Height:    height,
		Transform: t,
		Palette:   p,
		Face:      face,
		Style:     style,
	})
}

// TextLines draws the whole current frame as plain text, independent of
// pan and zoom.
func TextLines(d *diagram.Diagram, cell CellSize) ([]string, error) {
	tr := d.Current()
	if tr == nil || tr.Frame.Len() == 0 {
		return nil, paint.ErrNothingToPaint
	}
	f := tr.Frame
	t := diagram.Transform{
		X: cell.W - f.Bounds.MinX,
		Y: cell.H - f.Bounds.MinY,
		K: 1,
	}
	cols, rows := 1, 1
	for _, n := range f.Nodes {
		col, row := cell.ToCell(t.Apply(n.Point))
		cols = max(cols, col+runewidth.StringWidth(Label(n))+1)
		rows = max(rows, row+2)
	}
	return RenderScene(tr.Final(), t, cell, cols, rows, diagram.NoNode).Lines(), nil
}

func exportVisualTXT(filename string, lines []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range lines {
		if _, err := fmt.Fprintln(file, line); err != nil {
			return err
		}
	}
	return nil
}

// ExportText writes TextLines to filename.
func ExportText(filename string, d *diagram.Diagram, cell CellSize) error {
	lines, err := TextLines(d, cell)
	if err != nil {
		return err
	}
	return exportVisualTXT(filename, lines)
}

// exportPNG and exportTXT run off the update loop and report back with an
// exportDoneMsg.
func (m Model) exportPNG() func() exportDoneMsg {
	if m.measure == nil {
		return func() exportDoneMsg {
			return exportDoneMsg{err: fmt.Errorf("no font loaded")}
		}
	}
	path, err := m.cfg.GetSavePath(m.sourceName() + ".png")
	face := m.measure.NewFace(m.cfg.Layout.FontSize)
	tr, palette := m.diagram.Current(), m.diagram.Palette()
	margin := m.cfg.Export.Margin
	return func() exportDoneMsg {
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path, err: exportFrame(path, tr, palette, face, margin)}
	}
}

// exportTXT saves the canvas as it is shown, without the focus highlight.
func (m Model) exportTXT() func() exportDoneMsg {
	path, err := m.cfg.GetSavePath(m.sourceName() + ".txt")
	cols, rows := m.canvasSize()
	lines := RenderScene(m.scene(), m.diagram.Viewport().Transform(), m.cell, cols, rows, diagram.NoNode).Lines()
	return func() exportDoneMsg {
		if err != nil {
			return exportDoneMsg{err: err}
		}
		return exportDoneMsg{path: path, err: exportVisualTXT(path, lines)}
	}
}
