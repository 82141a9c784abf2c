// Package tui hosts a diagram in the terminal: it turns keys and mouse
// gestures into diagram interactions and paints animation frames.
package tui

import (
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
	"github.com/AliArsal1512/clarifai-app/internal/config"
	"github.com/AliArsal1512/clarifai-app/internal/diagram"
	"github.com/AliArsal1512/clarifai-app/internal/measure"
)

const placeholderText = "No diagram to display"

type Mode int

const (
	ModeNormal Mode = iota
	ModeSelect
)

// DocumentMsg delivers a new document, e.g. from the file watcher.
type DocumentMsg struct {
	Doc *astdoc.Document
	Err error
}

type frameMsg struct {
	seq uint64
	at  time.Time
}

type exportDoneMsg struct {
	path string
	err  error
}

type clipboardMsg struct {
	err error
}

// animation tracks the transition whose completion is still pending. tr is
// what gets painted and may be replaced by a later passive transition.
type animation struct {
	seq      uint64
	start    time.Time
	duration time.Duration
	progress float64
	tr       *diagram.Transition
}

// popup is the tooltip as placed on the character grid.
type popup struct {
	col, row int
	lines    []string
}

type Options struct {
	Config  *config.Config
	Diagram *diagram.Diagram
	Measure *measure.Text
	// Source names the document for exports and the status line.
	Source string
	// Load produces the first document. It runs as the program's first
	// command.
	Load   func() (*astdoc.Document, error)
	Logger *slog.Logger
	// Now is the animation clock. Default: time.Now
	Now func() time.Time
}

type Model struct {
	width, height int

	diagram *diagram.Diagram
	cfg     *config.Config
	measure *measure.Text
	logger  *slog.Logger
	source  string
	load    func() (*astdoc.Document, error)
	cell    CellSize

	mode     Mode
	panMode  bool
	help     help.Model
	selector selector
	focus    diagram.NodeID
	popup    popup

	anim     *animation
	interval time.Duration
	now      func() time.Time

	undoStack []Action
	redoStack []Action

	canvas *Canvas
	styles theme

	errorMessage   string
	successMessage string
}

func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	d := opts.Diagram
	if d == nil {
		o, err := cfg.DiagramOptions()
		if err != nil {
			o = diagram.DefaultOptions()
		}
		if opts.Measure != nil {
			o.Measurer = opts.Measure
		}
		o.Logger = logger
		d = diagram.New(o)
	}

	m := Model{
		diagram:  d,
		cfg:      cfg,
		measure:  opts.Measure,
		logger:   logger,
		source:   opts.Source,
		load:     opts.Load,
		cell:     DefaultCellSize,
		help:     help.New(),
		selector: newSelector(),
		focus:    diagram.NoNode,
		interval: cfg.FrameInterval(),
		now:      now,
		styles:   newTheme(d.Palette()),
	}
	m.refresh()
	return m
}

// Diagram exposes the hosted diagram.
func (m Model) Diagram() *diagram.Diagram { return m.diagram }

func (m Model) Init() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		doc, err := load()
		return DocumentMsg{Doc: doc, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		cols, rows := m.canvasSize()
		m.apply(m.diagram.Resize(float64(cols)*m.cell.W, float64(rows)*m.cell.H))

	case DocumentMsg:
		cmd = m.loadDocument(msg)

	case frameMsg:
		cmd = m.advance(msg)

	case exportDoneMsg:
		if msg.err != nil {
			m.setError("export failed: " + msg.err.Error())
		} else {
			m.setSuccess("exported " + msg.path)
		}

	case clipboardMsg:
		if msg.err != nil {
			m.setError("copy failed: " + msg.err.Error())
		} else {
			m.setSuccess("comment copied")
		}

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	}

	m.refresh()
	return m, cmd
}

func (m *Model) loadDocument(msg DocumentMsg) tea.Cmd {
	if msg.Err != nil {
		m.logger.Warn("document not loaded", slog.String("error", msg.Err.Error()))
		m.setError(msg.Err.Error())
		if m.diagram.Frame() == nil {
			m.apply(m.diagram.Load(nil))
		}
		return nil
	}
	tr := m.diagram.Load(msg.Doc)
	if tr == nil {
		return nil
	}
	m.clearHistory()
	m.popup = popup{}
	m.focus = diagram.NoNode
	if root, ok := tr.Frame.Root(); ok {
		m.focus = root.ID
	}
	m.errorMessage = ""
	return m.apply(tr)
}

// apply installs a transition and starts its frame ticks when it animates.
func (m *Model) apply(tr *diagram.Transition) tea.Cmd {
	if tr == nil {
		return nil
	}
	if !tr.Animated() {
		if m.anim != nil {
			// keep ticking so the pending transition still completes
			m.anim.tr = tr
		}
		return nil
	}
	if tr.Duration <= 0 {
		m.anim = nil
		m.diagram.Complete(tr.Seq)
		return nil
	}
	m.anim = &animation{
		seq:      tr.Seq,
		start:    m.now(),
		duration: tr.Duration,
		tr:       tr,
	}
	return m.tick(tr.Seq)
}

func (m Model) tick(seq uint64) tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return frameMsg{seq: seq, at: t}
	})
}

func (m *Model) advance(msg frameMsg) tea.Cmd {
	if m.anim == nil || msg.seq != m.anim.seq {
		return nil
	}
	p := float64(msg.at.Sub(m.anim.start)) / float64(m.anim.duration)
	if p >= 1 {
		m.anim = nil
		m.diagram.Complete(msg.seq)
		return nil
	}
	m.anim.progress = max(p, 0)
	return m.tick(msg.seq)
}

// Animating reports whether a transition is still being played.
func (m Model) Animating() bool { return m.anim != nil }

func (m *Model) scene() diagram.Scene {
	if m.anim != nil {
		return m.anim.tr.At(m.anim.progress)
	}
	if tr := m.diagram.Current(); tr != nil {
		return tr.Final()
	}
	return diagram.Scene{}
}

// canvasSize is the grid left for the diagram after the status and help
// lines. Fullscreen gives the diagram every row.
func (m Model) canvasSize() (cols, rows int) {
	cols, rows = m.width, m.height
	if !m.diagram.Fullscreen() {
		rows -= 2
	}
	return max(cols, 1), max(rows, 1)
}

// refresh redraws the grid used for painting and hit tests.
func (m *Model) refresh() {
	cols, rows := m.canvasSize()
	scene := m.scene()
	c := RenderScene(scene, m.diagram.Viewport().Transform(), m.cell, cols, rows, m.focus)
	if len(scene.Nodes) == 0 {
		c.Placeholder(placeholderText)
	}
	if m.tooltipOpen() && len(m.popup.lines) > 0 {
		c.DrawPopup(m.popup.col, m.popup.row, m.popup.lines)
	}
	m.canvas = c
}

func (m *Model) setError(msg string) {
	m.errorMessage = msg
	m.successMessage = ""
}

func (m *Model) setSuccess(msg string) {
	m.successMessage = msg
	m.errorMessage = ""
}

func (m Model) modeString() string {
	switch {
	case m.mode == ModeSelect:
		return "SELECT"
	case m.panMode:
		return "PAN"
	default:
		return "NORMAL"
	}
}

func (m Model) sourceName() string {
	if m.source == "" {
		return "diagram"
	}
	return strings.TrimSuffix(filepath.Base(m.source), filepath.Ext(m.source))
}
