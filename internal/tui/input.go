package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/AliArsal1512/clarifai-app/internal/diagram"
)

// popupWidth is the wrap width of tooltip text in cells.
const popupWidth = 48

// Wheel steps in rows when the wheel pans.
const wheelRows = 3

var writeClipboard = clipboard.WriteAll

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if m.mode == ModeSelect {
		return m.handleSelectorKey(msg), false
	}

	k := msg.String()
	switch {
	case key.Matches(msg, keys.Quit):
		return nil, true

	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, keys.Esc):
		switch {
		case m.tooltipOpen():
			m.closeTooltip()
		case m.panMode:
			m.panMode = false
		}
		m.errorMessage = ""
		m.successMessage = ""

	case key.Matches(msg, keys.PanMode):
		m.panMode = !m.panMode

	case key.Matches(msg, keys.Up, keys.Down, keys.Left, keys.Right):
		m.handleNavigation(k, moveSpeed(k))

	case key.Matches(msg, keys.Toggle):
		n, ok := m.focusNode()
		if !ok {
			return nil, false
		}
		return m.toggle(n.ID), false

	case key.Matches(msg, keys.Comment):
		m.openFocusedComment()

	case key.Matches(msg, keys.Copy):
		return m.copyComment(), false

	case key.Matches(msg, keys.Mode):
		return m.toggleMode(), false

	case key.Matches(msg, keys.Theme):
		next := diagram.ThemeDark
		if m.diagram.Theme() == diagram.ThemeDark {
			next = diagram.ThemeLight
		}
		m.apply(m.diagram.SetTheme(next))
		m.styles = newTheme(m.diagram.Palette())

	case key.Matches(msg, keys.Fullscreen):
		m.closeTooltip()
		w := float64(max(m.width, 1)) * m.cell.W
		h := float64(max(m.height, 1)) * m.cell.H
		m.apply(m.diagram.ToggleFullscreen(w, h))
		if !m.diagram.Fullscreen() {
			// the terminal may have been resized while fullscreen
			cols, rows := m.canvasSize()
			m.apply(m.diagram.Resize(float64(cols)*m.cell.W, float64(rows)*m.cell.H))
		}

	case key.Matches(msg, keys.Selector):
		names := m.diagram.Store().ClassNames()
		if len(names) == 0 {
			m.setError("no classes in this document")
			return nil, false
		}
		m.closeTooltip()
		m.selector.Open(names)
		m.mode = ModeSelect

	case key.Matches(msg, keys.ZoomIn):
		m.closeTooltip()
		m.diagram.ZoomIn()

	case key.Matches(msg, keys.ZoomOut):
		m.closeTooltip()
		m.diagram.ZoomOut()

	case key.Matches(msg, keys.ZoomReset):
		m.closeTooltip()
		m.diagram.ResetZoom()

	case key.Matches(msg, keys.Undo):
		cmd, ok := m.undo()
		if !ok {
			m.setError("nothing to undo")
		}
		return cmd, false

	case key.Matches(msg, keys.Redo):
		cmd, ok := m.redo()
		if !ok {
			m.setError("nothing to redo")
		}
		return cmd, false

	case key.Matches(msg, keys.ExportPNG):
		export := m.exportPNG()
		return func() tea.Msg { return export() }, false

	case key.Matches(msg, keys.ExportTXT):
		export := m.exportTXT()
		return func() tea.Msg { return export() }, false
	}
	return nil, false
}

func (m *Model) handleSelectorKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.selector.Close()
		m.mode = ModeNormal
		return nil
	case tea.KeyEnter:
		name, ok := m.selector.Selected()
		m.selector.Close()
		m.mode = ModeNormal
		if !ok {
			return nil
		}
		return m.expandClass(name)
	case tea.KeyUp, tea.KeyCtrlP:
		m.selector.Up()
		return nil
	case tea.KeyDown, tea.KeyCtrlN:
		m.selector.Down()
		return nil
	}

	var cmd tea.Cmd
	m.selector.input, cmd = m.selector.input.Update(msg)
	m.selector.filter()
	return cmd
}

func (m *Model) toggle(id diagram.NodeID) tea.Cmd {
	tr := m.diagram.ClickNode(id)
	if tr == nil {
		return nil
	}
	m.closeTooltip()
	m.focus = id
	m.recordAction(ActionToggle, ToggleData{ID: id}, ToggleData{ID: id})
	return m.apply(tr)
}

func (m *Model) expandClass(name string) tea.Cmd {
	store := m.diagram.Store()
	record := store.Mode() == diagram.ModeCompressed && !store.Expanded().Has(name)
	tr := m.diagram.ExpandClass(name)
	if tr == nil {
		m.setError("class not found: " + name)
		return nil
	}
	if record {
		m.recordAction(ActionExpandClass, ExpandClassData{Name: name}, ExpandClassData{Name: name})
	}
	for _, n := range m.visibleOrder() {
		if n.IsClass() && n.Name == name {
			m.focus = n.ID
			m.ensureFocusVisible()
			break
		}
	}
	return m.apply(tr)
}

func (m *Model) toggleMode() tea.Cmd {
	prev := ModeData{
		Mode:     m.diagram.Store().Mode(),
		Expanded: m.diagram.Store().Expanded().Names(),
	}
	tr := m.diagram.ToggleMode()
	if tr == nil {
		return nil
	}
	m.closeTooltip()
	m.recordAction(ActionMode, ModeData{Mode: m.diagram.Store().Mode()}, prev)
	return m.apply(tr)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	at := m.cell.ToPoint(msg.X, msg.Y)
	vp := m.diagram.Viewport()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			delta := -1.0
			if msg.Button == tea.MouseButtonWheelDown {
				delta = 1
			}
			if vp.Wheel(delta, at, msg.Ctrl) {
				m.closeTooltip()
				return nil
			}
			vp.PanBy(0, -delta*wheelRows*m.cell.H)
			return nil

		case tea.MouseButtonLeft:
			m.diagram.PointerDown(at)
			if m.onPopup(msg.X, msg.Y) {
				return nil
			}
			id, part := m.canvas.HitTest(msg.X, msg.Y)
			switch part {
			case hitIndicator:
				m.focus = id
				m.openComment(id, msg.X, msg.Y)
				return nil
			case hitLabel:
				return m.toggle(id)
			}
			vp.Press(diagram.ButtonPrimary, at)
		}

	case tea.MouseActionMotion:
		vp.Move(at)

	case tea.MouseActionRelease:
		vp.Release()
	}
	return nil
}

func (m *Model) tooltipOpen() bool {
	_, open := m.diagram.Tooltip()
	return open
}

func (m *Model) onPopup(col, row int) bool {
	if !m.tooltipOpen() || len(m.popup.lines) == 0 {
		return false
	}
	w, h := PopupSize(m.popup.lines)
	return col >= m.popup.col && col < m.popup.col+w && row >= m.popup.row && row < m.popup.row+h
}

func (m *Model) closeTooltip() {
	m.diagram.CloseTooltip()
	m.popup = popup{}
}

// openComment shows a node's comment with the popup's corner just below and
// right of the clicked cell. The popup is not kept inside the grid.
func (m *Model) openComment(id diagram.NodeID, col, row int) bool {
	n, ok := m.diagram.Store().Node(id)
	if !ok {
		return false
	}
	lines := wrapComment(n.Comment, popupWidth)
	w, h := PopupSize(lines)
	px, py := col+1, row+1
	box := m.cell.Rect(px, py, w, h)
	indicator := m.cell.Rect(col, row, 1, 1)
	if !m.diagram.OpenComment(id, m.cell.ToPoint(col, row), box, indicator) {
		m.popup = popup{}
		return false
	}
	m.popup = popup{col: px, row: py, lines: lines}
	return true
}

func (m *Model) openFocusedComment() {
	n, ok := m.focusNode()
	if !ok {
		return
	}
	if !n.HasComment() {
		m.setError("no comment on " + n.Name)
		return
	}
	col, row, ok := m.canvas.IndicatorCell(n.ID)
	if !ok {
		m.ensureFocusVisible()
		m.refresh()
		if col, row, ok = m.canvas.IndicatorCell(n.ID); !ok {
			return
		}
	}
	m.openComment(n.ID, col, row)
}

func (m *Model) copyComment() tea.Cmd {
	tip, open := m.diagram.Tooltip()
	if !open {
		m.setError("no comment open")
		return nil
	}
	text := tip.Text
	return func() tea.Msg {
		return clipboardMsg{err: writeClipboard(text)}
	}
}

func wrapComment(text string, width int) []string {
	wrapped := ansi.Wrap(strings.TrimSpace(text), width, "")
	return strings.Split(wrapped, "\n")
}
