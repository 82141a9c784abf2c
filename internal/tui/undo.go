package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/AliArsal1512/clarifai-app/internal/diagram"
)

type ActionType int

const (
	ActionToggle ActionType = iota
	ActionExpandClass
	ActionMode
)

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type ToggleData struct {
	ID diagram.NodeID
}

type ExpandClassData struct {
	Name string
}

// ModeData is a view mode and the class expansions that go with it.
type ModeData struct {
	Mode     diagram.Mode
	Expanded []string
}

func (m *Model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

func (m *Model) clearHistory() {
	m.undoStack = nil
	m.redoStack = nil
}

// undo reverts the last action. An action whose target is gone, e.g. a node
// hidden by a later mode switch, is dropped and ok is false.
func (m *Model) undo() (tea.Cmd, bool) {
	if len(m.undoStack) == 0 {
		return nil, false
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	var tr *diagram.Transition
	switch action.Type {
	case ActionToggle:
		data := action.Inverse.(ToggleData)
		tr = m.diagram.ClickNode(data.ID)
	case ActionExpandClass:
		data := action.Inverse.(ExpandClassData)
		tr = m.diagram.CollapseClass(data.Name)
	case ActionMode:
		data := action.Inverse.(ModeData)
		tr = m.diagram.SetMode(data.Mode)
	}
	if tr == nil {
		return nil, false
	}
	cmd := m.apply(tr)
	if data, isMode := action.Inverse.(ModeData); isMode &&
		data.Mode == diagram.ModeCompressed && len(data.Expanded) > 0 {
		m.apply(m.diagram.RestoreExpanded(data.Expanded))
	}

	m.redoStack = append(m.redoStack, action)
	return cmd, true
}

// redo reapplies the last undone action, dropping it when it no longer
// applies.
func (m *Model) redo() (tea.Cmd, bool) {
	if len(m.redoStack) == 0 {
		return nil, false
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	var tr *diagram.Transition
	switch action.Type {
	case ActionToggle:
		data := action.Data.(ToggleData)
		tr = m.diagram.ClickNode(data.ID)
	case ActionExpandClass:
		data := action.Data.(ExpandClassData)
		tr = m.diagram.ExpandClass(data.Name)
	case ActionMode:
		data := action.Data.(ModeData)
		tr = m.diagram.SetMode(data.Mode)
	}
	if tr == nil {
		return nil, false
	}

	m.undoStack = append(m.undoStack, action)
	return m.apply(tr), true
}
