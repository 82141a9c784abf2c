package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Help       key.Binding
	Toggle     key.Binding
	Comment    key.Binding
	Copy       key.Binding
	Esc        key.Binding
	Mode       key.Binding
	Theme      key.Binding
	Fullscreen key.Binding
	Selector   key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	ZoomReset  key.Binding
	PanMode    key.Binding
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	Undo       key.Binding
	Redo       key.Binding
	ExportPNG  key.Binding
	ExportTXT  key.Binding
}

var keys = keyMap{
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Toggle:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
	Comment:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "comment")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy comment")),
	Esc:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "compressed/full")),
	Theme:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
	Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fullscreen")),
	Selector:   key.NewBinding(key.WithKeys("e", "/"), key.WithHelp("e", "expand class")),
	ZoomIn:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	ZoomReset:  key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset zoom")),
	PanMode:    key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "pan mode")),
	Up:         key.NewBinding(key.WithKeys("k", "up", "K", "shift+up"), key.WithHelp("k/↑", "up")),
	Down:       key.NewBinding(key.WithKeys("j", "down", "J", "shift+down"), key.WithHelp("j/↓", "down")),
	Left:       key.NewBinding(key.WithKeys("h", "left", "H", "shift+left"), key.WithHelp("h/←", "parent")),
	Right:      key.NewBinding(key.WithKeys("l", "right", "L", "shift+right"), key.WithHelp("l/→", "child")),
	Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Redo:       key.NewBinding(key.WithKeys("U", "ctrl+r"), key.WithHelp("U", "redo")),
	ExportPNG:  key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "export png")),
	ExportTXT:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "export txt")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Comment, k.Selector, k.Mode, k.PanMode, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.PanMode},
		{k.Toggle, k.Comment, k.Copy, k.Esc, k.Selector},
		{k.Mode, k.Theme, k.Fullscreen, k.ZoomIn, k.ZoomOut, k.ZoomReset},
		{k.Undo, k.Redo, k.ExportTXT, k.ExportPNG, k.Help, k.Quit},
	}
}

// moveSpeed doubles with shift, as in pan mode.
func moveSpeed(k string) int {
	switch k {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}
