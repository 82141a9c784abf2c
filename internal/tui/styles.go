package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
	"github.com/AliArsal1512/clarifai-app/internal/diagram"
)

var nodeTypes = []string{
	astdoc.TypeRoot,
	astdoc.TypeClass,
	astdoc.TypeFields,
	astdoc.TypeField,
	astdoc.TypeMethods,
	astdoc.TypeMethod,
	astdoc.TypeSubclasses,
	astdoc.TypeStatement,
}

// theme is the set of terminal styles for one palette.
type theme struct {
	cells   map[string]lipgloss.Style
	status  lipgloss.Style
	mode    lipgloss.Style
	err     lipgloss.Style
	success lipgloss.Style
	prompt  lipgloss.Style
	match   lipgloss.Style
	dim     lipgloss.Style
}

func newTheme(p diagram.Palette) theme {
	cells := map[string]lipgloss.Style{
		keyLink: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Link)),
		keyIndicator: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Indicator)).
			Bold(true),
		keyFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Background)).
			Background(lipgloss.Color(p.Text)).
			Bold(true),
		keyPopup: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Tooltip)),
	}
	for _, typ := range nodeTypes {
		cells[keyNodeAt+typ] = lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Fill(typ)))
	}

	return theme{
		cells: cells,
		status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Text)).
			Background(lipgloss.Color(p.Tooltip)),
		mode: lipgloss.NewStyle().
			Foreground(lipgloss.Color(p.Background)).
			Background(lipgloss.Color(p.Indicator)).
			Bold(true).
			Padding(0, 1),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("#43a047")),
		prompt:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Indicator)).Bold(true),
		match:   lipgloss.NewStyle().Foreground(lipgloss.Color(p.Background)).Background(lipgloss.Color(p.Indicator)),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(p.Link)),
	}
}
