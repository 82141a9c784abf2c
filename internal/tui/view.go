package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	lines := m.canvas.Render(m.styles.cells)
	if m.mode == ModeSelect {
		overlay := m.selector.View(m.styles, m.width)
		for i := 0; i < len(overlay) && i < len(lines); i++ {
			lines[i] = overlay[i]
		}
	}

	if m.diagram.Fullscreen() {
		return strings.Join(lines, "\n")
	}

	// the full help covers the bottom rows of the canvas
	help := strings.Split(m.help.View(keys), "\n")
	keep := max(len(lines)-len(help)+1, 0)

	var result strings.Builder
	result.WriteString(strings.Join(lines[:keep], "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	result.WriteString("\n")
	result.WriteString(strings.Join(help, "\n"))
	return result.String()
}

func (m Model) statusLine() string {
	badge := m.styles.mode.Render(m.modeString())
	status := fmt.Sprintf(" %s | %s | %s | %d%%",
		m.sourceName(),
		m.diagram.Store().Mode(),
		m.diagram.Theme(),
		int(math.Round(m.diagram.Viewport().Transform().K*100)))
	if m.Animating() {
		status += " | animating"
	}

	var msg string
	switch {
	case m.errorMessage != "":
		msg = " | " + m.styles.err.Render("ERROR: "+m.errorMessage)
	case m.successMessage != "":
		msg = " | " + m.styles.success.Render(m.successMessage)
	}

	line := badge + m.styles.status.Render(status) + msg
	return lipgloss.NewStyle().MaxWidth(max(m.width, 1)).Render(line)
}
