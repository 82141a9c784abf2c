package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

const selectorRows = 8

// selector lists class names in document order, filtered by substring.
type selector struct {
	input   textinput.Model
	names   []string
	matches []string
	cursor  int
	open    bool
}

func newSelector() selector {
	ti := textinput.New()
	ti.Placeholder = "class name"
	ti.Prompt = "expand class: "
	ti.CharLimit = 256
	return selector{input: ti}
}

func (s *selector) Open(names []string) {
	s.names = names
	s.input.SetValue("")
	s.input.Focus()
	s.cursor = 0
	s.open = true
	s.filter()
}

func (s *selector) Close() {
	s.input.Blur()
	s.open = false
}

func (s *selector) filter() {
	q := strings.ToLower(strings.TrimSpace(s.input.Value()))
	s.matches = s.matches[:0]
	for _, name := range s.names {
		if q == "" || strings.Contains(strings.ToLower(name), q) {
			s.matches = append(s.matches, name)
		}
	}
	if s.cursor >= len(s.matches) {
		s.cursor = max(0, len(s.matches)-1)
	}
}

func (s *selector) Up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *selector) Down() {
	if s.cursor < len(s.matches)-1 {
		s.cursor++
	}
}

// Selected is the highlighted class name.
func (s *selector) Selected() (string, bool) {
	if len(s.matches) == 0 {
		return "", false
	}
	return s.matches[s.cursor], true
}

// visible returns the window of matches around the cursor.
func (s *selector) visible() (start, end int) {
	end = len(s.matches)
	if end <= selectorRows {
		return 0, end
	}
	start = s.cursor - selectorRows + 1
	if start < 0 {
		start = 0
	}
	return start, start + selectorRows
}

func (s *selector) View(t theme, width int) []string {
	lines := []string{t.prompt.Render(s.input.View())}
	if len(s.matches) == 0 {
		return append(lines, t.dim.Render("  (no classes match)"))
	}
	start, end := s.visible()
	for i := start; i < end; i++ {
		name := s.matches[i]
		if len(name) > width-4 && width > 8 {
			name = name[:width-7] + "..."
		}
		if i == s.cursor {
			lines = append(lines, "> "+t.match.Render(name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	return lines
}
