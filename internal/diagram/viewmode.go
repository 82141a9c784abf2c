package diagram

import (
	"fmt"
	"sort"
)

type Mode int

const (
	ModeCompressed Mode = iota
	ModeFull
)

func (m Mode) String() string {
	switch m {
	case ModeCompressed:
		return "compressed"
	case ModeFull:
		return "full"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names used in config files and flags.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "compressed", "compact", "":
		return ModeCompressed, nil
	case "full", "expanded":
		return ModeFull, nil
	default:
		return ModeCompressed, fmt.Errorf("unknown view mode %q", s)
	}
}

// ExpandedSet holds class names the user expanded while in compressed mode.
type ExpandedSet map[string]struct{}

func NewExpandedSet(names ...string) ExpandedSet {
	s := make(ExpandedSet, len(names))
	for _, name := range names {
		s[name] = struct{}{}
	}
	return s
}

func (s ExpandedSet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

func (s ExpandedSet) Add(name string) { s[name] = struct{}{} }

func (s ExpandedSet) Remove(name string) { delete(s, name) }

// Names returns the set contents sorted.
func (s ExpandedSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s ExpandedSet) Clone() ExpandedSet {
	c := make(ExpandedSet, len(s))
	for name := range s {
		c[name] = struct{}{}
	}
	return c
}

// ComputeVisibleTree derives the displayed tree from the canonical one. The
// canonical tree is never modified.
//
// In compressed mode class nodes missing from expanded are folded and every
// other node keeps its own state. In full mode everything is unfolded.
func ComputeVisibleTree(canonical *Node, mode Mode, expanded ExpandedSet) *Node {
	if canonical == nil {
		return nil
	}
	visible := canonical.Clone()
	visible.Walk(func(n *Node) bool {
		switch mode {
		case ModeFull:
			n.State = Expanded
		case ModeCompressed:
			if n.IsClass() && !expanded.Has(n.Name) {
				n.State = Collapsed
			}
		}
		return true
	})
	return visible
}
