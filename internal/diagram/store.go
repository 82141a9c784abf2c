package diagram

import (
	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

// Store owns the canonical tree, the derived visible tree, the expand
// overrides and the animation target of one diagram.
type Store struct {
	loaded    bool
	docID     string
	canonical *Node
	visible   *Node
	index     map[NodeID]*Node

	mode     Mode
	expanded ExpandedSet

	target     NodeID
	firstPaint bool
}

func NewStore(mode Mode) *Store {
	return &Store{
		mode:     mode,
		expanded: NewExpandedSet(),
		target:   NoNode,
		index:    make(map[NodeID]*Node),
	}
}

// Init replaces the canonical tree when doc is a different submission from
// the one already loaded. It reports whether anything was replaced.
func (s *Store) Init(doc *astdoc.Document) bool {
	id := ""
	if doc != nil {
		id = doc.ID
	}
	if s.loaded && id == s.docID {
		return false
	}

	s.loaded = true
	s.docID = id
	s.canonical = nil
	if doc != nil {
		s.canonical = BuildTree(doc.Root)
	}
	s.reindex()
	s.expanded = NewExpandedSet()
	s.target = NoNode
	s.firstPaint = true
	s.derive()
	return true
}

func (s *Store) reindex() {
	s.index = make(map[NodeID]*Node)
	s.canonical.Walk(func(n *Node) bool {
		s.index[n.ID] = n
		return true
	})
}

func (s *Store) derive() {
	s.visible = ComputeVisibleTree(s.canonical, s.mode, s.expanded)
}

// ToggleNode flips the displayed state of a node and mirrors it into the
// canonical tree. Unknown ids are ignored.
func (s *Store) ToggleNode(id NodeID) bool {
	canon, ok := s.index[id]
	if !ok {
		return false
	}
	shown := s.visible.findVisible(id)
	if shown == nil {
		// Inside a folded subtree; nothing on screen to toggle.
		return false
	}

	next := shown.State.flip()
	shown.State = next
	canon.State = next

	if canon.IsClass() && s.mode == ModeCompressed {
		if next == Expanded {
			s.expanded.Add(canon.Name)
		} else {
			s.expanded.Remove(canon.Name)
		}
		s.derive()
	}
	return true
}

// ExpandClass is the selector path: it expands every class with this name
// without choosing an animation target. The name joins the expanded set only
// in compressed mode, which is the only mode that reads it.
func (s *Store) ExpandClass(name string) bool {
	found := false
	s.canonical.Walk(func(n *Node) bool {
		if n.IsClass() && n.Name == name {
			n.State = Expanded
			found = true
		}
		return true
	})
	if !found {
		return false
	}
	if s.mode == ModeCompressed {
		s.expanded.Add(name)
	}
	s.derive()
	return true
}

// CollapseClass undoes ExpandClass.
func (s *Store) CollapseClass(name string) bool {
	if !s.expanded.Has(name) {
		return false
	}
	s.expanded.Remove(name)
	s.derive()
	return true
}

// SetMode switches view modes. Leaving compressed mode forgets the manual
// expansions.
func (s *Store) SetMode(mode Mode) bool {
	if mode == s.mode {
		return false
	}
	if s.mode == ModeCompressed {
		s.expanded = NewExpandedSet()
	}
	s.mode = mode
	s.derive()
	return true
}

func (s *Store) Mode() Mode { return s.mode }

func (s *Store) DocumentID() string { return s.docID }

func (s *Store) Canonical() *Node { return s.canonical }

func (s *Store) Visible() *Node { return s.visible }

// Node looks a node up in the canonical tree.
func (s *Store) Node(id NodeID) (*Node, bool) {
	n, ok := s.index[id]
	return n, ok
}

func (s *Store) Expanded() ExpandedSet { return s.expanded.Clone() }

func (s *Store) ClassNames() []string { return ClassNames(s.canonical) }

func (s *Store) SetTarget(id NodeID) { s.target = id }

func (s *Store) Target() NodeID { return s.target }

func (s *Store) FirstPaint() bool { return s.firstPaint }

// ClearAnimation drops the animation target and the first-paint flag once
// the transition they scoped has finished.
func (s *Store) ClearAnimation() {
	s.target = NoNode
	s.firstPaint = false
}

func (s *Store) setExpanded(set ExpandedSet) {
	s.expanded = set
	s.derive()
}
