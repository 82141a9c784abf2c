package diagram

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

func TestStoreInitReplacesOnlyNewSubmissions(t *testing.T) {
	s := NewStore(ModeCompressed)
	doc := fooDoc(t)

	require.True(t, s.Init(doc))
	assert.True(t, s.FirstPaint())
	assert.Equal(t, NoNode, s.Target())

	foo := findByName(s.Canonical(), "Foo")
	require.NotNil(t, foo)
	require.True(t, s.ToggleNode(foo.ID))
	s.SetTarget(foo.ID)

	// Same content, same identity: nothing is replaced.
	again := fooDoc(t)
	assert.False(t, s.Init(again))
	assert.True(t, s.Expanded().Has("Foo"))
	assert.Equal(t, foo.ID, s.Target())

	assert.True(t, s.Init(shopDoc(t)))
	assert.Empty(t, s.Expanded())
	assert.Equal(t, NoNode, s.Target())
	assert.True(t, s.FirstPaint())
}

func TestStoreInitNilDocumentIsPlaceholder(t *testing.T) {
	s := NewStore(ModeFull)

	assert.True(t, s.Init(nil))
	assert.Nil(t, s.Canonical())
	assert.Nil(t, s.Visible())
	assert.False(t, s.Init(nil))
	assert.False(t, s.ToggleNode(0))
}

func TestStoreToggleUnknownIsNoop(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(fooDoc(t))
	before := visibleNames(s.Visible())

	assert.False(t, s.ToggleNode(999))
	assert.Equal(t, before, visibleNames(s.Visible()))
}

func TestStoreToggleClassTracksExpandedSet(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(fooDoc(t))
	foo := findByName(s.Canonical(), "Foo")

	assert.Equal(t, []string{"Root", "Foo"}, visibleNames(s.Visible()))

	require.True(t, s.ToggleNode(foo.ID))
	assert.True(t, s.Expanded().Has("Foo"))
	assert.Equal(t, []string{"Root", "Foo", "bar"}, visibleNames(s.Visible()))

	require.True(t, s.ToggleNode(foo.ID))
	assert.False(t, s.Expanded().Has("Foo"))
	assert.Equal(t, []string{"Root", "Foo"}, visibleNames(s.Visible()))
}

func TestStoreToggleInFullModeLeavesExpandedSetAlone(t *testing.T) {
	s := NewStore(ModeFull)
	s.Init(fooDoc(t))
	foo := findByName(s.Canonical(), "Foo")

	require.True(t, s.ToggleNode(foo.ID))
	assert.Empty(t, s.Expanded())
	assert.Equal(t, []string{"Root", "Foo"}, visibleNames(s.Visible()))
	assert.Equal(t, Collapsed, foo.State)
}

func TestStoreToggleInsideFoldedSubtreeIsNoop(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(fooDoc(t))
	bar := findByName(s.Canonical(), "bar")

	assert.False(t, s.ToggleNode(bar.ID))
	assert.Equal(t, Expanded, bar.State)
}

func TestStoreToggleRoundTrip(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(shopDoc(t))
	cart := findByName(s.Canonical(), "Cart")
	require.True(t, s.ToggleNode(cart.ID))

	fields := findByName(s.Visible(), "Fields")
	require.NotNil(t, fields)
	before := visibleNames(s.Visible())

	require.True(t, s.ToggleNode(fields.ID))
	assert.NotEqual(t, before, visibleNames(s.Visible()))
	require.True(t, s.ToggleNode(fields.ID))
	assert.Equal(t, before, visibleNames(s.Visible()))
}

func TestStoreCompressedEmptySetShowsOnlyClasses(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(shopDoc(t))

	root := s.Visible()
	for _, child := range root.VisibleChildren() {
		assert.Equal(t, astdoc.TypeClass, child.Type)
		assert.Empty(t, child.VisibleChildren(), "class %s should be folded", child.Name)
	}
	assert.Equal(t, []string{"Root", "Cart", "Item"}, visibleNames(root))
}

func TestStoreExpandClassSelector(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(shopDoc(t))

	assert.False(t, s.ExpandClass("Nope"))
	require.True(t, s.ExpandClass("Item"))
	assert.Equal(t, NoNode, s.Target())
	assert.Contains(t, visibleNames(s.Visible()), "Subclasses")
	// The nested class is still folded until selected itself.
	assert.NotContains(t, visibleNames(s.Visible()), "public String url()")

	require.True(t, s.CollapseClass("Item"))
	assert.NotContains(t, visibleNames(s.Visible()), "Subclasses")
}

func TestStoreExpandClassAfterManualCollapse(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(fooDoc(t))
	foo := findByName(s.Canonical(), "Foo")

	require.True(t, s.ToggleNode(foo.ID))
	require.True(t, s.ToggleNode(foo.ID))
	require.True(t, s.ExpandClass("Foo"))
	assert.Equal(t, []string{"Root", "Foo", "bar"}, visibleNames(s.Visible()))
}

func TestStoreExpandClassInFullModeDoesNotLeakIntoCompressed(t *testing.T) {
	s := NewStore(ModeFull)
	s.Init(shopDoc(t))

	require.True(t, s.ExpandClass("Cart"))
	assert.Empty(t, s.Expanded().Names())

	require.True(t, s.SetMode(ModeCompressed))
	assert.Equal(t, []string{"Root", "Cart", "Item"}, visibleNames(s.Visible()))
}

func TestStoreLeavingCompressedClearsExpandedSet(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(shopDoc(t))
	s.ExpandClass("Cart")

	require.True(t, s.SetMode(ModeFull))
	assert.Empty(t, s.Expanded())
	assert.False(t, s.SetMode(ModeFull))

	require.True(t, s.SetMode(ModeCompressed))
	assert.Equal(t, []string{"Root", "Cart", "Item"}, visibleNames(s.Visible()))
}

func TestStoreClassNamesIncludeHidden(t *testing.T) {
	s := NewStore(ModeCompressed)
	s.Init(shopDoc(t))

	assert.Equal(t, []string{"Cart", "Item", "DigitalItem extends Item"}, s.ClassNames())
}

// randomRecord builds a tree of mixed node types.
func randomRecord(r *rand.Rand, depth int) *astdoc.Record {
	types := []string{astdoc.TypeClass, astdoc.TypeMethod, astdoc.TypeField, astdoc.TypeStatement}
	node := rec(types[r.Intn(len(types))], string(rune('a'+r.Intn(26))))
	if depth == 0 {
		return node
	}
	for i := 0; i < r.Intn(4); i++ {
		node.Children = append(node.Children, randomRecord(r, depth-1))
	}
	return node
}

func TestStoreInvariantsUnderRandomToggles(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for round := 0; round < 25; round++ {
		root := rec(astdoc.TypeRoot, "Root", randomRecord(r, 4), randomRecord(r, 3))
		s := NewStore(Mode(r.Intn(2)))
		s.Init(newDoc(t, root))

		for step := 0; step < 40; step++ {
			var ids []NodeID
			s.Visible().WalkVisible(func(n *Node) bool {
				ids = append(ids, n.ID)
				return true
			})
			s.ToggleNode(ids[r.Intn(len(ids))])
			if r.Intn(10) == 0 {
				s.SetMode(Mode(r.Intn(2)))
			}

			for _, tree := range []*Node{s.Canonical(), s.Visible()} {
				tree.Walk(func(n *Node) bool {
					if len(n.VisibleChildren()) > 0 {
						assert.Empty(t, n.HiddenChildren())
					}
					return true
				})
			}
		}
	}
}
