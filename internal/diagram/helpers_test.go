package diagram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AliArsal1512/clarifai-app/internal/astdoc"
)

// charMeasurer treats every rune as seven pixels wide.
type charMeasurer struct {
	calls int
}

func (m *charMeasurer) Measure(text string, fontSize float64) (float64, error) {
	m.calls++
	return float64(len([]rune(text))) * 7, nil
}

type failingMeasurer struct{}

func (failingMeasurer) Measure(string, float64) (float64, error) {
	return 0, errors.New("no font face")
}

func rec(typ, name string, children ...*astdoc.Record) *astdoc.Record {
	return &astdoc.Record{Type: typ, Name: name, Children: children}
}

func newDoc(t *testing.T, root *astdoc.Record) *astdoc.Document {
	t.Helper()
	doc, err := astdoc.New(root)
	require.NoError(t, err)
	return doc
}

// fooDoc is root -> Foo(class) -> bar(method).
func fooDoc(t *testing.T) *astdoc.Document {
	return newDoc(t, rec(astdoc.TypeRoot, "Root",
		rec(astdoc.TypeClass, "Foo",
			rec(astdoc.TypeMethod, "bar"))))
}

// shopDoc is a class tree shaped like the AST builder's output.
func shopDoc(t *testing.T) *astdoc.Document {
	return newDoc(t, rec(astdoc.TypeRoot, "Root",
		rec(astdoc.TypeClass, "Cart",
			rec(astdoc.TypeFields, "Fields",
				rec(astdoc.TypeField, "private List<Item> items"),
				rec(astdoc.TypeField, "private double total")),
			rec(astdoc.TypeMethods, "Methods",
				rec(astdoc.TypeMethod, "public void add(Item item)"),
				rec(astdoc.TypeMethod, "public double total()"))),
		rec(astdoc.TypeClass, "Item",
			rec(astdoc.TypeFields, "Fields",
				rec(astdoc.TypeField, "private String sku")),
			rec(astdoc.TypeSubclasses, "Subclasses",
				rec(astdoc.TypeClass, "DigitalItem extends Item",
					rec(astdoc.TypeMethods, "Methods",
						rec(astdoc.TypeMethod, "public String url()"))))),
	))
}

func findByName(root *Node, name string) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if found == nil && n.Name == name {
			found = n
		}
		return found == nil
	})
	return found
}

func visibleNames(root *Node) []string {
	var names []string
	root.WalkVisible(func(n *Node) bool {
		names = append(names, n.Name)
		return true
	})
	return names
}

func newTestDiagram() *Diagram {
	opts := DefaultOptions()
	opts.Measurer = &charMeasurer{}
	return New(opts)
}
