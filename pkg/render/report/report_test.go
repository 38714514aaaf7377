package report

import (
	"testing"

	"github.com/depviz/depviz/pkg/depgraph"
)

func TestRender(t *testing.T) {
	g := depgraph.New()
	g.Declare("B", []string{"C"})
	g.Declare("A", []string{"C", "B"})
	g.Declare("C", nil)

	got := Render(depgraph.Traverse(g, "A"))
	want := "A -> [C, B]\n" +
		"B -> [C]\n" +
		"C -> []\n" +
		"\n3 nodes, 3 edges\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderLeafOnly(t *testing.T) {
	g := depgraph.New()
	g.Declare("A", []string{"B"})

	got := Render(depgraph.Traverse(g, "A"))
	want := "A -> [B]\n" +
		"B -> []\n" +
		"\n2 nodes, 1 edges\n"
	if got != want {
		t.Errorf("Render() =\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderSingleNode(t *testing.T) {
	g := depgraph.New()
	g.Declare("A", nil)

	got := Render(depgraph.Traverse(g, "A"))
	want := "A -> []\n\n1 nodes, 0 edges\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
