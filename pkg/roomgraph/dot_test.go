package roomgraph

import (
	"context"
	"strings"
	"testing"
)

func TestToDOT(t *testing.T) {
	g, _ := New("crypt", chain())
	dot := ToDOT(g, DOTOptions{})

	for _, want := range []string{
		`digraph "crypt"`,
		`"e" -> "c1"`,
		`"c2" -> "r2"`,
		"doubleoctagon",
		"indianred1",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() output missing %q", want)
		}
	}
	if strings.Contains(dot, "\\ne") {
		t.Error("IDs should be hidden by default")
	}
}

func TestToDOTShowIDs(t *testing.T) {
	g, _ := New("crypt", chain())
	dot := ToDOT(g, DOTOptions{ShowIDs: true})
	if !strings.Contains(dot, `label="Corridor\nc1"`) {
		t.Errorf("ToDOT() missing id label:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	g, _ := New("crypt", chain())
	svg, err := RenderSVG(context.Background(), ToDOT(g, DOTOptions{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), `not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
