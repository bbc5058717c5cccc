package roomgraph

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dungeonforge/pkg/roomtype"
)

// DOTOptions configures [ToDOT].
type DOTOptions struct {
	// Types decides node styling. Nil uses roomtype.Default().
	Types *roomtype.List
	// ShowIDs appends the node identifier under the type label.
	ShowIDs bool
}

// ToDOT converts g to Graphviz DOT. Entrances are drawn as double octagons,
// corridors as small ellipses and boss rooms filled red.
func ToDOT(g *Graph, opts DOTOptions) string {
	types := opts.Types
	if types == nil {
		types = roomtype.Default()
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", g.Name())
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("\n")

	for _, n := range g.nodes {
		label := n.Type
		if opts.ShowIDs {
			label += "\n" + n.ID
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		attrs = append(attrs, styleFor(types, n.Type)...)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, n := range g.nodes {
		for _, c := range n.Children {
			if _, ok := g.index[c]; ok {
				fmt.Fprintf(&buf, "  %q -> %q;\n", n.ID, c)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func styleFor(types *roomtype.List, name string) []string {
	t, _ := types.Get(name)
	switch {
	case t.Entrance:
		return []string{"shape=doubleoctagon", "fillcolor=palegreen"}
	case t.BossRoom:
		return []string{"fillcolor=indianred1"}
	case t.Corridor, t.CorridorNS, t.CorridorEW:
		return []string{"shape=ellipse", "fontsize=10", "fillcolor=lightgrey"}
	}
	return nil
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
