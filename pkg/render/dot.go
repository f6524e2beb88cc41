// Package render turns result matrices into Graphviz visualizations.
//
// The hierarchy is rendered as a directed graph: one node per class, one
// edge per true matrix cell. [ToDOT] produces the DOT source and
// [RenderSVG] rasterizes it with Graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/ontomat/pkg/hierarchy"
	"github.com/matzehuels/ontomat/pkg/matrix"
)

// Options configures hierarchy rendering.
type Options struct {
	// ShortNames strips ontology URI prefixes from node labels, so
	// "http://example.com/onto#Apple" renders as "Apple".
	ShortNames bool

	// SelfLoops includes diagonal cells as looping edges. Off by default:
	// a reflexive closure draws a loop on every node, which buries the
	// actual hierarchy.
	SelfLoops bool
}

// ToDOT converts a result matrix and its class names to Graphviz DOT format.
// The resulting DOT string can be rendered with [RenderSVG].
//
// Nodes are emitted in index order and edges in row-major cell order, so
// identical inputs always produce identical DOT text.
func ToDOT(m *matrix.Matrix, names []string, opts Options) string {
	label := func(i int) string {
		if opts.ShortNames {
			return hierarchy.ShortName(names[i])
		}
		return names[i]
	}

	var buf bytes.Buffer
	buf.WriteString("digraph hierarchy {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i := 0; i < m.Size(); i++ {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", names[i], label(i))
	}

	buf.WriteString("\n")
	for _, cell := range m.Cells() {
		i, j := cell[0], cell[1]
		if i == j && !opts.SelfLoops {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", names[i], names[j])
	}

	buf.WriteString("}\n")
	return buf.String()
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
