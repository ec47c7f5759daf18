package serialize

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
)

// ToDOT returns a Graphviz DOT representation of the records in reg, in
// registration order, with one labeled arrow per edge. The root record is
// drawn bold; ids registered as nil are drawn dashed.
//
// Unlike the flattened document, shared records appear once with several
// incoming arrows, which makes deduplication visible.
func ToDOT(root *Record, reg *Registry) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Scene {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"SF Mono, Menlo, monospace\", fontsize=12];\n")
	buf.WriteString("  edge [fontsize=10];\n\n")

	for _, id := range reg.IDs() {
		rec, _ := reg.Get(id)
		if rec == nil {
			fmt.Fprintf(&buf, "  %q [label=%q, style=\"rounded,dashed\"];\n", id, "#"+id+"\n(nil)")
			continue
		}
		attrs := fmt.Sprintf("label=%q", fmt.Sprintf("#%s %s\n%s", rec.ID, rec.Class, rec.Type))
		if root != nil && rec.ID == root.ID {
			attrs += ", penwidth=2"
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, attrs)
	}

	buf.WriteString("\n")
	for _, id := range reg.IDs() {
		rec, _ := reg.Get(id)
		if rec == nil {
			continue
		}
		for _, e := range rec.Edges {
			fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", rec.ID, e.Ref, e.Name)
		}
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
