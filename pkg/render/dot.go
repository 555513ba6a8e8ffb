// Package render exports level graphs as Graphviz DOT and SVG, so a
// design can be reviewed visually alongside the analysis report.
package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/stagewalk/stagewalk/pkg/level"
)

// Options configures level-graph rendering.
type Options struct {
	// Detailed includes descriptions and unlock lists in stage labels.
	// When false, only the stage id is shown.
	Detailed bool
}

// ToDOT converts a level graph to Graphviz DOT. Begin stages get a
// green border, end stages a double border, and each edge is labelled
// with the skills that gate it.
func ToDOT(g *level.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph levels {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for i := 0; i < g.StageCount(); i++ {
		s := g.Stage(i)
		attrs := stageAttrs(g, s, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", s.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i := 0; i < g.StageCount(); i++ {
		s := g.Stage(i)
		for _, e := range s.Edges {
			dest := g.Stage(e.To)
			if reqs := g.Skills().Names(e.Requires); len(reqs) > 0 {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q, fontsize=11];\n", s.ID, dest.ID, strings.Join(reqs, "\n"))
			} else {
				fmt.Fprintf(&buf, "  %q -> %q;\n", s.ID, dest.ID)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func stageAttrs(g *level.Graph, s *level.Stage, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", stageLabel(g, s, detailed))}
	if s.Begin {
		attrs = append(attrs, "color=darkgreen", "penwidth=2")
	}
	if s.End {
		attrs = append(attrs, "peripheries=2")
	}
	return attrs
}

func stageLabel(g *level.Graph, s *level.Stage, detailed bool) string {
	if !detailed {
		return s.ID
	}
	parts := []string{s.ID}
	if s.Description != "" {
		parts = append(parts, s.Description)
	}
	if unlocks := g.Skills().Names(s.Unlocks); len(unlocks) > 0 {
		parts = append(parts, "unlocks: "+strings.Join(unlocks, ", "))
	}
	return strings.Join(parts, "\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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
