// Package render draws the connectivity graph of a design: cells as boxes,
// name-matched nets as directed edges from driver to sink.
//
// The DOT text is generated directly; SVG and PNG go through Graphviz.
package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/route"
)

// Options configures connectivity rendering.
type Options struct {
	// Detailed includes pin lists and placement coordinates in node labels.
	// When false, only the cell name is shown.
	Detailed bool
}

// ToDOT converts a design to Graphviz DOT format. The resulting string can
// be rendered with [SVG] or [PNG]. Edges follow net order sorted by name so
// output is stable across runs.
func ToDOT(d *netlist.Design, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph design {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, c := range d.Cells() {
		fmt.Fprintf(&buf, "  %q [label=%q];\n", c.Name, cellLabel(c, opts.Detailed))
	}

	buf.WriteString("\n")
	nets := route.BuildNets(d)
	for _, name := range sortedNetNames(nets) {
		net := nets[name]
		for _, drv := range net.Drivers {
			for _, sink := range net.Sinks {
				fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", drv.Name, sink.Name, name)
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func cellLabel(c *netlist.Cell, detailed bool) string {
	if !detailed {
		return c.Name
	}

	parts := []string{c.Name, "type: " + c.Type}
	for _, p := range c.Pins {
		parts = append(parts, fmt.Sprintf("%s (%s)", p.Name, p.Dir))
	}
	if c.Placed {
		parts = append(parts, fmt.Sprintf("at (%g, %g)", c.X, c.Y))
	}
	return strings.Join(parts, "\n")
}

func sortedNetNames(nets map[string]*route.Net) []string {
	names := make([]string, 0, len(nets))
	for n := range nets {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// PNG renders a DOT graph to PNG using Graphviz.
func PNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
