// Package route derives signal connectivity from pin names and computes a
// rectilinear path for every driver→sink pair.
//
// Connectivity is inferred purely by name matching: an output pin drives
// every input pin anywhere in the design that carries the same name. The
// package materializes that relation as a Net index (name → driver cells,
// sink cells) built in one pass, then emits one Route per (driver, sink)
// edge. This is functionally identical to scanning every pin pair but
// avoids the quadratic pin scan.
package route

import (
	"github.com/matzehuels/tinypnr/pkg/netlist"
)

// =============================================================================
// Geometry
// =============================================================================

// Point is a coordinate on the die.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Route is a Manhattan path for one driver→sink connection: exactly three
// points forming a horizontal segment then a vertical segment. When source
// and sink share an axis the path degenerates to a straight line but still
// carries all three points.
type Route struct {
	Net    string   `json:"net"`
	Points [3]Point `json:"points"`
}

// manhattan returns the horizontal-first path from src to dst. The single
// bend sits at (dst.X, src.Y).
func manhattan(src, dst Point) [3]Point {
	return [3]Point{src, {X: dst.X, Y: src.Y}, dst}
}

// =============================================================================
// Nets
// =============================================================================

// Net is the set of cells attached to one signal name: the cells whose
// output drives it and the cells with an input consuming it. A cell can
// appear on both sides; a cell whose output name matches one of its own
// input names produces a self-route, which is preserved rather than
// suppressed (it may represent intra-cell feedback).
type Net struct {
	Name    string
	Drivers []*netlist.Cell
	Sinks   []*netlist.Cell
}

// BuildNets indexes the design's connectivity by signal name. Driver and
// sink lists follow design cell order, so downstream route emission is
// deterministic. Signals with no driver or no sinks still get an entry;
// they simply contribute no routes.
func BuildNets(d *netlist.Design) map[string]*Net {
	nets := make(map[string]*Net)
	get := func(name string) *Net {
		n, ok := nets[name]
		if !ok {
			n = &Net{Name: name}
			nets[name] = n
		}
		return n
	}

	for _, c := range d.Cells() {
		for _, p := range c.Pins {
			if p.IsOutput() {
				get(p.Name).Drivers = append(get(p.Name).Drivers, c)
			} else {
				get(p.Name).Sinks = append(get(p.Name).Sinks, c)
			}
		}
	}
	return nets
}

// =============================================================================
// Routing
// =============================================================================

// Routes computes one Manhattan route per (driver, sink) pair sharing a
// signal name, walking drivers in design order. An output fanning out to
// several inputs yields several routes with the same net name. A design
// with no matching pairs yields zero routes; that is not an error.
//
// Routes are recomputed from scratch on every call and never cached; the
// result depends only on the design's cells and their placement.
func Routes(d *netlist.Design) []Route {
	nets := BuildNets(d)

	var out []Route
	for _, c := range d.Cells() {
		for _, p := range c.Pins {
			if !p.IsOutput() {
				continue
			}
			net := nets[p.Name]
			for _, sink := range net.Sinks {
				out = append(out, Route{
					Net:    p.Name,
					Points: manhattan(Point{X: c.X, Y: c.Y}, Point{X: sink.X, Y: sink.Y}),
				})
			}
		}
	}
	return out
}
