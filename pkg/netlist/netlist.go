// Package netlist models a structural gate-level design: cells with named,
// directional pins, extracted from Yosys-style Verilog output.
//
// The package deliberately covers only the subset of the language needed to
// recover cells, pins, and signal names: a module header, per-line
// input/output port declarations, and continuous assignments. Everything
// else in the source text is skipped.
package netlist

import (
	"slices"
)

// =============================================================================
// Pins
// =============================================================================

// Direction classifies a pin as an input or an output. The two are mutually
// exclusive; a pin is never both.
type Direction int

const (
	// Input marks a pin that consumes a signal.
	Input Direction = iota
	// Output marks a pin that drives a signal.
	Output
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Pin is a named, directional connection point owned by exactly one Cell.
// Its name is the signal it is bound to and is always non-empty. A pin has
// no offset of its own; its physical position is its owning cell's position.
type Pin struct {
	Name string
	Dir  Direction
}

// IsInput reports whether the pin consumes its signal.
func (p Pin) IsInput() bool { return p.Dir == Input }

// IsOutput reports whether the pin drives its signal.
func (p Pin) IsOutput() bool { return p.Dir == Output }

// =============================================================================
// Cells
// =============================================================================

// DefaultCellType is the type tag assigned to cells synthesized from
// continuous assignments.
const DefaultCellType = "LOGIC"

// Cell is a synthesized unit of logic. It owns an ordered pin list (the
// driven output first, then the inputs in first-seen order) and carries a
// nominal footprint plus a placement coordinate. X and Y are undefined until
// placement runs; Placed reports whether they have been assigned.
type Cell struct {
	Name   string
	Type   string
	Pins   []Pin
	Width  float64
	Height float64
	X      float64
	Y      float64
	Placed bool
}

// Output returns the cell's driven output pin. Every synthesized cell has
// exactly one; ok is false only for hand-built cells without an output.
func (c *Cell) Output() (Pin, bool) {
	for _, p := range c.Pins {
		if p.IsOutput() {
			return p, true
		}
	}
	return Pin{}, false
}

// Inputs returns the cell's input pins in declaration order.
func (c *Cell) Inputs() []Pin {
	var in []Pin
	for _, p := range c.Pins {
		if p.IsInput() {
			in = append(in, p)
		}
	}
	return in
}

// =============================================================================
// Design
// =============================================================================

// Design is the extracted netlist: the module name, the declared primary
// port sets, and the synthesized cells. Cells iterate in first-created
// order so that every downstream stage (placement, routing, serialization)
// is deterministic for a given input.
//
// The primary port sets are collected from the source text but not
// cross-checked against the cells. They are kept for inspection and
// future direction validation.
type Design struct {
	Module      string
	InputPorts  map[string]bool
	OutputPorts map[string]bool

	cells map[string]*Cell
	order []string
}

// NewDesign creates an empty design with the given module name.
func NewDesign(module string) *Design {
	return &Design{
		Module:      module,
		InputPorts:  make(map[string]bool),
		OutputPorts: make(map[string]bool),
		cells:       make(map[string]*Cell),
	}
}

// AddCell inserts a cell, replacing any existing cell with the same name.
// A replaced cell keeps its original position in iteration order. Colliding
// names are not an error; the last assignment wins.
func (d *Design) AddCell(c *Cell) {
	if _, exists := d.cells[c.Name]; !exists {
		d.order = append(d.order, c.Name)
	}
	d.cells[c.Name] = c
}

// Cell returns the cell with the given name, or nil.
func (d *Design) Cell(name string) *Cell {
	return d.cells[name]
}

// Cells returns all cells in first-created order.
func (d *Design) Cells() []*Cell {
	out := make([]*Cell, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.cells[name])
	}
	return out
}

// CellCount returns the number of cells in the design.
func (d *Design) CellCount() int { return len(d.cells) }

// Empty reports whether extraction produced no cells. An empty design is
// not an error: placement, routing, and serialization all accept it and
// produce a well-formed empty layout.
func (d *Design) Empty() bool { return len(d.cells) == 0 }

// PortNames returns the declared primary ports of the given direction,
// sorted for stable output.
func (d *Design) PortNames(dir Direction) []string {
	set := d.InputPorts
	if dir == Output {
		set = d.OutputPorts
	}
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}
