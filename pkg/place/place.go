// Package place assigns every cell of a design a physical location on a
// fixed rectangular die using a uniform square grid.
//
// The grid is the smallest square with at least one slot per cell:
// side = ceil(sqrt(n)). Cells are walked in design order and dropped into
// slots row-major (left to right, bottom row first), each centered in its
// slot. The strategy is deterministic for a given design and geometrically
// balanced; it performs no legality checking beyond the grid structure
// itself (no overlap, row, or spacing rules).
package place

import (
	"math"

	"github.com/matzehuels/tinypnr/pkg/netlist"
)

// =============================================================================
// Die Geometry
// =============================================================================

// Default die dimensions in design units.
const (
	DefaultDieWidth  = 100.0
	DefaultDieHeight = 100.0
)

// Die is the rectangular chip boundary all placement happens within.
// It is plain configuration, threaded explicitly through placement and
// serialization rather than held in a package global.
type Die struct {
	Width  float64
	Height float64
}

// DefaultDie returns the default 100x100 die.
func DefaultDie() Die {
	return Die{Width: DefaultDieWidth, Height: DefaultDieHeight}
}

// =============================================================================
// Grid Placement
// =============================================================================

// GridSide returns the side length of the placement grid for n cells:
// the smallest k with k*k >= n. Zero for an empty design.
func GridSide(n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Ceil(math.Sqrt(float64(n))))
}

// Place assigns every cell in the design a coordinate inside the die.
// An empty design is a no-op; the grid side is undefined for zero cells
// and placement simply has nothing to do. Non-square cell counts leave
// trailing grid slots unused.
func Place(d *netlist.Design, die Die) {
	cells := d.Cells()
	side := GridSide(len(cells))
	if side == 0 {
		return
	}

	slotW := die.Width / float64(side)
	slotH := die.Height / float64(side)

	for i, c := range cells {
		col := i % side
		row := i / side
		c.X = float64(col)*slotW + slotW/2
		c.Y = float64(row)*slotH + slotH/2
		c.Placed = true
	}
}
