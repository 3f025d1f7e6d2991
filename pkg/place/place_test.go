package place

import (
	"fmt"
	"math"
	"testing"

	"github.com/matzehuels/tinypnr/pkg/netlist"
)

func designWithCells(n int) *netlist.Design {
	d := netlist.NewDesign("top")
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("sig%d", i)
		d.AddCell(&netlist.Cell{
			Name: "cell_" + name,
			Type: netlist.DefaultCellType,
			Pins: []netlist.Pin{{Name: name, Dir: netlist.Output}},
		})
	}
	return d
}

func TestGridSide(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 0},
		{1, 1},
		{2, 2},
		{3, 2},
		{4, 2},
		{5, 3},
		{9, 3},
		{10, 4},
	}
	for _, tt := range tests {
		if got := GridSide(tt.n); got != tt.want {
			t.Errorf("GridSide(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestPlaceDistinctInBounds(t *testing.T) {
	die := DefaultDie()

	for _, n := range []int{0, 1, 2, 3, 4, 5, 9, 10} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			d := designWithCells(n)
			Place(d, die)

			seen := make(map[[2]float64]bool)
			for _, c := range d.Cells() {
				if !c.Placed {
					t.Fatalf("%s not placed", c.Name)
				}
				if c.X < 0 || c.X >= die.Width || c.Y < 0 || c.Y >= die.Height {
					t.Errorf("%s at (%g, %g), outside [0,%g)x[0,%g)", c.Name, c.X, c.Y, die.Width, die.Height)
				}
				key := [2]float64{c.X, c.Y}
				if seen[key] {
					t.Errorf("duplicate coordinate (%g, %g)", c.X, c.Y)
				}
				seen[key] = true
			}
			if len(seen) != n {
				t.Errorf("distinct coordinates = %d, want %d", len(seen), n)
			}
		})
	}
}

func TestPlaceSingleCellCentered(t *testing.T) {
	d := designWithCells(1)
	Place(d, DefaultDie())

	c := d.Cells()[0]
	if c.X != 50 || c.Y != 50 {
		t.Errorf("cell at (%g, %g), want (50, 50)", c.X, c.Y)
	}
}

func TestPlaceTwoCells(t *testing.T) {
	d := designWithCells(2)
	Place(d, DefaultDie())

	cells := d.Cells()
	if cells[0].X != 25 || cells[0].Y != 25 {
		t.Errorf("first cell at (%g, %g), want (25, 25)", cells[0].X, cells[0].Y)
	}
	if cells[1].X != 75 || cells[1].Y != 25 {
		t.Errorf("second cell at (%g, %g), want (75, 25)", cells[1].X, cells[1].Y)
	}
}

func TestPlaceRowMajorOrder(t *testing.T) {
	d := designWithCells(5) // side 3, slots: (0,0) (1,0) (2,0) (0,1) (1,1)
	Place(d, Die{Width: 90, Height: 90})

	want := [][2]float64{{15, 15}, {45, 15}, {75, 15}, {15, 45}, {45, 45}}
	for i, c := range d.Cells() {
		if c.X != want[i][0] || c.Y != want[i][1] {
			t.Errorf("cell %d at (%g, %g), want (%g, %g)", i, c.X, c.Y, want[i][0], want[i][1])
		}
	}
}

func TestPlaceEmptyDesign(t *testing.T) {
	d := netlist.NewDesign("top")
	Place(d, DefaultDie()) // must not panic or divide by zero
	if d.CellCount() != 0 {
		t.Fatal("unexpected cells")
	}
}

func TestPlaceDeterministic(t *testing.T) {
	die := Die{Width: 100, Height: 60}
	a := designWithCells(7)
	b := designWithCells(7)
	Place(a, die)
	Place(b, die)

	ca, cb := a.Cells(), b.Cells()
	for i := range ca {
		if math.Abs(ca[i].X-cb[i].X) > 0 || math.Abs(ca[i].Y-cb[i].Y) > 0 {
			t.Errorf("cell %d placed at (%g,%g) vs (%g,%g)", i, ca[i].X, ca[i].Y, cb[i].X, cb[i].Y)
		}
	}
}
