package route

import (
	"reflect"
	"testing"

	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/place"
)

func cell(name string, out string, ins ...string) *netlist.Cell {
	c := &netlist.Cell{Name: name, Type: netlist.DefaultCellType}
	if out != "" {
		c.Pins = append(c.Pins, netlist.Pin{Name: out, Dir: netlist.Output})
	}
	for _, in := range ins {
		c.Pins = append(c.Pins, netlist.Pin{Name: in, Dir: netlist.Input})
	}
	return c
}

func TestRoutesTwoCellChain(t *testing.T) {
	d := netlist.NewDesign("top")
	d.AddCell(cell("cell_y", "y", "a"))
	d.AddCell(cell("cell_z", "z", "y"))
	place.Place(d, place.DefaultDie())

	routes := Routes(d)
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}

	r := routes[0]
	if r.Net != "y" {
		t.Errorf("net = %q, want y", r.Net)
	}
	// cell_y at (25,25), cell_z at (75,25); bend at (cell_z.x, cell_y.y)
	want := [3]Point{{25, 25}, {75, 25}, {75, 25}}
	if r.Points != want {
		t.Errorf("points = %v, want %v", r.Points, want)
	}
}

func TestRoutesBendGeometry(t *testing.T) {
	d := netlist.NewDesign("top")
	src := cell("cell_s", "n")
	src.X, src.Y = 10, 20
	dst := cell("cell_d", "q", "n")
	dst.X, dst.Y = 70, 90
	d.AddCell(src)
	d.AddCell(dst)

	routes := Routes(d)
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1", len(routes))
	}

	p := routes[0].Points
	if p[0] != (Point{10, 20}) || p[2] != (Point{70, 90}) {
		t.Fatalf("endpoints = %v", p)
	}
	// middle point: sink's x, source's y (horizontal-first)
	if p[1].X != p[2].X || p[1].Y != p[0].Y {
		t.Errorf("bend = %v, want (%g, %g)", p[1], p[2].X, p[0].Y)
	}
}

func TestRoutesFanOut(t *testing.T) {
	d := netlist.NewDesign("top")
	d.AddCell(cell("cell_y", "y", "a"))
	d.AddCell(cell("cell_p", "p", "y"))
	d.AddCell(cell("cell_q", "q", "y"))

	routes := Routes(d)
	if len(routes) != 2 {
		t.Fatalf("routes = %d, want 2 (one per sink)", len(routes))
	}
	for _, r := range routes {
		if r.Net != "y" {
			t.Errorf("net = %q, want y", r.Net)
		}
	}
}

func TestRoutesSelfMatchPreserved(t *testing.T) {
	// A cell whose output name matches one of its own inputs routes to
	// itself. The matching rule permits this and it must not be filtered.
	d := netlist.NewDesign("top")
	d.AddCell(cell("cell_f", "f", "f"))

	routes := Routes(d)
	if len(routes) != 1 {
		t.Fatalf("routes = %d, want 1 self-route", len(routes))
	}
	p := routes[0].Points
	if p[0] != p[1] || p[1] != p[2] {
		t.Errorf("self-route should be degenerate, got %v", p)
	}
}

func TestRoutesNoMatches(t *testing.T) {
	// The one-cell AND: inputs a, b never match output y.
	d := netlist.NewDesign("top")
	d.AddCell(cell("cell_y", "y", "a", "b"))

	if routes := Routes(d); len(routes) != 0 {
		t.Errorf("routes = %d, want 0", len(routes))
	}
}

func TestRoutesDirectionality(t *testing.T) {
	// Two outputs with the same name never pair; neither do two inputs.
	d := netlist.NewDesign("top")
	d.AddCell(cell("cell_a", "x"))
	d.AddCell(cell("cell_b", "x"))
	d.AddCell(cell("cell_c", "", "w"))
	d.AddCell(cell("cell_d", "", "w"))

	if routes := Routes(d); len(routes) != 0 {
		t.Errorf("routes = %d, want 0 (no output→input pair)", len(routes))
	}
}

func TestRoutesDeterministic(t *testing.T) {
	build := func() *netlist.Design {
		d := netlist.NewDesign("top")
		d.AddCell(cell("cell_a", "a", "in"))
		d.AddCell(cell("cell_b", "b", "a"))
		d.AddCell(cell("cell_c", "c", "a", "b"))
		place.Place(d, place.DefaultDie())
		return d
	}

	first := Routes(build())
	for i := 0; i < 10; i++ {
		if got := Routes(build()); !reflect.DeepEqual(first, got) {
			t.Fatalf("iteration %d differs: %v vs %v", i, got, first)
		}
	}
}

func TestBuildNets(t *testing.T) {
	d := netlist.NewDesign("top")
	d.AddCell(cell("cell_y", "y", "a"))
	d.AddCell(cell("cell_z", "z", "y"))

	nets := BuildNets(d)

	y := nets["y"]
	if y == nil || len(y.Drivers) != 1 || len(y.Sinks) != 1 {
		t.Fatalf("net y = %+v, want 1 driver and 1 sink", y)
	}
	if y.Drivers[0].Name != "cell_y" || y.Sinks[0].Name != "cell_z" {
		t.Errorf("net y connects %s → %s", y.Drivers[0].Name, y.Sinks[0].Name)
	}

	// Undriven input signal still gets an entry but no routes.
	a := nets["a"]
	if a == nil || len(a.Drivers) != 0 || len(a.Sinks) != 1 {
		t.Errorf("net a = %+v, want 0 drivers and 1 sink", a)
	}
}
