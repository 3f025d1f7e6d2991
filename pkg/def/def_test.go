package def

import (
	"strings"
	"testing"

	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/place"
)

func TestGenerateSingleCell(t *testing.T) {
	d, err := netlist.Extract(`module top(a,b,y);
input a;
input b;
output y;
assign y = a & b;
endmodule`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	die := place.DefaultDie()
	place.Place(d, die)

	got := Generate(d, die, Options{})
	want := `VERSION 5.8 ;
DESIGN top ;
UNITS DISTANCE MICRONS 1000 ;
DIEAREA ( 0 0 ) ( 100 100 ) ;
COMPONENTS 1 ;
- cell_y LOGIC
  + PLACED ( 50 50 ) N ;
END COMPONENTS
NETS 0 ;
END NETS
END DESIGN
`
	if got != want {
		t.Errorf("Generate mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateTwoCellChain(t *testing.T) {
	d, err := netlist.Extract(`module chain(a,z);
input a;
output z;
assign y = a;
assign z = y;
endmodule`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	die := place.DefaultDie()
	place.Place(d, die)

	got := Generate(d, die, Options{DesignName: "chain"})

	if !strings.Contains(got, "DESIGN chain ;") {
		t.Error("missing DESIGN chain header")
	}
	if !strings.Contains(got, "COMPONENTS 2 ;") {
		t.Error("missing COMPONENTS 2")
	}
	if !strings.Contains(got, "NETS 1 ;") {
		t.Error("missing NETS 1")
	}
	// cell_y at (25,25) drives cell_z at (75,25); bend at (75,25)
	if !strings.Contains(got, "  + ROUTED ( 25 25 ) ( 75 25 ) ( 75 25 ) ;") {
		t.Errorf("missing expected route, got:\n%s", got)
	}
}

func TestGenerateEmptyDesign(t *testing.T) {
	d := netlist.NewDesign("top")
	die := place.DefaultDie()
	place.Place(d, die)

	got := Generate(d, die, Options{})

	if !strings.Contains(got, "COMPONENTS 0 ;") {
		t.Error("missing COMPONENTS 0")
	}
	if !strings.Contains(got, "NETS 0 ;") {
		t.Error("missing NETS 0")
	}
	if !strings.HasSuffix(got, "END DESIGN\n") {
		t.Error("missing END DESIGN")
	}
}

func TestGenerateTruncatesCoordinates(t *testing.T) {
	d := netlist.NewDesign("top")
	c := &netlist.Cell{
		Name: "cell_x", Type: netlist.DefaultCellType,
		Pins: []netlist.Pin{{Name: "x", Dir: netlist.Output}},
		X:    16.666666, Y: 83.333333, Placed: true,
	}
	d.AddCell(c)

	got := Generate(d, place.Die{Width: 100, Height: 100}, Options{})
	if !strings.Contains(got, "+ PLACED ( 16 83 ) N ;") {
		t.Errorf("coordinates not truncated:\n%s", got)
	}
}

func TestGenerateCountsMatchEntries(t *testing.T) {
	d, err := netlist.Extract(`module m(a,o);
assign b = a;
assign c = b;
assign o = b & c;
endmodule`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	die := place.DefaultDie()
	place.Place(d, die)

	out := Generate(d, die, Options{})

	if got := strings.Count(out, "+ PLACED"); got != 3 {
		t.Errorf("placed entries = %d, want 3", got)
	}
	// b feeds cell_c and cell_o, c feeds cell_o
	if !strings.Contains(out, "NETS 3 ;") {
		t.Errorf("expected NETS 3:\n%s", out)
	}
	if got := strings.Count(out, "+ ROUTED"); got != 3 {
		t.Errorf("routed entries = %d, want 3", got)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	d, err := netlist.Extract(`module m(a,o);
assign b = a;
assign c = b;
assign o = b | c;
endmodule`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	die := place.Die{Width: 120, Height: 80}
	place.Place(d, die)

	first := Generate(d, die, Options{})
	for i := 0; i < 5; i++ {
		if again := Generate(d, die, Options{}); again != first {
			t.Fatalf("iteration %d: output differs", i)
		}
	}
}
