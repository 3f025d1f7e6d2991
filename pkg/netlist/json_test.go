package netlist

import (
	"bytes"
	"path/filepath"
	"testing"
)

func buildDesign() *Design {
	d := NewDesign("top")
	d.InputPorts["a"] = true
	d.OutputPorts["z"] = true
	d.AddCell(&Cell{
		Name: "cell_y", Type: DefaultCellType,
		Pins:  []Pin{{Name: "y", Dir: Output}, {Name: "a", Dir: Input}},
		Width: 1, Height: 1, X: 25, Y: 25, Placed: true,
	})
	d.AddCell(&Cell{
		Name: "cell_z", Type: DefaultCellType,
		Pins:  []Pin{{Name: "z", Dir: Output}, {Name: "y", Dir: Input}},
		Width: 1, Height: 1, X: 75, Y: 25, Placed: true,
	})
	return d
}

func TestDesignRoundTrip(t *testing.T) {
	d := buildDesign()

	data, err := MarshalDesign(d)
	if err != nil {
		t.Fatalf("MarshalDesign: %v", err)
	}

	got, err := ReadDesign(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadDesign: %v", err)
	}

	if got.Module != "top" {
		t.Errorf("module = %q, want top", got.Module)
	}
	if !got.InputPorts["a"] || !got.OutputPorts["z"] {
		t.Errorf("ports not preserved: in=%v out=%v", got.InputPorts, got.OutputPorts)
	}

	cells := got.Cells()
	if len(cells) != 2 {
		t.Fatalf("cells = %d, want 2", len(cells))
	}
	if cells[0].Name != "cell_y" || cells[1].Name != "cell_z" {
		t.Errorf("cell order = [%s %s], want [cell_y cell_z]", cells[0].Name, cells[1].Name)
	}
	if cells[0].X != 25 || cells[0].Y != 25 || !cells[0].Placed {
		t.Errorf("placement not preserved: %+v", cells[0])
	}
	if cells[1].Pins[1] != (Pin{Name: "y", Dir: Input}) {
		t.Errorf("pin not preserved: %+v", cells[1].Pins[1])
	}

	// Re-marshaling must be byte-identical.
	again, err := MarshalDesign(got)
	if err != nil {
		t.Fatalf("MarshalDesign (second): %v", err)
	}
	if !bytes.Equal(data, again) {
		t.Error("round trip is not byte-identical")
	}
}

func TestDesignFileRoundTrip(t *testing.T) {
	d := buildDesign()
	path := filepath.Join(t.TempDir(), "design.json")

	if err := WriteDesignFile(d, path); err != nil {
		t.Fatalf("WriteDesignFile: %v", err)
	}
	got, err := ReadDesignFile(path)
	if err != nil {
		t.Fatalf("ReadDesignFile: %v", err)
	}
	if got.CellCount() != 2 {
		t.Errorf("cells = %d, want 2", got.CellCount())
	}
}

func TestReadDesignInvalid(t *testing.T) {
	if _, err := ReadDesign(bytes.NewReader([]byte("not json"))); err == nil {
		t.Error("expected error for invalid JSON")
	}
	if _, err := ReadDesignFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
