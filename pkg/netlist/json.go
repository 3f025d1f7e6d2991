package netlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tinypnr/pkg/errors"
)

// =============================================================================
// Design Serialization API
// =============================================================================

// designJSON is the canonical interchange format for extracted designs.
// It is what `tinypnr extract` writes and the later stages read back, so
// round-trip fidelity matters: import → export → re-import must produce an
// identical design, including cell order.
type designJSON struct {
	Module      string     `json:"module"`
	InputPorts  []string   `json:"input_ports,omitempty"`
	OutputPorts []string   `json:"output_ports,omitempty"`
	Cells       []cellJSON `json:"cells"`
}

type cellJSON struct {
	Name   string    `json:"name"`
	Type   string    `json:"type"`
	Pins   []pinJSON `json:"pins"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Placed bool      `json:"placed,omitempty"`
}

type pinJSON struct {
	Name string `json:"name"`
	Dir  string `json:"dir"`
}

// MarshalDesign converts a Design to indented JSON bytes.
// Cells keep their extraction order; port sets are sorted.
func MarshalDesign(d *Design) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDesignTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDesignFile writes a Design to a JSON file.
// The file is created with 0644 permissions.
func WriteDesignFile(d *Design, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDesignTo(d, f)
}

// WriteDesign writes a Design as JSON to an io.Writer.
func WriteDesign(d *Design, w io.Writer) error {
	return writeDesignTo(d, w)
}

// ReadDesignFile reads a JSON file and returns the decoded Design.
func ReadDesignFile(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDesignFrom(f)
}

// ReadDesign decodes a JSON design from an io.Reader.
func ReadDesign(r io.Reader) (*Design, error) {
	return readDesignFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDesignTo(d *Design, w io.Writer) error {
	out := designJSON{
		Module:      d.Module,
		InputPorts:  d.PortNames(Input),
		OutputPorts: d.PortNames(Output),
		Cells:       make([]cellJSON, 0, d.CellCount()),
	}
	for _, c := range d.Cells() {
		cj := cellJSON{
			Name:   c.Name,
			Type:   c.Type,
			Pins:   make([]pinJSON, len(c.Pins)),
			Width:  c.Width,
			Height: c.Height,
			X:      c.X,
			Y:      c.Y,
			Placed: c.Placed,
		}
		for i, p := range c.Pins {
			cj.Pins[i] = pinJSON{Name: p.Name, Dir: p.Dir.String()}
		}
		out.Cells = append(out.Cells, cj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDesignFrom(r io.Reader) (*Design, error) {
	var data designJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode design")
	}

	d := NewDesign(data.Module)
	for _, p := range data.InputPorts {
		d.InputPorts[p] = true
	}
	for _, p := range data.OutputPorts {
		d.OutputPorts[p] = true
	}
	for _, cj := range data.Cells {
		c := &Cell{
			Name:   cj.Name,
			Type:   cj.Type,
			Pins:   make([]Pin, 0, len(cj.Pins)),
			Width:  cj.Width,
			Height: cj.Height,
			X:      cj.X,
			Y:      cj.Y,
			Placed: cj.Placed,
		}
		for _, pj := range cj.Pins {
			dir := Input
			if pj.Dir == Output.String() {
				dir = Output
			}
			if pj.Name == "" {
				return nil, errors.New(errors.ErrCodeInvalidInput, "cell %s: pin with empty name", cj.Name)
			}
			c.Pins = append(c.Pins, Pin{Name: pj.Name, Dir: dir})
		}
		d.AddCell(c)
	}
	return d, nil
}
