// Package def renders a placed and routed design as a simplified DEF
// (Design Exchange Format) document.
//
// The output is syntactically well-formed for the subset downstream tools
// consume, header, COMPONENTS, and NETS, without aiming for full LEF/DEF
// coverage. Coordinates are truncated to integers, entries follow
// design order, and the counts in the section headers always match the
// entries beneath them.
package def

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/place"
	"github.com/matzehuels/tinypnr/pkg/route"
)

// =============================================================================
// Options
// =============================================================================

// Default header values.
const (
	DefaultVersion    = "5.8"
	DefaultDesignName = "top"
	DefaultUnits      = 1000
)

// Options configures the DEF header.
type Options struct {
	// DesignName is emitted in the DESIGN statement. Defaults to "top".
	DesignName string

	// Units is the DISTANCE MICRONS scale factor. Defaults to 1000.
	Units int
}

func (o *Options) setDefaults() {
	if o.DesignName == "" {
		o.DesignName = DefaultDesignName
	}
	if o.Units == 0 {
		o.Units = DefaultUnits
	}
}

// =============================================================================
// Generation
// =============================================================================

// Generate renders the design as DEF text. Routing runs as part of
// generation — routes are derived fresh from the design's current
// placement, not read from a cache — so serializing the same placed
// design twice yields byte-identical output.
//
// An empty design produces a valid document with zero components and
// zero nets.
func Generate(d *netlist.Design, die place.Die, opts Options) string {
	var buf bytes.Buffer
	writeTo(&buf, d, die, opts)
	return buf.String()
}

// Write renders the design as DEF text to an io.Writer.
func Write(w io.Writer, d *netlist.Design, die place.Die, opts Options) error {
	var buf bytes.Buffer
	writeTo(&buf, d, die, opts)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteFile renders the design as DEF text into a file with 0644
// permissions.
func WriteFile(path string, d *netlist.Design, die place.Die, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(f, d, die, opts)
}

func writeTo(buf *bytes.Buffer, d *netlist.Design, die place.Die, opts Options) {
	opts.setDefaults()

	fmt.Fprintf(buf, "VERSION %s ;\n", DefaultVersion)
	fmt.Fprintf(buf, "DESIGN %s ;\n", opts.DesignName)
	fmt.Fprintf(buf, "UNITS DISTANCE MICRONS %d ;\n", opts.Units)
	fmt.Fprintf(buf, "DIEAREA ( 0 0 ) ( %d %d ) ;\n", int(die.Width), int(die.Height))

	cells := d.Cells()
	fmt.Fprintf(buf, "COMPONENTS %d ;\n", len(cells))
	for _, c := range cells {
		fmt.Fprintf(buf, "- %s %s\n", c.Name, c.Type)
		fmt.Fprintf(buf, "  + PLACED ( %d %d ) N ;\n", int(c.X), int(c.Y))
	}
	buf.WriteString("END COMPONENTS\n")

	routes := route.Routes(d)
	fmt.Fprintf(buf, "NETS %d ;\n", len(routes))
	for _, r := range routes {
		fmt.Fprintf(buf, "- %s\n", r.Net)
		buf.WriteString("  + ROUTED")
		for _, p := range r.Points {
			fmt.Fprintf(buf, " ( %d %d )", int(p.X), int(p.Y))
		}
		buf.WriteString(" ;\n")
	}
	buf.WriteString("END NETS\n")

	buf.WriteString("END DESIGN\n")
}
