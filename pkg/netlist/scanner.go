package netlist

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/matzehuels/tinypnr/pkg/errors"
)

// =============================================================================
// Structural Scanner
// =============================================================================

// The scanner recognizes exactly three constructs:
//
//	module <ident> ( <port-list> ) ;
//	input  [msb:lsb]? <ident> ...
//	output [msb:lsb]? <ident> ...
//	assign <ident> = <expr> ;
//
// Lines matching none of these are skipped without complaint. Widening the
// grammar subset means adding a pattern here; placement and routing never
// see the source text.
var (
	moduleRe = regexp.MustCompile(`(?s)module\s+(\w+)\s*\((.*?)\)\s*;`)
	inputRe  = regexp.MustCompile(`input\s+(?:\[\d+:\d+\]\s*)?(\w+)`)
	outputRe = regexp.MustCompile(`output\s+(?:\[\d+:\d+\]\s*)?(\w+)`)
	assignRe = regexp.MustCompile(`assign\s+(\w+)\s*=\s*(.+?);`)

	// identRe matches one expression operand. A bit-indexed reference like
	// a[0] is a single token, distinct from its base identifier.
	identRe = regexp.MustCompile(`[A-Za-z_]\w*(?:\[\d+\])?`)
)

// Extract scans raw netlist text and builds a Design. It fails only when no
// module declaration can be found; without one, no cells can be inferred.
// The input text is never modified.
func Extract(src string) (*Design, error) {
	m := moduleRe.FindStringSubmatch(src)
	if m == nil {
		return nil, errors.New(errors.ErrCodeMalformedNetlist, "no module declaration found")
	}
	d := NewDesign(m[1])

	scanPorts(d, src)
	scanAssigns(d, src)

	return d, nil
}

// scanPorts collects declared primary port names. Bit-width qualifiers are
// dropped; only the base identifier is recorded.
func scanPorts(d *Design, src string) {
	sc := bufio.NewScanner(strings.NewReader(src))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.Contains(line, "input"):
			if m := inputRe.FindStringSubmatch(line); m != nil {
				d.InputPorts[m[1]] = true
			}
		case strings.Contains(line, "output"):
			if m := outputRe.FindStringSubmatch(line); m != nil {
				d.OutputPorts[m[1]] = true
			}
		}
	}
}

// scanAssigns synthesizes one cell per continuous assignment. The cell is
// named after its target signal, drives the target through its output pin,
// and consumes every distinct identifier of the right-hand expression in
// first-seen order.
func scanAssigns(d *Design, src string) {
	for _, m := range assignRe.FindAllStringSubmatch(src, -1) {
		target, expr := m[1], m[2]

		cell := &Cell{
			Name:   "cell_" + target,
			Type:   DefaultCellType,
			Pins:   []Pin{{Name: target, Dir: Output}},
			Width:  1,
			Height: 1,
		}
		for _, sig := range exprOperands(expr) {
			cell.Pins = append(cell.Pins, Pin{Name: sig, Dir: Input})
		}
		d.AddCell(cell)
	}
}

// exprOperands returns the distinct identifier tokens of an assign
// expression in first-seen order. Operator symbols (&, |, ^, ~) and
// parentheses never match the identifier pattern, so they fall out
// without explicit filtering.
func exprOperands(expr string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, tok := range identRe.FindAllString(expr, -1) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}
