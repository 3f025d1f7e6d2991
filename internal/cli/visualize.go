package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tinypnr/pkg/errors"
	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/render"
)

// Visualization output formats.
const (
	formatDOT = "dot"
	formatSVG = "svg"
	formatPNG = "png"
)

// visualizeCommand creates the visualize command rendering the design's
// connectivity graph.
func (c *CLI) visualizeCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "visualize <design.json|netlist.v>",
		Short: "Render the connectivity graph as DOT, SVG, or PNG",
		Long: `Render the design's connectivity graph.

Cells become boxes and every name-matched driver→sink connection becomes a
directed edge labeled with the signal name. The input is either a saved
design.json or a raw netlist (extracted on the fly).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case formatDOT, formatSVG, formatPNG:
			default:
				return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: dot, svg, png)", format)
			}
			return c.runVisualize(cmd.Context(), args[0], format, output, detailed)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", formatSVG, "output format: svg (default), png, dot")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include pins and placement in node labels")

	return cmd
}

func (c *CLI) runVisualize(ctx context.Context, input, format, output string, detailed bool) error {
	d, err := loadDesign(input)
	if err != nil {
		return err
	}

	dot := render.ToDOT(d, render.Options{Detailed: detailed})

	var data []byte
	switch format {
	case formatDOT:
		data = []byte(dot)
	case formatSVG:
		data, err = render.SVG(ctx, dot)
	case formatPNG:
		data, err = render.PNG(ctx, dot)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".design")
		outputPath = base + "." + format
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Visualization complete")
	printFile(outputPath)

	return nil
}

// loadDesign reads either a saved design.json or a raw netlist, detected
// by file extension.
func loadDesign(path string) (*netlist.Design, error) {
	if filepath.Ext(path) == ".json" {
		d, err := netlist.ReadDesignFile(path)
		if err != nil {
			return nil, fmt.Errorf("load design %s: %w", path, err)
		}
		return d, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read netlist %s: %w", path, err)
	}
	d, err := netlist.Extract(string(src))
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return d, nil
}
