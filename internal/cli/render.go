package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tinypnr/pkg/cache"
	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/pipeline"
	"github.com/matzehuels/tinypnr/pkg/place"
)

// renderCommand creates the render command: place + route + DEF from a
// previously extracted design.json.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	geo := geometryFlags{}

	cmd := &cobra.Command{
		Use:   "render <design.json>",
		Short: "Place, route, and write a DEF layout from a saved design",
		Long: `Render a DEF layout from a design.json file (produced by 'extract').

Placement always runs fresh so the layout reflects the requested die
geometry; routing is derived from the placement during serialization.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], output, noCache, refresh, geo.resolve(cmd))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.def)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache for this run")
	geo.register(cmd)

	return cmd
}

func (c *CLI) runRender(ctx context.Context, input, output string, noCache, refresh bool, geo geometryFlags) error {
	d, err := netlist.ReadDesignFile(input)
	if err != nil {
		return fmt.Errorf("load design %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{
		DesignName: cfg.Design,
		Units:      cfg.Units,
		Die:        cfg.DiePlan(),
		Refresh:    refresh,
	}
	if geo.dieWidth > 0 {
		opts.Die.Width = geo.dieWidth
	}
	if geo.dieHeight > 0 {
		opts.Die.Height = geo.dieHeight
	}
	if geo.designName != "" {
		opts.DesignName = geo.designName
	}
	if geo.units > 0 {
		opts.Units = geo.units
	}

	var designHash string
	if data, err := netlist.MarshalDesign(d); err == nil {
		designHash = cache.Hash(data)
	}

	place.Place(d, opts.Die)

	out, cacheHit, err := runner.Serialize(ctx, d, designHash, opts)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		base = strings.TrimSuffix(base, ".design")
		outputPath = base + ".def"
	}

	if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Render complete")
	printFile(outputPath)
	printStats(d.CellCount(), 0, cacheHit)

	return nil
}
