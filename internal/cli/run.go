package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tinypnr/pkg/config"
	"github.com/matzehuels/tinypnr/pkg/pipeline"
)

// runCommand creates the run command executing the full pipeline.
func (c *CLI) runCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)
	geo := geometryFlags{}

	cmd := &cobra.Command{
		Use:   "run <netlist.v>",
		Short: "Extract, place, route, and write a DEF layout",
		Long: `Run the full place-and-route pipeline on a netlist.

The netlist is scanned for cells, every cell is placed on a uniform grid
inside the die, name-matched driver/sink pairs are routed with Manhattan
paths, and the result is written as a simplified DEF document.

Die geometry and DEF header values come from tinypnr.toml when present;
flags override the file.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPipeline(cmd.Context(), args[0], output, noCache, refresh, geo.resolve(cmd))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.def)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache for this run")
	geo.register(cmd)

	return cmd
}

// geometryFlags holds the die/header flags shared by run and render.
type geometryFlags struct {
	dieWidth   float64
	dieHeight  float64
	designName string
	units      int
}

func (g *geometryFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&g.dieWidth, "die-width", 0, "die width in design units (default from config)")
	cmd.Flags().Float64Var(&g.dieHeight, "die-height", 0, "die height in design units (default from config)")
	cmd.Flags().StringVar(&g.designName, "design", "", "DEF design name (default from config)")
	cmd.Flags().IntVar(&g.units, "units", 0, "DEF distance microns factor (default from config)")
}

// resolve captures which flags were explicitly set so config values are
// only overridden on request.
func (g *geometryFlags) resolve(cmd *cobra.Command) geometryFlags {
	out := geometryFlags{}
	if cmd.Flags().Changed("die-width") {
		out.dieWidth = g.dieWidth
	}
	if cmd.Flags().Changed("die-height") {
		out.dieHeight = g.dieHeight
	}
	out.designName = g.designName
	out.units = g.units
	return out
}

// pipelineOptions merges config values with explicit flag overrides.
func pipelineOptions(cfg config.Config, netlistSrc string, refresh bool, geo geometryFlags) pipeline.Options {
	opts := pipeline.Options{
		Netlist:    netlistSrc,
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
	return opts
}

// runPipeline reads the netlist, runs all four stages, and writes the DEF.
func (c *CLI) runPipeline(ctx context.Context, input, output string, noCache, refresh bool, geo geometryFlags) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read netlist %s: %w", input, err)
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts := pipelineOptions(cfg, string(src), refresh, geo)

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Placing and routing...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Place and route failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".def"
	}

	if err := os.WriteFile(outputPath, []byte(result.DEF), 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Place and route complete")
	printFile(outputPath)
	printStats(result.Stats.CellCount, result.Stats.RouteCount, result.CacheInfo.SerializeHit)
	printNewline()
	printNextStep("Inspect", "tinypnr visualize "+input)

	return nil
}
