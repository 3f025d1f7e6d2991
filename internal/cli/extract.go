package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tinypnr/pkg/netlist"
	"github.com/matzehuels/tinypnr/pkg/pipeline"
)

// extractCommand creates the extract command producing a design.json.
func (c *CLI) extractCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "extract <netlist.v>",
		Short: "Extract cells and pins from a netlist into design.json",
		Long: `Extract the structural design from a netlist.

The netlist is scanned for the module declaration, primary port
declarations, and continuous assignments. Each assignment becomes one
cell. The result is written as design.json for use with 'render',
'visualize', and 'preview'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExtract(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.design.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass cache for this run")

	return cmd
}

func (c *CLI) runExtract(ctx context.Context, input, output string, noCache, refresh bool) error {
	src, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("read netlist %s: %w", input, err)
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

	p := newProgress(c.Logger)
	d, cacheHit, err := runner.Extract(ctx, pipeline.Options{Netlist: string(src), Refresh: refresh})
	if err != nil {
		return fmt.Errorf("extract: %w", err)
	}
	p.done(fmt.Sprintf("Extracted %d cells from module %s", d.CellCount(), d.Module))

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".design.json"
	}

	if err := netlist.WriteDesignFile(d, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Extraction complete")
	printFile(outputPath)
	printStats(d.CellCount(), 0, cacheHit)
	printNewline()
	printNextStep("Render", "tinypnr render "+outputPath)

	return nil
}
